package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type StorageService interface {
	EnsureDirs() error
	SaveUpload(filename string, data []byte) (string, string, error)
	ReportFilePath(sessionID uuid.UUID) string
}

type storageService struct {
	uploadPath string
	reportPath string
}

func NewStorageService(uploadPath, reportPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		reportPath: reportPath,
	}
}

// EnsureDirs implements StorageService.
func (s *storageService) EnsureDirs() error {
	for _, dir := range []string{s.uploadPath, s.reportPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveUpload implements StorageService. The stored name is unique per upload
// so concurrent candidates with identical filenames cannot collide.
func (s *storageService) SaveUpload(filename string, data []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".docx" {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	uniqueFilename := fmt.Sprintf("cv_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

// ReportFilePath implements StorageService.
func (s *storageService) ReportFilePath(sessionID uuid.UUID) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(s.reportPath, fmt.Sprintf("assessment_report_%s_%s.pdf", sessionID, timestamp))
}
