package services

import "strings"

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullets
)

// markupBlock is one renderable unit of a freeform summary: a sub-heading,
// a bullet-list run, or a plain paragraph.
type markupBlock struct {
	Kind  blockKind
	Text  string
	Items []string
}

// parseMarkup translates the lightweight markup Gemini tends to produce
// (**bold**, * bullets, lines ending in ":") into renderable blocks.
// Consecutive bullet lines are buffered and flushed as a single list block
// when a blank or non-bullet line is reached.
func parseMarkup(text string) []markupBlock {
	var blocks []markupBlock
	var bullets []string

	flushBullets := func() {
		if len(bullets) > 0 {
			blocks = append(blocks, markupBlock{Kind: blockBullets, Items: bullets})
			bullets = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			flushBullets()

		case strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- "):
			bullets = append(bullets, stripInlineMarkers(line[2:]))

		case strings.HasSuffix(stripInlineMarkers(line), ":"):
			flushBullets()
			blocks = append(blocks, markupBlock{Kind: blockHeading, Text: stripInlineMarkers(line)})

		default:
			flushBullets()
			blocks = append(blocks, markupBlock{Kind: blockParagraph, Text: stripInlineMarkers(line)})
		}
	}

	flushBullets()
	return blocks
}

// stripInlineMarkers removes **bold** and *italic* markers. The PDF styles
// headings and body text itself, so only the marker characters need to go.
func stripInlineMarkers(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}

// truncate caps a text field at limit characters, appending an ellipsis
// marker when content was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
