package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkupHeadingAndBullets(t *testing.T) {
	text := strings.Join([]string{
		"**Strengths:**",
		"* Leadership",
		"* Communication",
		"* Systems thinking",
		"",
		"A closing remark about the candidate.",
	}, "\n")

	blocks := parseMarkup(text)
	require.Len(t, blocks, 3)

	assert.Equal(t, blockHeading, blocks[0].Kind)
	assert.Equal(t, "Strengths:", blocks[0].Text)

	// Consecutive bullet lines collapse into one list block.
	assert.Equal(t, blockBullets, blocks[1].Kind)
	assert.Equal(t, []string{"Leadership", "Communication", "Systems thinking"}, blocks[1].Items)

	assert.Equal(t, blockParagraph, blocks[2].Kind)
	assert.Equal(t, "A closing remark about the candidate.", blocks[2].Text)
}

func TestParseMarkupBulletRunSplitByParagraph(t *testing.T) {
	text := strings.Join([]string{
		"* First",
		"* Second",
		"Interlude paragraph",
		"* Third",
	}, "\n")

	blocks := parseMarkup(text)
	require.Len(t, blocks, 3)

	assert.Equal(t, []string{"First", "Second"}, blocks[0].Items)
	assert.Equal(t, blockParagraph, blocks[1].Kind)
	assert.Equal(t, []string{"Third"}, blocks[2].Items)
}

func TestParseMarkupDashBullets(t *testing.T) {
	blocks := parseMarkup("- One\n- Two")
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"One", "Two"}, blocks[0].Items)
}

func TestParseMarkupStripsInlineMarkers(t *testing.T) {
	blocks := parseMarkup("Shows **strong** ownership and *clear* communication.")
	require.Len(t, blocks, 1)
	assert.Equal(t, "Shows strong ownership and clear communication.", blocks[0].Text)
}

func TestParseMarkupTrailingBulletsFlushed(t *testing.T) {
	blocks := parseMarkup("Intro line\n* Only bullet")
	require.Len(t, blocks, 2)
	assert.Equal(t, blockBullets, blocks[1].Kind)
}

func TestTruncateOverLimit(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := truncate(long, 500)
	assert.Len(t, got, 503)
	assert.Equal(t, strings.Repeat("a", 500)+"...", got)
}

func TestTruncateUnderLimitUnmodified(t *testing.T) {
	short := strings.Repeat("b", 400)
	assert.Equal(t, short, truncate(short, 500))
}

func TestTruncateExactLimitUnmodified(t *testing.T) {
	exact := strings.Repeat("c", 500)
	assert.Equal(t, exact, truncate(exact, 500))
}
