package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/models"
)

func TestAssembleAssignsSequentialIDs(t *testing.T) {
	articles := []scrapedArticle{
		{Link: models.NewsLink{Title: "甲", URL: "https://example.com/a.html"}, Content: "甲正文"},
		{Link: models.NewsLink{Title: "乙", URL: "https://example.com/b.html"}, Content: "乙正文"},
	}

	items := assemble("2025-12-06", articles)

	require.Len(t, items, 2)
	assert.Equal(t, "2025-12-06-001", items[0].ID)
	assert.Equal(t, "2025-12-06-002", items[1].ID)
	assert.Equal(t, "2025-12-06", items[0].Date)
	assert.Equal(t, "甲", items[0].Title)
	assert.Equal(t, "https://example.com/a.html", items[0].SourceURL)
	assert.False(t, items[0].ScrapedAt.IsZero())
}

func TestAssembleDropsEmptyContent(t *testing.T) {
	articles := []scrapedArticle{
		{Link: models.NewsLink{Title: "甲"}, Content: "甲正文"},
		{Link: models.NewsLink{Title: "乙"}, Content: ""},
		{Link: models.NewsLink{Title: "丙"}, Content: "丙正文"},
	}

	items := assemble("2025-12-06", articles)

	require.Len(t, items, 2)
	// Sequence numbers stay contiguous after the drop
	assert.Equal(t, "2025-12-06-001", items[0].ID)
	assert.Equal(t, "甲", items[0].Title)
	assert.Equal(t, "2025-12-06-002", items[1].ID)
	assert.Equal(t, "丙", items[1].Title)
}

func TestAssembleEmptyInput(t *testing.T) {
	assert.Empty(t, assemble("2025-12-06", nil))
}
