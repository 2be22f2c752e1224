package badger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()

	manager, err := NewManager(common.GetLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "data"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func newsItem(id, date, title string) *models.NewsItem {
	return &models.NewsItem{
		ID:        id,
		Date:      date,
		Title:     title,
		Content:   "内容",
		ScrapedAt: time.Now(),
	}
}

func TestSaveAndGetNewsByDate(t *testing.T) {
	store := newTestManager(t).NewsStorage()

	require.NoError(t, store.SaveNewsItems([]*models.NewsItem{
		newsItem("2025-12-06-002", "2025-12-06", "乙"),
		newsItem("2025-12-06-001", "2025-12-06", "甲"),
		newsItem("2025-12-05-001", "2025-12-05", "昨日"),
	}))

	items, err := store.GetNewsByDate("2025-12-06")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-12-06-001", items[0].ID)
	assert.Equal(t, "2025-12-06-002", items[1].ID)
}

func TestSaveNewsUpserts(t *testing.T) {
	store := newTestManager(t).NewsStorage()

	require.NoError(t, store.SaveNews(newsItem("2025-12-06-001", "2025-12-06", "初稿")))
	require.NoError(t, store.SaveNews(newsItem("2025-12-06-001", "2025-12-06", "修订")))

	items, err := store.GetNewsByDate("2025-12-06")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "修订", items[0].Title)
}

func TestSaveNewsRejectsBadDate(t *testing.T) {
	store := newTestManager(t).NewsStorage()
	assert.Error(t, store.SaveNews(newsItem("x", "2025/12/06", "坏日期")))
}

func TestGetRecentNewsNewestFirst(t *testing.T) {
	store := newTestManager(t).NewsStorage()

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	require.NoError(t, store.SaveNewsItems([]*models.NewsItem{
		newsItem(yesterday+"-001", yesterday, "昨日"),
		newsItem(today+"-001", today, "今日"),
		newsItem(old+"-001", old, "上月"),
	}))

	items, err := store.GetRecentNews(7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "今日", items[0].Title)
	assert.Equal(t, "昨日", items[1].Title)
}

func TestAnalysisRoundTrip(t *testing.T) {
	store := newTestManager(t).AnalysisStorage()

	require.NoError(t, store.SaveAnalyses([]*models.InvestmentAnalysis{
		{NewsID: "2025-12-06-002", NewsDate: "2025-12-06", InvestmentOpportunityScore: 60, AnalyzedAt: time.Now()},
		{NewsID: "2025-12-06-001", NewsDate: "2025-12-06", InvestmentOpportunityScore: 80, AnalyzedAt: time.Now()},
		{NewsID: "2025-12-05-001", NewsDate: "2025-12-05", InvestmentOpportunityScore: 50, AnalyzedAt: time.Now()},
	}))

	analyses, err := store.GetAnalysisByDate("2025-12-06")
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, "2025-12-06-001", analyses[0].NewsID)
	assert.Equal(t, 80, analyses[0].InvestmentOpportunityScore)
}

func TestDeleteAnalysesByDate(t *testing.T) {
	store := newTestManager(t).AnalysisStorage()

	require.NoError(t, store.SaveAnalyses([]*models.InvestmentAnalysis{
		{NewsID: "2025-12-06-001", NewsDate: "2025-12-06", AnalyzedAt: time.Now()},
		{NewsID: "2025-12-06-002", NewsDate: "2025-12-06", AnalyzedAt: time.Now()},
		{NewsID: "2025-12-05-001", NewsDate: "2025-12-05", AnalyzedAt: time.Now()},
	}))

	deleted, err := store.DeleteAnalysesByDate("2025-12-06")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := store.GetAnalysisByDate("2025-12-06")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := store.GetAnalysisByDate("2025-12-05")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
