package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/models"
)

// Manager implements StorageManager with in-process maps. Used for
// tests and local development without a database directory.
type Manager struct {
	news     *NewsStorage
	analysis *AnalysisStorage
	logger   arbor.ILogger
}

// NewManager creates a new in-memory storage manager
func NewManager(logger arbor.ILogger) interfaces.StorageManager {
	return &Manager{
		news:     NewNewsStorage(),
		analysis: NewAnalysisStorage(),
		logger:   logger,
	}
}

func (m *Manager) NewsStorage() interfaces.NewsStorage {
	return m.news
}

func (m *Manager) AnalysisStorage() interfaces.AnalysisStorage {
	return m.analysis
}

func (m *Manager) Close() error {
	return nil
}

// NewsStorage is the in-memory news backend, keyed by item id.
type NewsStorage struct {
	mu    sync.RWMutex
	items map[string]models.NewsItem
}

func NewNewsStorage() *NewsStorage {
	return &NewsStorage{items: make(map[string]models.NewsItem)}
}

func (s *NewsStorage) SaveNews(item *models.NewsItem) error {
	if _, err := common.ParseDate(item.Date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *NewsStorage) SaveNewsItems(items []*models.NewsItem) error {
	for _, item := range items {
		if err := s.SaveNews(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *NewsStorage) GetNewsByDate(date string) ([]*models.NewsItem, error) {
	if _, err := common.ParseDate(date); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.NewsItem, 0)
	for _, item := range s.items {
		if item.Date == date {
			copied := item
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *NewsStorage) GetRecentNews(days int) ([]*models.NewsItem, error) {
	if days < 1 {
		days = 1
	}
	cutoff := time.Now().AddDate(0, 0, -(days + 1))

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.NewsItem, 0)
	for _, item := range s.items {
		noon, err := common.DateAtNoon(item.Date)
		if err != nil {
			continue
		}
		if noon.After(cutoff) {
			copied := item
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// AnalysisStorage is the in-memory analysis backend, keyed by news id.
type AnalysisStorage struct {
	mu       sync.RWMutex
	analyses map[string]models.InvestmentAnalysis
}

func NewAnalysisStorage() *AnalysisStorage {
	return &AnalysisStorage{analyses: make(map[string]models.InvestmentAnalysis)}
}

func (s *AnalysisStorage) SaveAnalysis(analysis *models.InvestmentAnalysis) error {
	if _, err := common.ParseDate(analysis.NewsDate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[analysis.NewsID] = *analysis
	return nil
}

func (s *AnalysisStorage) SaveAnalyses(analyses []*models.InvestmentAnalysis) error {
	for _, analysis := range analyses {
		if err := s.SaveAnalysis(analysis); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalysisStorage) GetAnalysisByDate(date string) ([]*models.InvestmentAnalysis, error) {
	if _, err := common.ParseDate(date); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.InvestmentAnalysis, 0)
	for _, analysis := range s.analyses {
		if analysis.NewsDate == date {
			copied := analysis
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].NewsID < result[j].NewsID
	})

	return result, nil
}

func (s *AnalysisStorage) GetRecentAnalyses(days int) ([]*models.InvestmentAnalysis, error) {
	if days < 1 {
		days = 1
	}
	cutoff := time.Now().AddDate(0, 0, -(days + 1))

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.InvestmentAnalysis, 0)
	for _, analysis := range s.analyses {
		noon, err := common.DateAtNoon(analysis.NewsDate)
		if err != nil {
			continue
		}
		if noon.After(cutoff) {
			copied := analysis
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].NewsDate != result[j].NewsDate {
			return result[i].NewsDate > result[j].NewsDate
		}
		return result[i].NewsID < result[j].NewsID
	})

	return result, nil
}

func (s *AnalysisStorage) DeleteAnalysesByDate(date string) (int, error) {
	if _, err := common.ParseDate(date); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, analysis := range s.analyses {
		if analysis.NewsDate == date {
			delete(s.analyses, id)
			deleted++
		}
	}

	return deleted, nil
}
