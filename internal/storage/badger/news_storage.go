package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
)

// newsRecord wraps a news item with a sortable date key for range
// scans. DateKey is the noon-anchored Beijing instant in unix millis.
type newsRecord struct {
	ID      string `badgerhold:"key"`
	DateKey int64  `badgerholdIndex:"DateKey"`
	Item    models.NewsItem
}

// NewsStorage implements interfaces.NewsStorage on Badger
type NewsStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewNewsStorage creates a new Badger-backed news storage
func NewNewsStorage(db *BadgerDB, logger arbor.ILogger) *NewsStorage {
	return &NewsStorage{
		db:     db,
		logger: logger,
	}
}

// SaveNews upserts a single news item keyed by its id.
func (s *NewsStorage) SaveNews(item *models.NewsItem) error {
	noon, err := common.DateAtNoon(item.Date)
	if err != nil {
		return fmt.Errorf("failed to save news %s: %w", item.ID, err)
	}

	record := newsRecord{
		ID:      item.ID,
		DateKey: noon.UnixMilli(),
		Item:    *item,
	}

	if err := s.db.Store().Upsert(item.ID, &record); err != nil {
		return fmt.Errorf("failed to save news %s: %w", item.ID, err)
	}

	return nil
}

// SaveNewsItems upserts a batch of news items.
func (s *NewsStorage) SaveNewsItems(items []*models.NewsItem) error {
	for _, item := range items {
		if err := s.SaveNews(item); err != nil {
			return err
		}
	}

	s.logger.Debug().Int("count", len(items)).Msg("Saved news items")
	return nil
}

// GetNewsByDate returns all news items for a date, ordered by id.
func (s *NewsStorage) GetNewsByDate(date string) ([]*models.NewsItem, error) {
	start, end, err := common.DayBounds(date)
	if err != nil {
		return nil, err
	}

	var records []newsRecord
	query := badgerhold.Where("DateKey").Ge(start.UnixMilli()).And("DateKey").Le(end.UnixMilli())
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query news for %s: %w", date, err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	items := make([]*models.NewsItem, 0, len(records))
	for i := range records {
		item := records[i].Item
		items = append(items, &item)
	}

	return items, nil
}

// GetRecentNews returns news from the last N days, newest first. The
// window is widened by one day on each side to absorb timezone skew
// between the caller's clock and the Beijing-anchored date keys.
func (s *NewsStorage) GetRecentNews(days int) ([]*models.NewsItem, error) {
	if days < 1 {
		days = 1
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -(days + 1))

	var records []newsRecord
	query := badgerhold.Where("DateKey").Ge(cutoff.UnixMilli()).And("DateKey").Le(now.AddDate(0, 0, 1).UnixMilli())
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query recent news: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].DateKey != records[j].DateKey {
			return records[i].DateKey > records[j].DateKey
		}
		return records[i].ID < records[j].ID
	})

	items := make([]*models.NewsItem, 0, len(records))
	for i := range records {
		item := records[i].Item
		items = append(items, &item)
	}

	return items, nil
}
