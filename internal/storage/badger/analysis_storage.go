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

// analysisRecord wraps an analysis with a sortable date key, keyed by
// the analyzed news id so re-analysis overwrites in place.
type analysisRecord struct {
	NewsID   string `badgerhold:"key"`
	DateKey  int64  `badgerholdIndex:"DateKey"`
	Analysis models.InvestmentAnalysis
}

// AnalysisStorage implements interfaces.AnalysisStorage on Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new Badger-backed analysis storage
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) *AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

// SaveAnalysis upserts a single analysis keyed by its news id.
func (s *AnalysisStorage) SaveAnalysis(analysis *models.InvestmentAnalysis) error {
	noon, err := common.DateAtNoon(analysis.NewsDate)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", analysis.NewsID, err)
	}

	record := analysisRecord{
		NewsID:   analysis.NewsID,
		DateKey:  noon.UnixMilli(),
		Analysis: *analysis,
	}

	if err := s.db.Store().Upsert(analysis.NewsID, &record); err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", analysis.NewsID, err)
	}

	return nil
}

// SaveAnalyses upserts a batch of analyses.
func (s *AnalysisStorage) SaveAnalyses(analyses []*models.InvestmentAnalysis) error {
	for _, analysis := range analyses {
		if err := s.SaveAnalysis(analysis); err != nil {
			return err
		}
	}

	s.logger.Debug().Int("count", len(analyses)).Msg("Saved analyses")
	return nil
}

// GetAnalysisByDate returns all analyses for a date, ordered by news id.
func (s *AnalysisStorage) GetAnalysisByDate(date string) ([]*models.InvestmentAnalysis, error) {
	start, end, err := common.DayBounds(date)
	if err != nil {
		return nil, err
	}

	var records []analysisRecord
	query := badgerhold.Where("DateKey").Ge(start.UnixMilli()).And("DateKey").Le(end.UnixMilli())
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query analyses for %s: %w", date, err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].NewsID < records[j].NewsID
	})

	analyses := make([]*models.InvestmentAnalysis, 0, len(records))
	for i := range records {
		analysis := records[i].Analysis
		analyses = append(analyses, &analysis)
	}

	return analyses, nil
}

// GetRecentAnalyses returns analyses from the last N days, newest
// first, with the same widened window as recent news.
func (s *AnalysisStorage) GetRecentAnalyses(days int) ([]*models.InvestmentAnalysis, error) {
	if days < 1 {
		days = 1
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -(days + 1))

	var records []analysisRecord
	query := badgerhold.Where("DateKey").Ge(cutoff.UnixMilli()).And("DateKey").Le(now.AddDate(0, 0, 1).UnixMilli())
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query recent analyses: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].DateKey != records[j].DateKey {
			return records[i].DateKey > records[j].DateKey
		}
		return records[i].NewsID < records[j].NewsID
	})

	analyses := make([]*models.InvestmentAnalysis, 0, len(records))
	for i := range records {
		analysis := records[i].Analysis
		analyses = append(analyses, &analysis)
	}

	return analyses, nil
}

// DeleteAnalysesByDate removes all analyses for a date and returns the
// number deleted.
func (s *AnalysisStorage) DeleteAnalysesByDate(date string) (int, error) {
	start, end, err := common.DayBounds(date)
	if err != nil {
		return 0, err
	}

	query := badgerhold.Where("DateKey").Ge(start.UnixMilli()).And("DateKey").Le(end.UnixMilli())

	var records []analysisRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return 0, fmt.Errorf("failed to query analyses for %s: %w", date, err)
	}

	if len(records) == 0 {
		return 0, nil
	}

	if err := s.db.Store().DeleteMatching(&analysisRecord{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete analyses for %s: %w", date, err)
	}

	s.logger.Debug().Str("date", date).Int("count", len(records)).Msg("Deleted analyses")
	return len(records), nil
}
