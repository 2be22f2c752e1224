package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	news     interfaces.NewsStorage
	analysis interfaces.AnalysisStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		news:     NewNewsStorage(db, logger),
		analysis: NewAnalysisStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// NewsStorage returns the news storage interface
func (m *Manager) NewsStorage() interfaces.NewsStorage {
	return m.news
}

// AnalysisStorage returns the analysis storage interface
func (m *Manager) AnalysisStorage() interfaces.AnalysisStorage {
	return m.analysis
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
