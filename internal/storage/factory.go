package storage

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/storage/badger"
	"github.com/ternarybob/newslens/internal/storage/memory"
)

// NewStorageManager creates the storage backend selected by
// storage.type. The backend is chosen once at startup and injected
// into every component that persists data.
func NewStorageManager(logger arbor.ILogger, config *common.Config) (interfaces.StorageManager, error) {
	switch config.Storage.Type {
	case "badger":
		return badger.NewManager(logger, &config.Storage.Badger)
	case "memory":
		return memory.NewManager(logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Storage.Type)
	}
}
