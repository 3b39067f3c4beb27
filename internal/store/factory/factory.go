// Package factory builds a concrete store backend from configuration,
// keeping backend selection out of the commands.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HeitorVic/my-wallet/internal/config"
	applog "github.com/HeitorVic/my-wallet/internal/log"
	"github.com/HeitorVic/my-wallet/internal/store"
	"github.com/HeitorVic/my-wallet/internal/store/memory"
	"github.com/HeitorVic/my-wallet/internal/store/mongo"
	"github.com/HeitorVic/my-wallet/internal/store/sqlite"
)

// BackendType identifies a persistence backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	MongoBackend  BackendType = "mongo"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is known
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, MongoBackend:
		return true
	default:
		return false
	}
}

// Open creates the store selected by the configuration
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	backendType := BackendType(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch backendType {
	case SQLiteBackend:
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("initialized sqlite backend", applog.FieldBackend, backendType.String(), "db_path", cfg.SQLiteDBPath)
		return s, nil

	case MongoBackend:
		s, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("initialize mongo backend: %w", err)
		}
		logger.Info("initialized mongo backend", applog.FieldBackend, backendType.String(), "database", cfg.MongoDatabase)
		return s, nil

	case MemoryBackend:
		logger.Info("initialized memory backend", applog.FieldBackend, backendType.String())
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}
