package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/config"
	"github.com/CyberCatD/youtube-to-list-app/internal/logger"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the configured store driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, path, err := OpenStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", cfg.Store.Driver, "path", path)
	return &StoreHandle{Store: s}, nil
}

// OpenStore opens the store driver named by cfg under cfg.Path and returns
// the location it opened.
func OpenStore(cfg config.StoreConfig, log *logger.Logger) (store.Store, string, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, "", fmt.Errorf("create data directory: %w", err)
	}
	storeLog := log.Component("store").Logger

	switch cfg.Driver {
	case config.DriverSQLite:
		path := filepath.Join(cfg.Path, "grocery.db")
		s, err := sqlite.Open(path, storeLog)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	case config.DriverBadger:
		path := filepath.Join(cfg.Path, "badger")
		s, err := store.Open(path, storeLog)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	default:
		return nil, "", fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
