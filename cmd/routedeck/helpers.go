// Shared helpers for routedeck CLI commands.
package main

import (
	"fmt"

	"github.com/routedeck/routedeck/internal/sqlite"
	"github.com/routedeck/routedeck/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:       dataDir,
		ListenAddr:    loadedConfig.listenAddr,
		DefaultRegion: loadedConfig.defaultRegion,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}
