// Package app provides store initialization.
package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/store"
	"github.com/rs/zerolog/log"
)

// InitializeStore creates the JSON file store for the catalog.
// The file itself is read lazily on the first request; a missing file only
// surfaces when it is actually needed (or never, with CreateIfMissing).
func InitializeStore(cfg config.StoreConfig) store.ItemStore {
	opts := []store.Option{
		store.WithReloadOnChange(cfg.ReloadOnChange),
	}
	if cfg.CreateIfMissing {
		opts = append(opts, store.WithCreateIfMissing())
	}

	s := store.NewJSONFileStore(cfg.Path, opts...)

	if err := s.Ping(); err != nil {
		log.Warn().Err(err).Str("path", cfg.Path).Msg("Catalog file is not readable yet")
	} else {
		log.Info().Str("path", cfg.Path).Msg("Catalog store initialized")
	}

	return s
}
