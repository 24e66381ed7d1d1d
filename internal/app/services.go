// Package app provides service initialization.
package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/store"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog service.CatalogService
	Stats   service.StatsService
}

// InitializeServices initializes business logic services.
// When InvalidateOnWrite is set, inserts drop the cached stats snapshot so
// the next stats read reflects the new item immediately.
func InitializeServices(itemStore store.ItemStore, cfg config.StatsConfig) *ServiceComponents {
	var statsOpts []service.StatsOption
	if cfg.TTL > 0 {
		statsOpts = append(statsOpts, service.WithStatsTTL(cfg.TTL))
	}
	stats := service.NewStatsService(itemStore, statsOpts...)

	var catalogOpts []service.CatalogOption
	if cfg.InvalidateOnWrite {
		catalogOpts = append(catalogOpts, service.WithWriteHook(stats.Invalidate))
	}
	catalog := service.NewCatalogService(itemStore, catalogOpts...)

	return &ServiceComponents{
		Catalog: catalog,
		Stats:   stats,
	}
}
