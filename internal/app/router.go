// Package app provides router configuration.
package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/http"
	"github.com/guttosm/catalog-service/internal/store"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, itemStore store.ItemStore, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(
		services.Catalog,
		services.Stats,
		http.WithPageLimits(cfg.Query.DefaultLimit, cfg.Query.MaxLimit),
	)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("store", http.HealthCheckerFunc(itemStore.Ping))

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
