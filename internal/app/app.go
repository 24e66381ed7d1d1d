// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/http"
)

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *gin.Engine {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	// Initialize the JSON file store
	itemStore := InitializeStore(cfg.Store)

	// Initialize business services (catalog queries + TTL-cached stats)
	serviceComponents := InitializeServices(itemStore, cfg.Stats)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents, itemStore, cfg)

	return http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)
}
