// Package main is the entry point for the catalog-service application.
//
// @title           Catalog Service API
// @version         1.0.0
// @description     REST API over a JSON-file-backed item catalog.
//
//	Supports paginated and searchable item listings, item lookup and
//	insertion, and a TTL-cached statistics endpoint.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/catalog-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required for writes if authentication is enabled.
//
// @tag.name        Items
// @tag.description Catalog item listing, lookup, and insertion
//
// @tag.name        Stats
// @tag.description Aggregate catalog statistics
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/catalog-service/docs" // swagger docs

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
