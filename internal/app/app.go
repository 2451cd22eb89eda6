// Package app wires the lending registry's components together.
package app

import (
	"log/slog"

	"lendhub/internal/config"
	"lendhub/internal/domain"
	"lendhub/internal/service"
	"lendhub/internal/store"
)

// App holds the assembled services backed by a single shared store.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger

	Catalog   *service.CatalogService
	Directory *service.DirectoryService
	Ledger    *service.LedgerService
}

// New builds the application. All three services share one store, so every
// mutation across the catalog, directory, and ledger serialises on the same
// lock.
func New(cfg *config.Config, logger *slog.Logger) *App {
	st := store.New()

	catalogRepo := store.NewCatalogRepo(st)
	principalRepo := store.NewPrincipalRepo(st)
	ledgerRepo := store.NewLedgerRepo(st, domain.RandomIDGenerator{})

	return &App{
		Cfg:       cfg,
		Logger:    logger,
		Catalog:   service.NewCatalogService(catalogRepo),
		Directory: service.NewDirectoryService(principalRepo),
		Ledger:    service.NewLedgerService(ledgerRepo, domain.SystemClock{}),
	}
}
