package services

import (
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ParcelRepo)
	container.CGT = NewCGTService(repos.LedgerRepo, repos.ParcelRepo, repos.CGTRepo, repos.PriceRepo)
	container.Price = NewPriceService(repos.PriceRepo)
	container.Token = NewTokenService(cfg)

	return container
}
