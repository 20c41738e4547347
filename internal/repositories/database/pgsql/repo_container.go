package pgsql

import (
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: newPgxLedgerRepository(dbPool),
		ParcelRepo: newPgxParcelRepository(dbPool),
		CGTRepo:    newPgxCGTRepository(dbPool),
		PriceRepo:  newPgxPriceRepository(dbPool),
	}
}
