package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ledgerService records buy transactions and serves ledger queries. A buy and
// the tax parcel it opens are written in the same database transaction.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	parcelRepo portsrepo.ParcelRepositoryWithTx
	now        func() time.Time
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, parcelRepo portsrepo.ParcelRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		parcelRepo: parcelRepo,
		now:        time.Now,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordBuy validates and persists a buy transaction and opens its tax parcel.
func (s *ledgerService) RecordBuy(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	stock := strings.ToUpper(strings.TrimSpace(req.Stock))
	if stock == "" {
		return nil, apperrors.NewValidationError("stock is required")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive")
	}
	if req.Price.IsNegative() || req.Fee.IsNegative() {
		return nil, apperrors.NewValidationError("price and fee cannot be negative")
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Stock:         stock,
		Date:          req.Date,
		Side:          domain.Buy,
		Quantity:      req.Quantity,
		Price:         req.Price,
		Total:         req.Price.Mul(decimal.NewFromInt(req.Quantity)),
		Fee:           req.Fee,
		Status:        domain.StatusExecuted,
	}
	txn.CreatedAt = now
	txn.LastUpdatedAt = now

	parcel := parcelFromBuy(txn, now)

	tx, err := s.parcelRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.parcelRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to rollback buy transaction")
			}
		}
	}()

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save buy transaction", slog.String("stock", stock))
		return nil, err
	}
	if err := s.parcelRepo.SaveParcelsInTx(ctx, tx, []domain.TaxParcel{parcel}); err != nil {
		s.LogError(ctx, err, "Failed to open tax parcel", slog.String("stock", stock))
		return nil, err
	}
	if err := s.parcelRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Buy recorded",
		slog.String("stock", stock),
		slog.Int64("quantity", txn.Quantity),
		slog.String("parcel_id", parcel.ParcelID))
	return &txn, nil
}

// GetTransaction retrieves a single transaction by ID.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.ledgerRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves ledger transactions, optionally filtered by stock.
func (s *ledgerService) ListTransactions(ctx context.Context, stock string) ([]domain.Transaction, error) {
	return s.ledgerRepo.ListTransactions(ctx, strings.ToUpper(strings.TrimSpace(stock)))
}
