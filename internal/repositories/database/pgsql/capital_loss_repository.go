package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const capitalLossColumns = `loss_id, tax_year, loss_amount, remaining_loss, source, created_at, last_updated_at`

// ListOutstandingLossesInTx locks and retrieves losses with a remaining
// balance, oldest tax year first. Oldest-first ordering keeps loss
// consumption deterministic across aggregation runs.
func (r *PgxCGTRepository) ListOutstandingLossesInTx(ctx context.Context, tx pgx.Tx) ([]domain.CapitalLoss, error) {
	query := `
		SELECT ` + capitalLossColumns + `
		FROM capital_losses
		WHERE remaining_loss > 0
		ORDER BY tax_year ASC
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding losses: %w", err)
	}
	defer rows.Close()

	var modelLosses []models.CapitalLoss
	for rows.Next() {
		var m models.CapitalLoss
		if err := rows.Scan(
			&m.LossID,
			&m.TaxYear,
			&m.LossAmount,
			&m.RemainingLoss,
			&m.Source,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan capital loss row: %w", err)
		}
		modelLosses = append(modelLosses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capital loss rows: %w", err)
	}

	return mapping.ToDomainCapitalLossSlice(modelLosses), nil
}

// UpsertLossInTx inserts a loss record for a tax year, replacing the amounts
// if one already exists for that year.
func (r *PgxCGTRepository) UpsertLossInTx(ctx context.Context, tx pgx.Tx, loss domain.CapitalLoss) error {
	m := mapping.ToModelCapitalLoss(loss)

	query := `
		INSERT INTO capital_losses (` + capitalLossColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tax_year) DO UPDATE SET
			loss_amount = EXCLUDED.loss_amount,
			remaining_loss = EXCLUDED.remaining_loss,
			source = EXCLUDED.source,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := tx.Exec(ctx, query,
		m.LossID,
		m.TaxYear,
		m.LossAmount,
		m.RemainingLoss,
		m.Source,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert capital loss for %s: %w", m.TaxYear, err)
	}
	return nil
}

// UpdateRemainingLossInTx sets the remaining balance on a loss record.
func (r *PgxCGTRepository) UpdateRemainingLossInTx(ctx context.Context, tx pgx.Tx, lossID string, remaining decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE capital_losses
		SET remaining_loss = $2, last_updated_at = $3
		WHERE loss_id = $1;
	`

	tag, err := tx.Exec(ctx, query, lossID, remaining, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update capital loss %s: %w", lossID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("capital loss " + lossID + " not found for update")
	}
	return nil
}

// DeleteAllLossesInTx removes every loss record within tx.
func (r *PgxCGTRepository) DeleteAllLossesInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM capital_losses;`); err != nil {
		return fmt.Errorf("failed to delete capital losses: %w", err)
	}
	return nil
}
