package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/storage"
)

// TransferRepo implements storage.TransferRepository using PostgreSQL.
type TransferRepo struct {
	db *DB
}

// NewTransferRepo creates a new PostgreSQL transfer repository.
func NewTransferRepo(db *DB) *TransferRepo {
	return &TransferRepo{db: db}
}

type transferRow struct {
	ID              uuid.UUID `db:"id"`
	Asset           string    `db:"asset"`
	FromAddress     string    `db:"from_address"`
	ToAddress       string    `db:"to_address"`
	RequestedAmount string    `db:"requested_amount"`
	EffectiveAmount string    `db:"effective_amount"`
	Fee             string    `db:"fee"`
	TxID            string    `db:"tx_id"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (t *transferRow) toDomain() *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:              t.ID,
		Asset:           domain.Asset(t.Asset),
		From:            t.FromAddress,
		To:              t.ToAddress,
		RequestedAmount: t.RequestedAmount,
		EffectiveAmount: t.EffectiveAmount,
		Fee:             t.Fee,
		TxID:            t.TxID,
		Status:          domain.TransferStatus(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// Save inserts a journal row for an executed transfer.
func (r *TransferRepo) Save(ctx context.Context, rec *domain.TransferRecord) error {
	query := `
		INSERT INTO transfers (
			id, asset, from_address, to_address, requested_amount, effective_amount, fee, tx_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (tx_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, string(rec.Asset), rec.From, rec.To,
		rec.RequestedAmount, rec.EffectiveAmount, rec.Fee,
		rec.TxID, string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to save transfer: %w", err)
	}
	return nil
}

// UpdateStatus moves a journaled transfer to a new status.
func (r *TransferRepo) UpdateStatus(ctx context.Context, txID string, status domain.TransferStatus) error {
	query := `UPDATE transfers SET status = $1, updated_at = NOW() WHERE tx_id = $2`
	res, err := r.db.ExecContext(ctx, query, string(status), txID)
	if err != nil {
		return fmt.Errorf("failed to update transfer status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrTransferNotFound
	}
	return nil
}

// GetByTxID retrieves a journal row by transaction id.
func (r *TransferRepo) GetByTxID(ctx context.Context, txID string) (*domain.TransferRecord, error) {
	query := `
		SELECT id, asset, from_address, to_address, requested_amount, effective_amount, fee, tx_id, status, created_at, updated_at
		FROM transfers
		WHERE tx_id = $1
	`
	var row transferRow
	err := r.db.GetContext(ctx, &row, query, txID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrTransferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return row.toDomain(), nil
}

// ListRecent returns the newest journal rows, most recent first.
func (r *TransferRepo) ListRecent(ctx context.Context, limit int) ([]*domain.TransferRecord, error) {
	query := `
		SELECT id, asset, from_address, to_address, requested_amount, effective_amount, fee, tx_id, status, created_at, updated_at
		FROM transfers
		ORDER BY created_at DESC
		LIMIT $1
	`
	var rows []transferRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	recs := make([]*domain.TransferRecord, 0, len(rows))
	for i := range rows {
		recs = append(recs, rows[i].toDomain())
	}
	return recs, nil
}

// ListByStatus returns journal rows in a given status, oldest first.
func (r *TransferRepo) ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferRecord, error) {
	query := `
		SELECT id, asset, from_address, to_address, requested_amount, effective_amount, fee, tx_id, status, created_at, updated_at
		FROM transfers
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	var rows []transferRow
	if err := r.db.SelectContext(ctx, &rows, query, string(status), limit); err != nil {
		return nil, fmt.Errorf("failed to list transfers by status: %w", err)
	}

	recs := make([]*domain.TransferRecord, 0, len(rows))
	for i := range rows {
		recs = append(recs, rows[i].toDomain())
	}
	return recs, nil
}
