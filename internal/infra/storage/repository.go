package storage

import (
	"context"
	"errors"

	"github.com/vietddude/payout/internal/core/domain"
)

var (
	// ErrTransferNotFound is returned when a journal row doesn't exist
	ErrTransferNotFound = errors.New("transfer not found")
)

// TransferRepository handles the transfer journal
type TransferRepository interface {
	// Save inserts a journal row for an executed transfer
	Save(ctx context.Context, rec *domain.TransferRecord) error

	// UpdateStatus moves a journaled transfer to a new status
	UpdateStatus(ctx context.Context, txID string, status domain.TransferStatus) error

	// GetByTxID retrieves a journal row by transaction id
	GetByTxID(ctx context.Context, txID string) (*domain.TransferRecord, error)

	// ListRecent returns the newest journal rows, most recent first
	ListRecent(ctx context.Context, limit int) ([]*domain.TransferRecord, error)

	// ListByStatus returns journal rows in a given status, oldest first
	ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferRecord, error)
}
