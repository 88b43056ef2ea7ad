package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/redis"
	"github.com/vietddude/payout/internal/infra/storage"
	"github.com/vietddude/payout/internal/transfer/metrics"
)

// Recorder journals broadcast transfers and enqueues them for confirmation.
// Both backends are optional so the library stays usable without
// infrastructure; recording failures are logged, never surfaced, because
// the transfer is already on the wire.
type Recorder struct {
	repo  storage.TransferRepository
	queue *redis.Client
	log   *slog.Logger
}

// NewRecorder creates a recorder. Either backend may be nil.
func NewRecorder(repo storage.TransferRepository, queue *redis.Client) *Recorder {
	return &Recorder{
		repo:  repo,
		queue: queue,
		log:   slog.Default().With("component", "recorder"),
	}
}

// RecordBroadcast journals an accepted broadcast as pending.
func (r *Recorder) RecordBroadcast(ctx context.Context, asset domain.Asset, req domain.TransferRequest, res *domain.TransferResult) {
	metrics.TransfersTotal.WithLabelValues(string(asset), "broadcast").Inc()

	if r == nil || res == nil {
		return
	}

	if r.repo != nil {
		rec := &domain.TransferRecord{
			ID:              uuid.New(),
			Asset:           asset,
			From:            req.From,
			To:              req.To,
			RequestedAmount: req.Amount,
			EffectiveAmount: res.Amount,
			Fee:             res.Fee,
			TxID:            res.TxID,
			Status:          domain.TransferPending,
		}
		if err := r.repo.Save(ctx, rec); err != nil {
			r.log.Error("failed to journal transfer", "tx_id", res.TxID, "error", err)
		}
	}

	if r.queue != nil {
		if err := r.queue.PushPending(ctx, asset, res.TxID, time.Now()); err != nil {
			r.log.Error("failed to enqueue transfer", "tx_id", res.TxID, "error", err)
		}
	}
}

// RecordRejected counts a transfer that never made it past validation or
// broadcast.
func (r *Recorder) RecordRejected(asset domain.Asset) {
	metrics.TransfersTotal.WithLabelValues(string(asset), "rejected").Inc()
}
