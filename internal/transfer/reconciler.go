package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
	redisclient "github.com/vietddude/payout/internal/infra/redis"
	"github.com/vietddude/payout/internal/infra/storage"
	"github.com/vietddude/payout/internal/transfer/metrics"
)

// ReconcilerConfig holds configuration for the confirmation reconciler.
type ReconcilerConfig struct {
	Interval  time.Duration // Poll interval (default: 15s)
	MinAge    time.Duration // Grace period before first check (default: 30s)
	MaxAge    time.Duration // Give up and mark failed after this (default: 30m)
	BatchSize int64         // Transfers checked per cycle (default: 50)
	LockTTL   time.Duration // Per-transfer reconcile lock TTL (default: 60s)
}

// DefaultReconcilerConfig returns default reconciler configuration.
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		Interval:  15 * time.Second,
		MinAge:    30 * time.Second,
		MaxAge:    30 * time.Minute,
		BatchSize: 50,
		LockTTL:   60 * time.Second,
	}
}

// Reconciler settles broadcast transfers: it polls the chain for each queued
// txid, decodes the receipt, and moves the journal row to confirmed or
// failed. Multiple instances coordinate through redis locks.
type Reconciler struct {
	cfg            ReconcilerConfig
	node           *tron.NodeClient
	queue          *redisclient.Client
	repo           storage.TransferRepository
	token          tron.Address
	tokenDecimals  int
	nativeDecimals int
	log            *slog.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(
	cfg ReconcilerConfig,
	node *tron.NodeClient,
	queue *redisclient.Client,
	repo storage.TransferRepository,
	token tron.Address,
	tokenDecimals, nativeDecimals int,
) *Reconciler {
	return &Reconciler{
		cfg:            cfg,
		node:           node,
		queue:          queue,
		repo:           repo,
		token:          token,
		tokenDecimals:  tokenDecimals,
		nativeDecimals: nativeDecimals,
		log:            slog.Default().With("component", "reconciler"),
	}
}

// Run starts the reconcile loop. Blocks until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	r.log.Info("Starting confirmation reconciler")

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Confirmation reconciler stopped")
			return nil
		case <-ticker.C:
			if err := r.reconcileOnce(ctx); err != nil {
				r.log.Error("Reconcile cycle failed", "error", err)
			}
		}
	}
}

func (r *Reconciler) reconcileOnce(ctx context.Context) error {
	if n, err := r.queue.PendingCount(ctx); err == nil {
		metrics.PendingTransfers.Set(float64(n))
	}

	members, err := r.queue.DuePending(ctx, r.cfg.MinAge, r.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("fetch due transfers: %w", err)
	}

	for _, member := range members {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		locked, err := r.queue.AcquireLock(ctx, member, r.cfg.LockTTL)
		if err != nil {
			r.log.Warn("Failed to acquire reconcile lock", "member", member, "error", err)
			continue
		}
		if !locked {
			continue
		}

		if err := r.reconcileMember(ctx, member); err != nil {
			r.log.Error("Failed to reconcile transfer", "member", member, "error", err)
		}

		if err := r.queue.ReleaseLock(ctx, member); err != nil {
			r.log.Warn("Failed to release reconcile lock", "member", member, "error", err)
		}
	}

	return nil
}

func (r *Reconciler) reconcileMember(ctx context.Context, member string) error {
	asset, txID, err := redisclient.ParsePendingMember(member)
	if err != nil {
		// Unreadable members would loop forever; drop them.
		metrics.ReconcilerChecks.WithLabelValues("invalid").Inc()
		return r.queue.RemovePending(ctx, member)
	}

	info, err := r.node.GetTransactionInfo(ctx, txID)
	if err != nil {
		metrics.ReconcilerChecks.WithLabelValues("error").Inc()
		return fmt.Errorf("fetch transaction info: %w", err)
	}

	if info == nil {
		return r.handleUnconfirmed(ctx, member, txID)
	}

	status := domain.TransferConfirmed
	switch asset {
	case domain.AssetToken:
		decoded, derr := DecodeTransactionInfo(info, r.token, r.tokenDecimals, r.nativeDecimals)
		var execErr *domain.ExecutionFailedError
		switch {
		case errors.As(derr, &execErr):
			r.log.Warn("Transfer reverted on chain", "tx_id", txID, "reason", execErr.Reason)
			status = domain.TransferFailed
		case derr != nil:
			metrics.ReconcilerChecks.WithLabelValues("error").Inc()
			return fmt.Errorf("decode receipt: %w", derr)
		case decoded == nil:
			// Included but not yet final; check again next cycle.
			return r.handleUnconfirmed(ctx, member, txID)
		}
	default:
		// Native transfers have no contract receipt; the transaction's own
		// contract results decide the outcome.
		tx, terr := r.node.GetTransaction(ctx, txID)
		if terr != nil {
			metrics.ReconcilerChecks.WithLabelValues("error").Inc()
			return fmt.Errorf("fetch transaction: %w", terr)
		}
		status = NativeOutcome(tx)
		if status == domain.TransferFailed {
			r.log.Warn("Native transfer failed on chain", "tx_id", txID)
		}
	}

	return r.settle(ctx, member, txID, status)
}

func (r *Reconciler) handleUnconfirmed(ctx context.Context, member, txID string) error {
	broadcastAt, err := r.queue.BroadcastTime(ctx, member)
	if err != nil {
		return err
	}
	if time.Since(broadcastAt) < r.cfg.MaxAge {
		metrics.ReconcilerChecks.WithLabelValues("pending").Inc()
		return nil
	}

	r.log.Warn("Transfer never confirmed, marking failed", "tx_id", txID)
	return r.settle(ctx, member, txID, domain.TransferFailed)
}

func (r *Reconciler) settle(ctx context.Context, member, txID string, status domain.TransferStatus) error {
	if r.repo != nil {
		if err := r.repo.UpdateStatus(ctx, txID, status); err != nil && !errors.Is(err, storage.ErrTransferNotFound) {
			metrics.ReconcilerChecks.WithLabelValues("error").Inc()
			return fmt.Errorf("update journal: %w", err)
		}
	}
	if err := r.queue.RemovePending(ctx, member); err != nil {
		return err
	}

	metrics.ReconcilerChecks.WithLabelValues(string(status)).Inc()
	r.log.Info("Transfer settled", "tx_id", txID, "status", status)
	return nil
}
