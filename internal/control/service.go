package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/payout/internal/core/config"
	"github.com/vietddude/payout/internal/infra/chain/tron"
	redisclient "github.com/vietddude/payout/internal/infra/redis"
	"github.com/vietddude/payout/internal/infra/rpc"
	"github.com/vietddude/payout/internal/infra/storage"
	"github.com/vietddude/payout/internal/infra/storage/postgres"
	"github.com/vietddude/payout/internal/transfer"
)

const shutdownTimeout = 10 * time.Second

// Service wires the payout engine: RPC providers, node client, signer,
// transfer services, journal, confirmation queue, and the metrics server.
type Service struct {
	cfg config.AppConfig

	rpcClient  rpc.Client
	node       *tron.NodeClient
	signer     *HTTPSigner
	Coins      *transfer.CoinService
	Tokens     *transfer.TokenService
	reconciler *transfer.Reconciler
	db         *postgres.DB
	redis      *redisclient.Client
	repo       storage.TransferRepository
	server     *Server
	log        *slog.Logger
}

// NewService builds a fully wired service from configuration.
func NewService(cfg config.AppConfig) (*Service, error) {
	s := &Service{
		cfg: cfg,
		log: slog.Default().With("component", "service"),
	}

	// 1. RPC providers and failover client
	providers := make([]rpc.Provider, 0, len(cfg.Chain.Providers))
	for _, p := range cfg.Chain.Providers {
		hp := rpc.NewHTTPProvider(p.Name, p.URL, cfg.Chain.RequestTimeout)
		if p.APIKey != "" {
			hp.SetAPIKey(p.APIKey)
		}
		providers = append(providers, hp)
	}
	s.rpcClient = rpc.NewFailoverClient(cfg.Chain.Name, providers, rpc.DefaultRetryConfig)
	s.node = tron.NewNodeClient(s.rpcClient)

	// 2. Storage (optional)
	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		s.db = db
		s.repo = postgres.NewTransferRepo(db)
		s.log.Info("Using PostgreSQL transfer journal")
	}

	// 3. Confirmation queue (optional)
	if cfg.Redis.URL != "" {
		rc, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		s.redis = rc
	}

	// 4. Transfer services
	signer := NewHTTPSigner(cfg.Signer.URL, cfg.Signer.Timeout)
	s.signer = signer
	fees := transfer.NewFeeEstimator(cfg.Chain.EnergyPriceSun, cfg.Chain.BandwidthPriceSun, cfg.Chain.NativeDecimals)
	chain := transfer.NewChain(s.node, signer, fees, cfg.Chain.NativeDecimals, cfg.Chain.FeeLimitSun)
	recorder := transfer.NewRecorder(s.repo, s.redis)

	s.Coins = transfer.NewCoinService(chain, recorder)

	if cfg.Chain.Token.Contract != "" {
		contract, err := tron.ParseAddress(cfg.Chain.Token.Contract)
		if err != nil {
			return nil, fmt.Errorf("token contract: %w", err)
		}
		s.Tokens = transfer.NewTokenService(chain, contract, cfg.Chain.Token.Decimals, recorder)

		if s.redis != nil {
			s.reconciler = transfer.NewReconciler(
				transfer.DefaultReconcilerConfig(),
				s.node, s.redis, s.repo,
				contract, cfg.Chain.Token.Decimals, cfg.Chain.NativeDecimals,
			)
		}
	}

	s.server = NewServer(s, cfg.Server.Port)
	return s, nil
}

// Node exposes the typed node client for read-only CLI commands.
func (s *Service) Node() *tron.NodeClient {
	return s.node
}

// Wallet exposes address derivation backed by the signing service.
func (s *Service) Wallet() transfer.WalletFactory {
	return s.signer
}

// Journal exposes the transfer journal, nil when no database is configured.
func (s *Service) Journal() storage.TransferRepository {
	return s.repo
}

// Run starts the background workers and the metrics server, then blocks
// until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		s.log.Info("Starting metrics server", "port", s.cfg.Server.Port)
		if err := s.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	if s.reconciler != nil {
		go func() {
			if err := s.reconciler.Run(ctx); err != nil {
				errCh <- fmt.Errorf("reconciler: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		_ = s.Stop()
		return err
	}
}

// Health pings the service's backends.
func (s *Service) Health(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if s.redis != nil {
		if _, err := s.redis.PendingCount(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Stop shuts the service down and releases its resources.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := s.server.Stop(ctx); err != nil {
		firstErr = err
	}
	if err := s.rpcClient.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
