// Package service implements the synchronization engine: it keeps the
// denormalized counters of the server aggregate and the per-member profiles
// consistent as vocabularies change and usage counts are reported.
//
// The engine performs no in-process locking and no cross-call transactions.
// Single-entity increments are delegated to the store as native atomic
// updates and are safe under concurrency; the read-then-write paths
// (flag partitioning, delta filtering, the remove-user rollback) are not
// serialized, which is a documented property of the design.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"wordwatch/internal/audit"
	profilemetrics "wordwatch/internal/profile/metrics"
	"wordwatch/internal/profile/store/user"
	dErrors "wordwatch/pkg/domain-errors"
	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/sentinel"
)

// ServerStore is the server-profile persistence dependency.
type ServerStore interface {
	Exists(ctx context.Context, serverID int64) (bool, error)
	Create(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	Get(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	GetWords(ctx context.Context, serverID int64) (map[string]int64, error)
	InsertWords(ctx context.Context, serverID int64, words []string) error
	RemoveWords(ctx context.Context, serverID int64, words []string, flaggedRollback int64) error
	IncTotalWords(ctx context.Context, serverID int64, delta int64) error
	IncFlags(ctx context.Context, serverID int64, deltas map[string]int64, totalDelta int64) error
}

// UserStore is the user-profile persistence dependency.
type UserStore interface {
	Exists(ctx context.Context, serverID, userID int64) (bool, error)
	Get(ctx context.Context, serverID, userID int64) (*models.UserProfile, error)
	GetWords(ctx context.Context, serverID, userID int64) (map[string]int64, error)
	Insert(ctx context.Context, profile *models.UserProfile) error
	InsertMany(ctx context.Context, profiles []*models.UserProfile) (*models.CreateManyResult, error)
	ListByServer(ctx context.Context, serverID int64) ([]*models.UserProfile, error)
	SetWordsZero(ctx context.Context, serverID int64, words []string) error
	BulkRemoveWords(ctx context.Context, serverID int64, ops []user.RemoveWordsOp) error
	IncTotalWords(ctx context.Context, serverID, userID, delta int64) error
	IncFlags(ctx context.Context, serverID, userID int64, deltas map[string]int64, totalDelta int64) error
	Delete(ctx context.Context, serverID, userID int64) error
}

// AuditPublisher records profile mutations. Emission failures never fail the
// mutation that produced them.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the synchronization engine over both stores.
type Service struct {
	servers ServerStore
	users   UserStore
	logger  *slog.Logger
	metrics *profilemetrics.Metrics
	audit   AuditPublisher
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *profilemetrics.Metrics
	audit   AuditPublisher
}

// Option configures optional Service dependencies.
type Option func(*serviceConfig)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithMetrics attaches profile metrics.
func WithMetrics(m *profilemetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithAuditPublisher attaches a mutation audit sink.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = p }
}

// New constructs the synchronization engine.
func New(servers ServerStore, users UserStore, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		servers: servers,
		users:   users,
		logger:  logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
	}
}

func requireServerID(serverID int64) error {
	if serverID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "server id must be positive")
	}
	return nil
}

func requireUserID(userID int64) error {
	if userID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "user id must be positive")
	}
	return nil
}

// wrapStoreErr translates store sentinels into coded errors. Anything that is
// not a known fact about the data is a store failure and surfaces as
// internal; it is never retried here.
func wrapStoreErr(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, message+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, message+" already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "store failure")
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", string(event.Action),
			"server_id", event.ServerID,
			"error", err,
		)
	}
}
