package store

import (
	"context"
	"errors"
	"time"

	"github.com/gruas/acesso/internal/acesso/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx-scoped Store cannot open a nested Tx.
type Store interface {
	Decisions() Decisions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Decisions is the audit log of guard decisions.
type Decisions interface {
	// InsertDecision appends a record. IDs are ULIDs chosen by the caller.
	InsertDecision(ctx context.Context, d domain.DecisionRecord) error

	GetDecision(ctx context.Context, id string) (domain.DecisionRecord, error)

	// ListDecisions returns up to limit records newest first. A non-empty
	// before is an exclusive ID cursor.
	ListDecisions(ctx context.Context, before string, limit int) ([]domain.DecisionRecord, error)

	// ListDecisionsBySubject returns one subject's records newest first,
	// with the same cursor as ListDecisions.
	ListDecisionsBySubject(ctx context.Context, subjectHash, before string, limit int) ([]domain.DecisionRecord, error)

	// SummarizeDecisions counts records per (kind, reason).
	SummarizeDecisions(ctx context.Context) ([]DecisionCount, error)

	CountDecisions(ctx context.Context) (int64, error)

	// DeleteDecisionsBefore removes records created before cutoff and
	// reports how many were deleted.
	DeleteDecisionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type DecisionCount struct {
	Kind   domain.DecisionKind
	Reason string
	Count  int64
}
