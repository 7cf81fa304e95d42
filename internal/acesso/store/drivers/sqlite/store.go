package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/internal/acesso/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

var _ store.Store = (*Store)(nil)

// DSN builds a modernc DSN for a database file. The pragmas are applied to
// every pooled connection.
func DSN(path string) string {
	v := url.Values{}
	v.Add("_pragma", "foreign_keys(1)")
	v.Add("_pragma", "busy_timeout(5000)")
	v.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + v.Encode()
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return newStore(db, dsn), nil
}

// NewStoreFromDB wraps an existing handle. Tests use it with sqlmock.
func NewStoreFromDB(db *sql.DB) *Store {
	return newStore(db, "")
}

func newStore(db *sql.DB, dsn string) *Store {
	return &Store{db: db, q: gen.New(db), dsn: dsn}
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Decisions() store.Decisions { return &decisionsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a primary key or unique violation into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func mapDecision(row gen.Decision) domain.DecisionRecord {
	return domain.DecisionRecord{
		ID:          row.ID,
		SubjectHash: row.SubjectHash,
		Role:        domain.Role(row.Role),
		Route:       row.Route,
		Kind:        domain.DecisionKind(row.Kind),
		Reason:      row.Reason,
		CreatedAt:   fromMillis(row.CreatedAtMs),
	}
}

func mapDecisions(rows []gen.Decision) []domain.DecisionRecord {
	out := make([]domain.DecisionRecord, len(rows))
	for i, row := range rows {
		out[i] = mapDecision(row)
	}
	return out
}
