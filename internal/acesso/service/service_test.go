package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gruas/acesso/internal/acesso/catalog"
	"github.com/gruas/acesso/internal/acesso/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var testSubjectKey = []byte("0123456789abcdef0123456789abcdef")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "acesso.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func defaultModel(t *testing.T) *catalog.Model {
	t.Helper()
	m, err := catalog.LoadModel("")
	require.NoError(t, err)
	return m
}

func countDecisions(t *testing.T, st *sqlite.Store) int64 {
	t.Helper()
	n, err := st.Decisions().CountDecisions(context.Background())
	require.NoError(t, err)
	return n
}
