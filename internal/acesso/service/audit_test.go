package service

import (
	"context"
	"testing"
	"time"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/stretchr/testify/require"
)

func TestAuditService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	rec := NewDecisionRecorder(st, testSubjectKey, discardLogger(), RecorderConfig{FlushDelay: time.Hour})
	rec.Record("alice", "Clientes", denyAt("/dashboard/rh"))
	rec.Record("alice", "Clientes", denyAt("/dashboard/financeiro"))
	rec.Record("bob", "Operários", domain.Deny("/x", "", domain.ReasonUnknownRoute))
	require.NoError(t, rec.Close(ctx))

	audit := &AuditService{Store: st, SubjectKey: testSubjectKey}

	t.Run("list newest first", func(t *testing.T) {
		all, err := audit.List(ctx, AuditQuery{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, "/x", all[0].Route)

		page, err := audit.List(ctx, AuditQuery{Before: all[0].ID, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		require.Equal(t, all[1].ID, page[0].ID)
	})

	t.Run("by raw subject", func(t *testing.T) {
		got, err := audit.List(ctx, AuditQuery{Subject: "alice", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("subject pages follow the cursor", func(t *testing.T) {
		first, err := audit.List(ctx, AuditQuery{Subject: "alice", Limit: 1})
		require.NoError(t, err)
		require.Len(t, first, 1)
		require.Equal(t, "/dashboard/financeiro", first[0].Route)

		second, err := audit.List(ctx, AuditQuery{Subject: "alice", Before: first[0].ID, Limit: 1})
		require.NoError(t, err)
		require.Len(t, second, 1)
		require.NotEqual(t, first[0].ID, second[0].ID)
		require.Equal(t, "/dashboard/rh", second[0].Route)

		rest, err := audit.List(ctx, AuditQuery{Subject: "alice", Before: second[0].ID, Limit: 1})
		require.NoError(t, err)
		require.Empty(t, rest)
	})

	t.Run("summary", func(t *testing.T) {
		sum, err := audit.Summary(ctx)
		require.NoError(t, err)
		counts := map[string]int64{}
		for _, c := range sum {
			counts[c.Reason] = c.Count
		}
		require.Equal(t, int64(2), counts[domain.ReasonMissingPermission])
		require.Equal(t, int64(1), counts[domain.ReasonUnknownRoute])
	})
}
