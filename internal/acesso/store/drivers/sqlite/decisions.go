package sqlite

import (
	"context"
	"time"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/internal/acesso/store/drivers/sqlite/gen"
)

// MaxListLimit caps every list query.
const MaxListLimit = 500

type decisionsRepo struct {
	q *gen.Queries
}

func (r *decisionsRepo) InsertDecision(ctx context.Context, d domain.DecisionRecord) error {
	err := r.q.InsertDecision(ctx, gen.InsertDecisionParams{
		ID:          d.ID,
		SubjectHash: d.SubjectHash,
		Role:        string(d.Role),
		Route:       d.Route,
		Kind:        string(d.Kind),
		Reason:      d.Reason,
		CreatedAtMs: toMillis(d.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *decisionsRepo) GetDecision(ctx context.Context, id string) (domain.DecisionRecord, error) {
	row, err := r.q.GetDecision(ctx, id)
	if err != nil {
		return domain.DecisionRecord{}, mapNotFound(err)
	}
	return mapDecision(row), nil
}

func (r *decisionsRepo) ListDecisions(ctx context.Context, before string, limit int) ([]domain.DecisionRecord, error) {
	var (
		rows []gen.Decision
		err  error
	)
	if before == "" {
		rows, err = r.q.ListRecentDecisions(ctx, clampLimit(limit))
	} else {
		rows, err = r.q.ListDecisionsBefore(ctx, gen.ListDecisionsBeforeParams{ID: before, Limit: clampLimit(limit)})
	}
	if err != nil {
		return nil, err
	}
	return mapDecisions(rows), nil
}

func (r *decisionsRepo) ListDecisionsBySubject(ctx context.Context, subjectHash, before string, limit int) ([]domain.DecisionRecord, error) {
	var (
		rows []gen.Decision
		err  error
	)
	if before == "" {
		rows, err = r.q.ListDecisionsBySubject(ctx, gen.ListDecisionsBySubjectParams{
			SubjectHash: subjectHash,
			Limit:       clampLimit(limit),
		})
	} else {
		rows, err = r.q.ListDecisionsBySubjectBefore(ctx, gen.ListDecisionsBySubjectBeforeParams{
			SubjectHash: subjectHash,
			ID:          before,
			Limit:       clampLimit(limit),
		})
	}
	if err != nil {
		return nil, err
	}
	return mapDecisions(rows), nil
}

func (r *decisionsRepo) SummarizeDecisions(ctx context.Context) ([]store.DecisionCount, error) {
	rows, err := r.q.SummarizeDecisions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]store.DecisionCount, len(rows))
	for i, row := range rows {
		out[i] = store.DecisionCount{
			Kind:   domain.DecisionKind(row.Kind),
			Reason: row.Reason,
			Count:  row.Total,
		}
	}
	return out, nil
}

func (r *decisionsRepo) CountDecisions(ctx context.Context) (int64, error) {
	return r.q.CountDecisions(ctx)
}

func (r *decisionsRepo) DeleteDecisionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteDecisionsBefore(ctx, toMillis(cutoff))
}

func clampLimit(limit int) int64 {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return int64(limit)
}
