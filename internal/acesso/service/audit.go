package service

import (
	"context"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/pkg/cryptox"
)

// AuditService reads the decision log.
type AuditService struct {
	Store      store.Store
	SubjectKey []byte
}

type AuditQuery struct {
	// Subject is a raw token subject; it is fingerprinted before lookup.
	Subject string
	// Before is an exclusive record id cursor.
	Before string
	Limit  int
}

func (s *AuditService) List(ctx context.Context, q AuditQuery) ([]domain.DecisionRecord, error) {
	if q.Subject != "" {
		hash, err := cryptox.FingerprintSubject(s.SubjectKey, q.Subject)
		if err != nil {
			return nil, err
		}
		return s.Store.Decisions().ListDecisionsBySubject(ctx, hash, q.Before, q.Limit)
	}
	return s.Store.Decisions().ListDecisions(ctx, q.Before, q.Limit)
}

func (s *AuditService) Summary(ctx context.Context) ([]store.DecisionCount, error) {
	return s.Store.Decisions().SummarizeDecisions(ctx)
}
