package http

import (
	"net/http"
	"strconv"

	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/pkg/acessosdk"
	"github.com/gruas/acesso/pkg/httpx"
	"github.com/gruas/acesso/pkg/idx"
	"github.com/gruas/acesso/pkg/slogx"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditHandler struct {
	AuditService *service.AuditService
}

// HandleList pages through audited denies
//
//	@Summary		List denied decisions
//	@Description	Newest first. Pass next_before from the previous page as before. subject is a raw
//	@Description	token subject, fingerprinted server side. Requires perfis:gerenciar at admin level.
//	@Tags			Audit
//	@Produce		json
//	@Param			subject	query		string								false	"raw token subject"
//	@Param			before	query		string								false	"exclusive id cursor"
//	@Param			limit	query		int									false	"page size (max 500)"
//	@Success		200		{object}	acessosdk.ListDecisionsResponse		"Page of records"
//	@Failure		400		{object}	acessosdk.ErrorResponse				"Bad cursor or limit"
//	@Failure		401		{object}	acessosdk.ErrorResponse				"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	acessosdk.ErrorResponse				"Forbidden - missing required permission"
//	@Security		BearerAuth
//	@Router			/v1/audit/decisions [get].
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	query := service.AuditQuery{
		Subject: q.Get("subject"),
		Before:  q.Get("before"),
		Limit:   defaultAuditLimit,
	}
	if query.Before != "" {
		if _, err := idx.Parse(query.Before); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, acessosdk.ErrorCodeInvalidRequest, "before must be a record id")
			return
		}
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, acessosdk.ErrorCodeInvalidRequest, "limit must be a positive integer")
			return
		}
		query.Limit = min(n, maxAuditLimit)
	}

	records, err := h.AuditService.List(ctx, query)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list decisions", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, acessosdk.ErrorCodeServerError, "failed to list decisions")
		return
	}

	resp := acessosdk.ListDecisionsResponse{
		Decisions: make([]acessosdk.DecisionRecord, len(records)),
	}
	for i, rec := range records {
		resp.Decisions[i] = toDecisionRecord(rec)
	}
	// A full page may have more behind it.
	if len(records) > 0 && len(records) == query.Limit {
		resp.NextBefore = records[len(records)-1].ID
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSummary counts audited decisions
//
//	@Summary		Summarize denied decisions
//	@Description	Counts per kind and reason. Requires perfis:gerenciar at admin level.
//	@Tags			Audit
//	@Produce		json
//	@Success		200	{object}	acessosdk.DecisionSummaryResponse	"Counts"
//	@Failure		401	{object}	acessosdk.ErrorResponse				"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	acessosdk.ErrorResponse				"Forbidden - missing required permission"
//	@Security		BearerAuth
//	@Router			/v1/audit/summary [get].
func (h *AuditHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.AuditService.Summary(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to summarize decisions", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, acessosdk.ErrorCodeServerError, "failed to summarize decisions")
		return
	}

	resp := acessosdk.DecisionSummaryResponse{Counts: make([]acessosdk.DecisionCount, len(counts))}
	for i, c := range counts {
		resp.Counts[i] = acessosdk.DecisionCount{Kind: string(c.Kind), Reason: c.Reason, Count: c.Count}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
