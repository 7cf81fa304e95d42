package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/metrics"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/pkg/cryptox"
	"github.com/gruas/acesso/pkg/deferred"
	"github.com/gruas/acesso/pkg/idx"
)

type RecorderConfig struct {
	// FlushDelay is the quiet period after the last record before a flush.
	FlushDelay time.Duration
	// BatchSize triggers an immediate flush once that many records wait.
	BatchSize int
	// MaxBuffered bounds memory while the store is slow; extra records are dropped.
	MaxBuffered int
}

// DecisionRecorder buffers deny decisions and writes them to the store in
// one transaction per flush. Subjects are fingerprinted before buffering.
type DecisionRecorder struct {
	Store  store.Store
	Logger *slog.Logger

	key      []byte
	cfg      RecorderConfig
	debounce *deferred.Deferred[struct{}]
	now      func() time.Time

	mu     sync.Mutex
	buf    []domain.DecisionRecord
	closed bool

	flushMu sync.Mutex // one flush at a time
}

func NewDecisionRecorder(st store.Store, subjectKey []byte, logger *slog.Logger, cfg RecorderConfig) *DecisionRecorder {
	if cfg.FlushDelay <= 0 {
		cfg.FlushDelay = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxBuffered < cfg.BatchSize {
		cfg.MaxBuffered = cfg.BatchSize * 10
	}

	r := &DecisionRecorder{
		Store:  st,
		Logger: logger,
		key:    subjectKey,
		cfg:    cfg,
		now:    time.Now,
	}
	r.debounce = deferred.New(deferred.Debounce, cfg.FlushDelay, func(struct{}) {
		if err := r.Flush(context.Background()); err != nil {
			r.Logger.Error("audit flush failed", "error", err)
		}
	})
	return r
}

// Record queues a decision. It never blocks on the store.
func (r *DecisionRecorder) Record(subject string, role domain.Role, d domain.Decision) {
	hash, err := cryptox.FingerprintSubject(r.key, subject)
	if err != nil {
		r.Logger.Error("fingerprint subject", "error", err)
		return
	}
	now := r.now().UTC()
	rec := domain.DecisionRecord{
		ID:          idx.NewAt(now).String(),
		SubjectHash: hash,
		Role:        role,
		Route:       d.Route,
		Kind:        d.Kind,
		Reason:      d.Reason,
		CreatedAt:   now,
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if len(r.buf) >= r.cfg.MaxBuffered {
		r.mu.Unlock()
		metrics.AuditRecordsDropped.Inc()
		return
	}
	r.buf = append(r.buf, rec)
	n := len(r.buf)
	r.mu.Unlock()

	metrics.AuditBuffered.Set(float64(n))
	if n >= r.cfg.BatchSize {
		r.debounce.Cancel()
		go func() {
			if err := r.Flush(context.Background()); err != nil {
				r.Logger.Error("audit flush failed", "error", err)
			}
		}()
		return
	}
	r.debounce.Update(struct{}{})
}

// Flush writes everything buffered so far. Records of a failed flush are
// dropped rather than retried, keeping memory bounded.
func (r *DecisionRecorder) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	batch := r.buf
	r.buf = nil
	r.mu.Unlock()
	metrics.AuditBuffered.Set(0)

	if len(batch) == 0 {
		return nil
	}

	err := r.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, rec := range batch {
			if err := tx.Decisions().InsertDecision(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.AuditFlushesTotal.WithLabelValues("error").Inc()
		metrics.AuditRecordsDropped.Add(float64(len(batch)))
		return err
	}

	metrics.AuditFlushesTotal.WithLabelValues("ok").Inc()
	metrics.AuditRecordsWritten.Add(float64(len(batch)))
	r.Logger.Debug("audit flushed", "records", len(batch))
	return nil
}

// Buffered reports how many records wait for the next flush.
func (r *DecisionRecorder) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf)
}

// Close stops accepting records and flushes what is left.
func (r *DecisionRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.debounce.Stop()
	return r.Flush(ctx)
}
