package jwtx

import (
	"context"
	"log/slog"
	"time"

	"github.com/gruas/acesso/pkg/deferred"
)

// Refresher keeps a KeySet in sync with a Source. It reloads on a fixed
// interval and, when asked about an unknown kid, at most once per minGap.
type Refresher struct {
	Keys     *KeySet
	Source   Source
	Logger   *slog.Logger
	Interval time.Duration

	// OnResult, when set, observes every refresh attempt.
	OnResult func(err error)

	nudge  *deferred.Deferred[string]
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewRefresher creates a refresher. If interval is 0 or negative it
// defaults to 10 minutes; minGap defaults to 30 seconds.
func NewRefresher(keys *KeySet, src Source, logger *slog.Logger, interval, minGap time.Duration) *Refresher {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if minGap <= 0 {
		minGap = 30 * time.Second
	}
	r := &Refresher{
		Keys:     keys,
		Source:   src,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	r.nudge = deferred.New(deferred.Throttle, minGap, func(kid string) {
		r.Logger.Info("refreshing jwks for unknown kid", "kid", kid)
		_ = r.Refresh(context.Background())
	})
	return r
}

// Refresh loads the source once and swaps the key set on success.
func (r *Refresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	set, err := r.Source.Load(ctx)
	if err == nil {
		err = r.Keys.ResetFromJWKS(set)
	}
	if r.OnResult != nil {
		r.OnResult(err)
	}
	if err != nil {
		r.Logger.Error("jwks refresh failed", "error", err)
		return err
	}
	r.Logger.Debug("jwks refreshed", "keys", len(set.Keys))
	return nil
}

// RequestRefresh asks for a reload after kid was not found. Bursts are
// coalesced so a flood of bad tokens cannot hammer the issuer.
func (r *Refresher) RequestRefresh(kid string) {
	r.nudge.Update(kid)
}

// Start runs the periodic reload loop. Call Stop to shut it down.
func (r *Refresher) Start() {
	go r.run()
	r.Logger.Info("jwks refresher started", "interval", r.Interval)
}

// Stop shuts down the loop and drops any pending nudge.
func (r *Refresher) Stop() {
	r.nudge.Stop()
	close(r.stopCh)
	<-r.doneCh
	r.Logger.Info("jwks refresher stopped")
}

func (r *Refresher) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = r.Refresh(context.Background())
		case <-r.stopCh:
			return
		}
	}
}
