package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gruas/acesso/internal/acesso/metrics"
	"github.com/gruas/acesso/pkg/cryptox"
	"github.com/gruas/acesso/pkg/jwtx"
)

// InitVerifier loads the issuer's JWKS and returns the verifier together
// with the refresher that keeps the key set current.
//
// The first load must succeed: starting without keys would reject every
// request. After that, failed refreshes keep the previous set.
func InitVerifier(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, *jwtx.Refresher, error) {
	keys := jwtx.NewKeySet()
	src := jwtx.Source{URL: cfg.JWKSURL, File: cfg.JWKSFile}

	refresher := jwtx.NewRefresher(keys, src, logger, cfg.JWKSRefreshInterval, 0)
	refresher.OnResult = metrics.ObserveJWKSRefresh
	if err := refresher.Refresh(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("initial jwks load: %w", err)
	}
	logger.Info("verification keys loaded", "keys", keys.Len(), "url", cfg.JWKSURL, "file", cfg.JWKSFile)

	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:       cfg.Issuer,
		Audience:     cfg.Audience,
		Leeway:       cfg.Leeway,
		OnUnknownKID: refresher.RequestRefresh,
	})
	return keys, verifier, refresher, nil
}

// LoadSubjectKey returns the key used to fingerprint token subjects in the
// decision log.
func LoadSubjectKey(cfg Config) ([]byte, error) {
	if cfg.SubjectKey != "" {
		return cryptox.DecodeSubjectKey(cfg.SubjectKey)
	}
	return cryptox.LoadOrCreateSubjectKey(cfg.SubjectKeyFile)
}
