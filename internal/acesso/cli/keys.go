package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gruas/acesso/pkg/cryptox"
	"github.com/gruas/acesso/pkg/idx"
	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/spf13/cobra"
)

const (
	signingKeyFile = "signing.pem"
	jwksFile       = "jwks.json"
)

func newKeygenCmd() *cobra.Command {
	var (
		alg   string
		kid   string
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key and the JWKS that verifies it",
		Long:  "keygen writes a PKCS8 private key and a one-key jwks.json into --dir. Point ACESSO_JWKS_FILE at the jwks.json to accept tokens from dev-token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath := filepath.Join(dir, signingKeyFile)
			jwksPath := filepath.Join(dir, jwksFile)
			if !force {
				for _, p := range []string{keyPath, jwksPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", p)
					}
				}
			}
			if kid == "" {
				kid = strings.ToLower(idx.New().String())
			}

			pemKey, err := cryptox.GenerateKey(alg)
			if err != nil {
				return err
			}
			signer, err := jwtx.NewSigner(kid, pemKey)
			if err != nil {
				return err
			}
			set, err := json.MarshalIndent(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}}, "", "  ")
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			if err := os.WriteFile(keyPath, pemKey, 0o600); err != nil {
				return fmt.Errorf("write signing key: %w", err)
			}
			if err := os.WriteFile(jwksPath, append(set, '\n'), 0o644); err != nil {
				return fmt.Errorf("write jwks: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kid: %s\nalg: %s\n", kid, signer.Alg())
			fmt.Fprintf(out, "private key: %s\njwks: %s\n", keyPath, jwksPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&alg, "alg", cryptox.AlgEdDSA, "signing algorithm: EdDSA, ES256 or RS256")
	cmd.Flags().StringVar(&kid, "kid", "", "key id (default: a fresh ULID)")
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func newDevTokenCmd() *cobra.Command {
	var (
		keyPath  string
		kid      string
		subject  string
		role     string
		issuer   string
		audience []string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dev-token",
		Short: "Sign a development access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role == "" {
				return errors.New("--role is required")
			}
			if kid == "" {
				return errors.New("--kid is required; it must match the kid in the served jwks")
			}
			pemKey, err := os.ReadFile(keyPath)
			if err != nil {
				return fmt.Errorf("read signing key: %w", err)
			}
			signer, err := jwtx.NewSigner(kid, pemKey)
			if err != nil {
				return err
			}
			tok, err := signer.Sign(jwtx.NewClaims(subject, role, ttl, issuer, audience, time.Now()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", signingKeyFile, "PEM private key written by keygen")
	cmd.Flags().StringVar(&kid, "kid", "", "key id printed by keygen")
	cmd.Flags().StringVar(&subject, "sub", "dev-user", "token subject")
	cmd.Flags().StringVar(&role, "role", "", "role claim, e.g. Gestores")
	cmd.Flags().StringVar(&issuer, "issuer", os.Getenv("ACESSO_ISSUER"), "iss claim")
	cmd.Flags().StringSliceVar(&audience, "aud", nil, "aud claim, repeatable")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func newSubjectKeyCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "subject-key",
		Short: "Create the key used to fingerprint subjects in the decision log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if _, err := cryptox.LoadOrCreateSubjectKey(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subject key written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "out", "subject.key", "destination file")
	return cmd
}
