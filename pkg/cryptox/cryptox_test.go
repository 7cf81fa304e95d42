package cryptox_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruas/acesso/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseKeys(t *testing.T) {
	for _, alg := range []string{cryptox.AlgEdDSA, cryptox.AlgES256, cryptox.AlgRS256} {
		t.Run(alg, func(t *testing.T) {
			pemBytes, err := cryptox.GenerateKey(alg)
			require.NoError(t, err)
			require.Contains(t, string(pemBytes), "BEGIN PRIVATE KEY")

			key, got, err := cryptox.ParsePrivateKey(pemBytes)
			require.NoError(t, err)
			require.Equal(t, alg, got)

			switch alg {
			case cryptox.AlgEdDSA:
				require.IsType(t, ed25519.PrivateKey{}, key)
			case cryptox.AlgES256:
				require.IsType(t, &ecdsa.PrivateKey{}, key)
			case cryptox.AlgRS256:
				require.IsType(t, &rsa.PrivateKey{}, key)
			}
		})
	}
}

func TestGenerateKeyUnsupported(t *testing.T) {
	_, err := cryptox.GenerateKey("HS256")
	require.ErrorIs(t, err, cryptox.ErrUnsupportedAlg)
}

func TestParsePrivateKeyRejectsGarbage(t *testing.T) {
	_, _, err := cryptox.ParsePrivateKey([]byte("not a pem"))
	require.Error(t, err)
}

func TestFingerprintSubject(t *testing.T) {
	key := make([]byte, cryptox.SubjectKeySize)
	other := make([]byte, cryptox.SubjectKeySize)
	other[0] = 1

	a, err := cryptox.FingerprintSubject(key, "user-1")
	require.NoError(t, err)
	b, err := cryptox.FingerprintSubject(key, "user-1")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 43)
	require.NotContains(t, a, "user-1")

	c, err := cryptox.FingerprintSubject(key, "user-2")
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	d, err := cryptox.FingerprintSubject(other, "user-1")
	require.NoError(t, err)
	require.NotEqual(t, a, d)

	_, err = cryptox.FingerprintSubject(make([]byte, 65), "user-1")
	require.Error(t, err)
}

func TestLoadOrCreateSubjectKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "subject.key")

	first, err := cryptox.LoadOrCreateSubjectKey(path)
	require.NoError(t, err)
	require.Len(t, first, cryptox.SubjectKeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreateSubjectKey(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))
	_, err = cryptox.LoadOrCreateSubjectKey(path)
	require.Error(t, err)
}
