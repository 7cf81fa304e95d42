package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// SubjectKeySize is the length of the keyed-hash secret in bytes.
const SubjectKeySize = 32

// FingerprintSubject returns a keyed BLAKE2b-256 digest of a subject id,
// base64url encoded. Equal subjects map to equal fingerprints under the
// same key; without the key the id cannot be recovered or confirmed.
func FingerprintSubject(key []byte, subject string) (string, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: subject key: %w", err)
	}
	h.Write([]byte(subject))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

// DecodeSubjectKey parses a base64url key as stored on disk or in the
// environment.
func DecodeSubjectKey(s string) ([]byte, error) {
	key, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode subject key: %w", err)
	}
	if len(key) < 16 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("cryptox: subject key must be 16..64 bytes, got %d", len(key))
	}
	return key, nil
}

// LoadOrCreateSubjectKey reads the key stored at path, creating the file
// with a fresh random key when it does not exist yet.
func LoadOrCreateSubjectKey(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create key dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return DecodeSubjectKey(string(data))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cryptox: read subject key: %w", err)
	}

	key := make([]byte, SubjectKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("cryptox: generate subject key: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: write subject key: %w", err)
	}
	return key, nil
}
