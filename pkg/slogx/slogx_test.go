package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gruas/acesso/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slogx.NewWithWriter(&buf, slogx.Config{Service: "acesso", Version: "1.0", Env: "test", Level: "warn"})

	log.Info("dropped")
	log.Warn("kept", "k", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "acesso", rec["service"])
	require.EqualValues(t, 1, rec["k"])
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acesso.log")
	log := slogx.New(slogx.Config{Service: "acesso", Format: "text", File: path})
	log.Info("hello")
	require.FileExists(t, path)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.NotNil(t, slogx.FromContext(context.Background()))

	l := slogx.Discard()
	require.Same(t, l, slogx.FromContext(slogx.WithContext(context.Background(), l)))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slogx.NewWithWriter(&buf, slogx.Config{Service: "acesso"})

	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/guard", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Len(t, rec.Header().Get("X-Request-ID"), 26)
		require.Contains(t, buf.String(), `"msg":"inside"`)
		require.Contains(t, buf.String(), `"status":418`)
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
		require.Contains(t, buf.String(), `"req_id":"abc"`)
	})
}
