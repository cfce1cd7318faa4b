package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bookstore/internal/logger"
	"go-bookstore/internal/model"
)

func TestLogging_PropagatesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var meta model.RequestMeta
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta = model.RequestMetaFrom(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/9?x=1", nil)
	req.Header.Set(requestIDHeader, "req-42")
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()

	Logging(base, nil)(next).ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
	assert.Equal(t, model.RequestMeta{RequestID: "req-42", ClientIP: "192.0.2.10"}, meta)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, summary map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &summary))

	assert.Equal(t, "req-42", inner["request_id"])
	assert.Equal(t, "WARN", summary["level"])
	assert.Equal(t, float64(404), summary["status"])
	assert.Equal(t, "NOT_FOUND", summary["error_code"])
	assert.Equal(t, "x=1", summary["query"])
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	rec := httptest.NewRecorder()
	Logging(base, nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLogging_ReplacesInvalidRequestID(t *testing.T) {
	base := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name string
		id   string
		keep bool
	}{
		{name: "plain", id: "req-42", keep: true},
		{name: "uuid", id: "0b7c2f1e-6a55-4d8e-9d1e-2f3a4b5c6d7e", keep: true},
		{name: "dotted", id: "edge.01:trace_9", keep: true},
		{name: "too long", id: strings.Repeat("a", 65)},
		{name: "spaces", id: "req 42"},
		{name: "newline", id: "req\nforged=1"},
		{name: "markup", id: "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta model.RequestMeta
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				meta = model.RequestMetaFrom(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(requestIDHeader, tt.id)
			rec := httptest.NewRecorder()
			Logging(base, nil)(next).ServeHTTP(rec, req)

			got := rec.Header().Get(requestIDHeader)
			assert.Equal(t, meta.RequestID, got)
			if tt.keep {
				assert.Equal(t, tt.id, got)
				return
			}
			assert.NotEqual(t, tt.id, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestLogging_ClientIPFollowsTrustedProxy(t *testing.T) {
	base := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	proxies := NewProxyTrust([]netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")})

	var meta model.RequestMeta
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta = model.RequestMetaFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", nil)
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	Logging(base, proxies)(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.7", meta.ClientIP)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/token", nil)
	req.RemoteAddr = "203.0.113.9:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	Logging(base, proxies)(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", meta.ClientIP)
}
