package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWithGZip_Response(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		status         int
		body           string
		wantEncoding   string
	}{
		{name: "compressed", acceptEncoding: "gzip, deflate", status: http.StatusOK, body: `{"ok":true}`, wantEncoding: "gzip"},
		{name: "client without gzip", acceptEncoding: "", status: http.StatusOK, body: `{"ok":true}`, wantEncoding: ""},
		{name: "no content", acceptEncoding: "gzip", status: http.StatusNoContent, wantEncoding: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Length", "999")
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			rec := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantEncoding, rec.Header().Get("Content-Encoding"))
			assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

			if tt.wantEncoding == "gzip" {
				assert.Empty(t, rec.Header().Get("Content-Length"))
				zr, err := gzip.NewReader(rec.Body)
				require.NoError(t, err)
				got, err := io.ReadAll(zr)
				require.NoError(t, err)
				assert.Equal(t, tt.body, string(got))
			} else {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestWithGZip_CompressedRequestBody(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gzipBytes(t, `{"email":"rex@example.com"}`)))
	req.Header.Set("Content-Encoding", "gzip")
	withGZip(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"email":"rex@example.com"}`, got)
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain text"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "well-formed id is reused", incoming: "req-123_abc", wantSame: true},
		{name: "missing id is generated"},
		{name: "id with spaces is replaced", incoming: "bad id"},
		{name: "overlong id is replaced", incoming: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
				return
			}
			parsed, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestWithLogging_WritesAccessEntry(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error", status: http.StatusBadGateway, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.NewLogger("test", logger.WithOutput(&buf))}

			router := chi.NewRouter()
			router.Use(h.withTraceID)
			router.Use(h.withLogging)
			router.Get("/api/pets/{petID}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/pets/7", nil)
			req.Header.Set(traceIDHeader, "trace-1")
			router.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "trace-1", entry["trace_id"])
			assert.Equal(t, "/api/pets/{petID}", entry["route"])
			assert.Equal(t, "/api/pets/7", entry["uri"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(4), entry["size"])
		})
	}
}

func TestResponseWriter(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		_, err := rw.Write([]byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rw.statusOrOK())
		assert.Equal(t, 5, rw.size)
	})

	t.Run("first status wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, rw.status)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("nothing written", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
		assert.Equal(t, http.StatusOK, rw.statusOrOK())
		assert.Equal(t, 0, rw.status)
	})

	t.Run("unwrap", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}
		assert.Same(t, rec, rw.Unwrap())
	})
}

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/items/1", http.StatusTeapot},
		{http.MethodPost, "/items/1", http.StatusNotFound},
		{http.MethodPut, "/items/1", http.StatusNotFound},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWithNoCache(t *testing.T) {
	rec := httptest.NewRecorder()
	withNoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
}
