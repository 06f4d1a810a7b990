package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/handler"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresHTTPHandler(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func newTestHTTPServer(t *testing.T) *httpServer {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	h := newHTTPServer(mux, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, h.listen())
	return h
}

func TestRun_ServesUntilContextIsDone(t *testing.T) {
	h := newTestHTTPServer(t)
	s := &server{httpServer: h, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	url := "http://" + h.listener.Addr().String() + "/ping"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ReportsListenErrors(t *testing.T) {
	taken := newTestHTTPServer(t)
	defer taken.listener.Close()

	s := &server{
		httpServer: newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: taken.listener.Addr().String()}, logger.Nop()),
		logger:     logger.Nop(),
	}

	err := s.run(context.Background())
	assert.Error(t, err)
}
