package bootstrap

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingEvents struct {
	mu      sync.Mutex
	entries []EventLog
}

func (r *recordingEvents) Log(_ context.Context, entry EventLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func TestServer_Serve(t *testing.T) {
	t.Run("serves until canceled then records the shutdown", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		events := &recordingEvents{}
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		})
		srv := NewServer(handler, ServerConfig{ShutdownTimeout: time.Second}, events, zap.NewNop())

		ctx, cancel := context.WithCancelCause(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.serve(ctx, ln) }()

		resp, err := http.Get("http://" + ln.Addr().String())
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, "ok", string(body))

		cancel(errors.New("terminated"))

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}

		events.mu.Lock()
		defer events.mu.Unlock()
		require.Len(t, events.entries, 1)
		assert.Equal(t, "SERVER_SHUTDOWN", events.entries[0].Action)
		assert.Equal(t, "terminated", events.entries[0].Meta["cause"])
	})

	t.Run("negative - port already taken", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		_, port, err := net.SplitHostPort(ln.Addr().String())
		require.NoError(t, err)

		srv := NewServer(http.NotFoundHandler(), ServerConfig{Port: port}, nil, zap.NewNop())
		srv.http.Addr = "127.0.0.1:" + port

		assert.Error(t, srv.Run(context.Background()))
	})
}
