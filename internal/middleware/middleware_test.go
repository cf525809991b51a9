package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/spawnlight/internal/logging"
)

func TestPrometheusMiddleware_CountsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := NewPrometheusMiddleware("test", reg)

	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/ok", "/missing", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(mw.reqErrors.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(mw.reqInflight))
	assert.Equal(t, 2, testutil.CollectAndCount(mw.reqDuration))
}

func TestRequestLogger_SetsTraceHeader(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRequestLogger(logging.NewWriterLogger(&buf, "http", logging.INFO))

	rec := httptest.NewRecorder()
	rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
	assert.Contains(t, buf.String(), "/brew 418")
}

func TestMiddleware_WebsocketUpgrade(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := NewPrometheusMiddleware("test", reg)
	upgrader := websocket.Upgrader{}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		kind, data, err := conn.ReadMessage()
		if err == nil {
			_ = conn.WriteMessage(kind, data)
		}
	})

	srv := httptest.NewServer(NewRequestLogger(nil).Handler(mw.Handler(echo)))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", string(data))
}
