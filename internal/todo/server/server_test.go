package server

import (
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskhub/internal/todo/dispatch"
	"github.com/aussiebroadwan/taskhub/internal/todo/service"
	"github.com/aussiebroadwan/taskhub/internal/todo/store/drivers/file"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	st := file.NewStore(filepath.Join(t.TempDir(), "snapshot.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := service.New(st, logger)
	require.NoError(t, err)

	srv := New(cfg, dispatch.New(svc, dispatch.NewRegistry(), logger), logger)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	t.Cleanup(func() {
		srv.Stop()
		require.NoError(t, <-done)
	})

	select {
	case <-srv.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start listening")
	}
	return srv
}

func dialTestServer(t *testing.T, srv *Server) net.Conn {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// request sends one command line and reads the single response buffer.
func request(t *testing.T, conn net.Conn, line string) string {
	t.Helper()

	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestServerRoundTrip(t *testing.T) {
	srv := startTestServer(t, Config{Addr: "127.0.0.1:0"})
	conn := dialTestServer(t, srv)

	require.Contains(t, request(t, conn, "register alice pw1"),
		"User alice has been added to the data base")
	require.Contains(t, request(t, conn, "login alice pw1"),
		"User (alice) has logged in")
	require.Contains(t, request(t, conn, "add-task t1 1/1/2999"),
		"Task has been added to (alice)'s list of tasks")

	rendered := request(t, conn, "get-task t1")
	require.Contains(t, rendered, "Name : t1")
	require.Contains(t, rendered, "Date : 1/1/2999")
}

func TestServerKeepsConnectionAfterErrors(t *testing.T) {
	srv := startTestServer(t, Config{Addr: "127.0.0.1:0"})
	conn := dialTestServer(t, srv)

	require.Contains(t, request(t, conn, "nonsense"), "Unknown command")
	require.Contains(t, request(t, conn, "login ghost pw"), `"status":"ERROR"`)

	// Still usable on the same connection.
	require.Contains(t, request(t, conn, "register alice pw1"), `"status":"SUCCESS"`)
}

func TestServerOrdersCommandsAcrossConnections(t *testing.T) {
	srv := startTestServer(t, Config{Addr: "127.0.0.1:0"})
	first := dialTestServer(t, srv)
	second := dialTestServer(t, srv)

	require.Contains(t, request(t, first, "register alice pw1"), `"status":"SUCCESS"`)
	require.Contains(t, request(t, first, "login alice pw1"), "has logged in")

	// The account flag is global, not per connection.
	require.Contains(t, request(t, second, "login alice pw1"), "already logged in")
}

func TestDisconnectReleasesSession(t *testing.T) {
	srv := startTestServer(t, Config{Addr: "127.0.0.1:0"})

	first := dialTestServer(t, srv)
	require.Contains(t, request(t, first, "register alice pw1"), `"status":"SUCCESS"`)
	require.Contains(t, request(t, first, "login alice pw1"), "has logged in")
	require.NoError(t, first.Close())

	second := dialTestServer(t, srv)

	// The close event races with our reconnect; retry until the
	// dispatch loop has dropped the old session.
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp := request(t, second, "login alice pw1")
		if !strings.Contains(resp, "already logged in") {
			require.Contains(t, resp, "has logged in")
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("session was never released after disconnect")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestRateLimitWarnsWithoutClosing(t *testing.T) {
	srv := startTestServer(t, Config{
		Addr:      "127.0.0.1:0",
		RateLimit: RateLimitConfig{CommandsPerWindow: 2, Window: time.Minute, Burst: 2},
	})
	conn := dialTestServer(t, srv)

	require.Contains(t, request(t, conn, "register alice pw1"), `"status":"SUCCESS"`)
	require.Contains(t, request(t, conn, "login alice pw1"), "has logged in")

	resp := request(t, conn, "list-tasks")
	require.Contains(t, resp, `"status":"WARNING"`)
	require.Contains(t, resp, "Too many commands")
}
