package todo_test

import (
	"fmt"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskhub/internal/todo/app"
	"github.com/stretchr/testify/require"
)

// setupTodoServer boots a full application on an ephemeral port with a
// file-backed snapshot in a temp dir, and returns the address to dial.
func setupTodoServer(t *testing.T) string {
	t.Helper()
	return setupTodoServerWithSnapshot(t, filepath.Join(t.TempDir(), "snapshot.json"))
}

func setupTodoServerWithSnapshot(t *testing.T, snapshot string) string {
	t.Helper()

	application, err := app.New(app.Config{
		Host:         "127.0.0.1",
		Port:         0,
		StoreDriver:  "file",
		SnapshotFile: snapshot,
		Env:          "dev",
		LogLevel:     "error",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	go func() { _ = application.Run() }()
	t.Cleanup(application.Shutdown)

	select {
	case <-application.Ready():
	case <-time.After(10 * time.Second):
		t.Fatal("application did not become ready")
	}
	return application.Addr().String()
}

type session struct {
	t    *testing.T
	conn net.Conn
}

func newSession(t *testing.T, addr string) *session {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &session{t: t, conn: conn}
}

// send writes one command line and reads the single response buffer. The
// protocol has no response terminator, so one read per command mirrors what
// the interactive client does.
func (s *session) send(format string, args ...any) string {
	s.t.Helper()

	line := fmt.Sprintf(format, args...)
	_, err := s.conn.Write([]byte(line + "\n"))
	require.NoError(s.t, err)

	require.NoError(s.t, s.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 8192)
	n, err := s.conn.Read(buf)
	require.NoError(s.t, err)
	return string(buf[:n])
}

func (s *session) registerAndLogin(username, password string) {
	s.t.Helper()

	require.Contains(s.t, s.send("register %s %s", username, password), `"status":"SUCCESS"`)
	require.Contains(s.t, s.send("login %s %s", username, password), "has logged in")
}
