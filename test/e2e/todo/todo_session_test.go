package todo_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	addr := setupTodoServer(t)
	s := newSession(t, addr)

	// Anything but register/login is rejected before authentication.
	require.Contains(t, s.send("add-task chores"), "Unknown command")
	require.Contains(t, s.send("list-tasks"), "Unknown command")

	require.Contains(t, s.send("register alice secret1"),
		"User alice has been added to the data base")
	require.Contains(t, s.send("login alice secret1"), "User (alice) has logged in")

	// Re-authenticating inside a session only warns.
	resp := s.send("register bob secret2")
	require.Contains(t, resp, `"status":"WARNING"`)
	require.Contains(t, resp, "Already in session")

	resp = s.send("login alice secret1")
	require.Contains(t, resp, `"status":"WARNING"`)
	require.Contains(t, resp, "Already in session")

	require.Contains(t, s.send("logout"), "User (alice) has logged off")

	// Back to the unauthenticated state.
	require.Contains(t, s.send("list-tasks"), "Unknown command")
	require.Contains(t, s.send("login alice secret1"), "User (alice) has logged in")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	addr := setupTodoServer(t)
	s := newSession(t, addr)

	require.Contains(t, s.send("register alice secret1"), `"status":"SUCCESS"`)

	// Same username.
	resp := s.send("register alice other")
	require.Contains(t, resp, `"status":"ERROR"`)
	require.Contains(t, resp, "already exists or the (other) password is not safe")

	// Same password under a different name.
	resp = s.send("register bob secret1")
	require.Contains(t, resp, `"status":"ERROR"`)
	require.Contains(t, resp, "password is not safe")
}

func TestSingleSessionPerAccount(t *testing.T) {
	addr := setupTodoServer(t)

	first := newSession(t, addr)
	first.registerAndLogin("alice", "secret1")

	second := newSession(t, addr)
	resp := second.send("login alice secret1")
	require.Contains(t, resp, `"status":"WARNING"`)
	require.Contains(t, resp, "User (alice) is already logged in")

	// Logout on the first connection frees the account.
	require.Contains(t, first.send("logout"), "has logged off")
	require.Contains(t, second.send("login alice secret1"), "has logged in")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	addr := setupTodoServer(t)
	s := newSession(t, addr)

	require.Contains(t, s.send("register alice secret1"), `"status":"SUCCESS"`)

	resp := s.send("login alice wrong")
	require.Contains(t, resp, `"status":"ERROR"`)
	require.Contains(t, resp,
		"User (alice) does not exists or the following password (wrong) is incorrect")
}
