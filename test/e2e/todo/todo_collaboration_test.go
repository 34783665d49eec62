package todo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollaborationLifecycle(t *testing.T) {
	addr := setupTodoServer(t)

	alice := newSession(t, addr)
	alice.registerAndLogin("alice", "secret1")
	bob := newSession(t, addr)
	bob.registerAndLogin("bob", "secret2")

	require.Contains(t, alice.send("add-collaboration launch"),
		"Collaboration has been created by (alice)")

	resp := alice.send("add-collaboration launch")
	require.Contains(t, resp, `"status":"ERROR"`)
	require.Contains(t, resp, "Collaboration (launch) already exists")

	require.Contains(t, alice.send("add-user-to-collaboration launch bob"),
		"User (bob) has been added to collaboration (launch)")

	// Re-adding a member is refused and the server keeps serving.
	resp = alice.send("add-user-to-collaboration launch bob")
	require.Contains(t, resp, `"status":"ERROR"`)
	require.Contains(t, resp, "User (bob) is already a part of collaboration (launch)")

	members := alice.send("list-users-collaboration launch")
	require.Contains(t, members, "alice")
	require.Contains(t, members, "bob")
	require.Equal(t, 1, strings.Count(members, "bob"))

	require.Contains(t, alice.send("list-collaborations"), "launch")
	require.Contains(t, bob.send("list-collaborations"), "launch")
}

func TestCollaborationMembershipGuards(t *testing.T) {
	addr := setupTodoServer(t)

	alice := newSession(t, addr)
	alice.registerAndLogin("alice", "secret1")
	carol := newSession(t, addr)
	carol.registerAndLogin("carol", "secret3")

	require.Contains(t, alice.send("add-collaboration launch"), `"status":"SUCCESS"`)

	resp := alice.send("add-user-to-collaboration missing carol")
	require.Contains(t, resp, "Provided collaboration does not exist in the database")

	resp = alice.send("add-user-to-collaboration launch ghost")
	require.Contains(t, resp, "Provided user does not exist in the database")

	// Non-members cannot invite.
	resp = carol.send("add-user-to-collaboration launch carol")
	require.Contains(t, resp, "Provided user is not a part of this collaboration")
}

func TestCollaborationTaskAssignment(t *testing.T) {
	addr := setupTodoServer(t)

	alice := newSession(t, addr)
	alice.registerAndLogin("alice", "secret1")
	bob := newSession(t, addr)
	bob.registerAndLogin("bob", "secret2")

	require.Contains(t, alice.send("add-collaboration launch"), `"status":"SUCCESS"`)
	require.Contains(t, alice.send("add-user-to-collaboration launch bob"), `"status":"SUCCESS"`)

	require.Contains(t, alice.send("list-tasks-collaboration launch"),
		"The following collaboration has no tasks")

	require.Contains(t, alice.send("assign-task-collaboration launch bob ship-it %s", futureDate(3)),
		"Task has been assigned to user (bob) from collaboration (launch)")

	require.Contains(t, alice.send("list-tasks-collaboration launch"), "ship-it")

	// Assigned tasks live on the collaboration, not in the member's own list.
	require.Contains(t, bob.send("get-task ship-it"),
		"Task you are searching for does not exists")

	// Assigning to a non-member is refused.
	resp := alice.send("assign-task-collaboration launch ghost chores")
	require.Contains(t, resp, "Provided user is not a part of this collaboration")
}

func TestDeleteCollaborationRequiresCreator(t *testing.T) {
	addr := setupTodoServer(t)

	alice := newSession(t, addr)
	alice.registerAndLogin("alice", "secret1")
	bob := newSession(t, addr)
	bob.registerAndLogin("bob", "secret2")

	require.Contains(t, alice.send("add-collaboration launch"), `"status":"SUCCESS"`)
	require.Contains(t, alice.send("add-user-to-collaboration launch bob"), `"status":"SUCCESS"`)

	resp := bob.send("delete-collaboration launch")
	require.Contains(t, resp, "Only creator can delete collaboration (launch)")

	require.Contains(t, alice.send("delete-collaboration launch"),
		"Collaboration (launch) has been deleted")

	resp = alice.send("delete-collaboration launch")
	require.Contains(t, resp, "Collaboration (launch) does not exist in database")
}
