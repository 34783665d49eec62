package store

import (
	"testing"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
	"github.com/stretchr/testify/require"
)

func sampleState() ([]*domain.User, []*domain.Collaboration) {
	alice := domain.NewUser("alice", "pw1")
	alice.Scheduled = []*domain.Task{{Name: "dated", Date: "1/1/2999", DueDate: "2/1/2999"}}
	alice.Inbox = []*domain.Task{{Name: "floating", Description: "someday ", Completed: true}}

	bob := domain.NewUser("bob", "pw2")

	team := domain.NewCollaboration("team", alice)
	team.AddMember(bob)
	team.AssignTask(bob, &domain.Task{Name: "chores"})

	return []*domain.User{alice, bob}, []*domain.Collaboration{team}
}

func TestCaptureMaterializeRoundTrip(t *testing.T) {
	t.Parallel()

	users, collaborations := sampleState()
	snap := Capture(users, collaborations)

	restoredUsers, restoredCollaborations, err := Materialize(snap)
	require.NoError(t, err)

	require.Len(t, restoredUsers, 2)
	alice := restoredUsers[0]
	require.Equal(t, "alice", alice.Username)
	require.Equal(t, "pw1", alice.Password)
	require.Len(t, alice.Scheduled, 1)
	require.Equal(t, "1/1/2999", alice.Scheduled[0].Date)
	require.Len(t, alice.Inbox, 1)
	require.True(t, alice.Inbox[0].Completed)

	require.Len(t, restoredCollaborations, 1)
	team := restoredCollaborations[0]
	require.Equal(t, "team", team.Name)

	// Creator and members resolve to the restored user values, not copies.
	require.Same(t, alice, team.Creator)
	require.True(t, team.HasMember(alice))
	require.Len(t, team.Assignees, 1)
	require.Same(t, restoredUsers[1], team.Assignees[0].User)
	require.Equal(t, "chores", team.Assignees[0].Task.Name)
}

func TestMaterializeRejectsDanglingReferences(t *testing.T) {
	t.Parallel()

	t.Run("unknown creator", func(t *testing.T) {
		_, _, err := Materialize(Snapshot{
			Collaborations: []CollaborationRecord{{Name: "team", Creator: "ghost"}},
		})
		require.ErrorContains(t, err, "unknown creator")
	})

	t.Run("unknown member", func(t *testing.T) {
		_, _, err := Materialize(Snapshot{
			Users: []UserRecord{{Username: "alice", Password: "pw1"}},
			Collaborations: []CollaborationRecord{
				{Name: "team", Creator: "alice", Members: []string{"alice", "ghost"}},
			},
		})
		require.ErrorContains(t, err, "unknown member")
	})
}
