// Package store defines the snapshot persistence boundary. The whole domain
// state is serialized and rewritten after every mutating operation; there is
// no incremental log. Concrete drivers live under store/drivers.
package store

import (
	"fmt"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// Store persists and restores one whole-state snapshot. Load runs once at
// startup; Save runs synchronously after every mutating domain operation,
// so its cost is proportional to total stored state. A Save failure is
// treated as fatal by the caller.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Close() error
}

// Snapshot is the serialized form of the complete domain state.
type Snapshot struct {
	Users          []UserRecord          `json:"users"`
	Collaborations []CollaborationRecord `json:"collaborations"`
}

type UserRecord struct {
	Username  string       `json:"username"`
	Password  string       `json:"password"`
	Scheduled []TaskRecord `json:"scheduled,omitempty"`
	Inbox     []TaskRecord `json:"inbox,omitempty"`
}

type TaskRecord struct {
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

type CollaborationRecord struct {
	Name      string           `json:"name"`
	Creator   string           `json:"creator"`
	Members   []string         `json:"members"`
	Assignees []AssigneeRecord `json:"assignees,omitempty"`
}

type AssigneeRecord struct {
	Username string     `json:"username"`
	Task     TaskRecord `json:"task"`
}

// Capture flattens the in-memory domain state into a snapshot. Users and
// collaboration members are referenced by username.
func Capture(users []*domain.User, collaborations []*domain.Collaboration) Snapshot {
	snap := Snapshot{}

	for _, u := range users {
		snap.Users = append(snap.Users, UserRecord{
			Username:  u.Username,
			Password:  u.Password,
			Scheduled: captureTasks(u.Scheduled),
			Inbox:     captureTasks(u.Inbox),
		})
	}

	for _, c := range collaborations {
		rec := CollaborationRecord{
			Name:    c.Name,
			Creator: c.Creator.Username,
		}
		for _, m := range c.Members {
			rec.Members = append(rec.Members, m.Username)
		}
		for _, a := range c.Assignees {
			rec.Assignees = append(rec.Assignees, AssigneeRecord{
				Username: a.User.Username,
				Task:     captureTask(a.Task),
			})
		}
		snap.Collaborations = append(snap.Collaborations, rec)
	}

	return snap
}

// Materialize rebuilds the domain graph from a snapshot. Collaboration
// member and creator references are resolved against the restored users; a
// dangling reference makes the snapshot unusable and fails the load.
func Materialize(snap Snapshot) ([]*domain.User, []*domain.Collaboration, error) {
	users := make([]*domain.User, 0, len(snap.Users))
	byName := make(map[string]*domain.User, len(snap.Users))

	for _, rec := range snap.Users {
		u := domain.NewUser(rec.Username, rec.Password)
		u.Scheduled = materializeTasks(rec.Scheduled)
		u.Inbox = materializeTasks(rec.Inbox)
		users = append(users, u)
		byName[u.Username] = u
	}

	collaborations := make([]*domain.Collaboration, 0, len(snap.Collaborations))
	for _, rec := range snap.Collaborations {
		creator, ok := byName[rec.Creator]
		if !ok {
			return nil, nil, fmt.Errorf("store: collaboration %q references unknown creator %q", rec.Name, rec.Creator)
		}

		c := &domain.Collaboration{Name: rec.Name, Creator: creator}
		for _, name := range rec.Members {
			member, ok := byName[name]
			if !ok {
				return nil, nil, fmt.Errorf("store: collaboration %q references unknown member %q", rec.Name, name)
			}
			c.Members = append(c.Members, member)
		}
		for _, a := range rec.Assignees {
			member, ok := byName[a.Username]
			if !ok {
				return nil, nil, fmt.Errorf("store: collaboration %q assigns a task to unknown user %q", rec.Name, a.Username)
			}
			task := materializeTask(a.Task)
			c.Assignees = append(c.Assignees, domain.Assignee{Task: task, User: member})
		}
		collaborations = append(collaborations, c)
	}

	return users, collaborations, nil
}

func captureTask(t *domain.Task) TaskRecord {
	return TaskRecord{
		Name:        t.Name,
		Date:        t.Date,
		DueDate:     t.DueDate,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

func captureTasks(set []*domain.Task) []TaskRecord {
	records := make([]TaskRecord, 0, len(set))
	for _, t := range set {
		records = append(records, captureTask(t))
	}
	return records
}

func materializeTask(rec TaskRecord) *domain.Task {
	return &domain.Task{
		Name:        rec.Name,
		Date:        rec.Date,
		DueDate:     rec.DueDate,
		Description: rec.Description,
		Completed:   rec.Completed,
	}
}

func materializeTasks(records []TaskRecord) []*domain.Task {
	if len(records) == 0 {
		return nil
	}
	set := make([]*domain.Task, 0, len(records))
	for _, rec := range records {
		set = append(set, materializeTask(rec))
	}
	return set
}
