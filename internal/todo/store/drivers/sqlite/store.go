// Package sqlite implements snapshot persistence on an embedded SQLite
// database. Snapshot semantics are kept: every save replaces the full
// contents of all tables inside one transaction, which also gives the
// atomic-replace property the file driver gets from rename.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/taskhub/internal/todo/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Load() (store.Snapshot, error) {
	var snap store.Snapshot

	users, err := s.loadUsers()
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.Users = users

	collaborations, err := s.loadCollaborations()
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.Collaborations = collaborations

	return snap, nil
}

func (s *Store) Save(snap store.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin snapshot: %w", err)
	}
	defer tx.Rollback()

	// Whole-state rewrite: clear everything, then re-insert. Dependent
	// tables cascade from users and collaborations.
	for _, stmt := range []string{
		`DELETE FROM collaboration_assignees;`,
		`DELETE FROM collaboration_members;`,
		`DELETE FROM collaborations;`,
		`DELETE FROM tasks;`,
		`DELETE FROM users;`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: clear snapshot: %w", err)
		}
	}

	for _, u := range snap.Users {
		if _, err := tx.Exec(
			`INSERT INTO users (username, password) VALUES (?, ?);`,
			u.Username, u.Password,
		); err != nil {
			return fmt.Errorf("sqlite: insert user: %w", err)
		}

		if err := insertTasks(tx, u.Username, u.Scheduled, false); err != nil {
			return err
		}
		if err := insertTasks(tx, u.Username, u.Inbox, true); err != nil {
			return err
		}
	}

	for _, c := range snap.Collaborations {
		if _, err := tx.Exec(
			`INSERT INTO collaborations (name, creator) VALUES (?, ?);`,
			c.Name, c.Creator,
		); err != nil {
			return fmt.Errorf("sqlite: insert collaboration: %w", err)
		}

		for i, member := range c.Members {
			if _, err := tx.Exec(
				`INSERT INTO collaboration_members (collaboration, username, position) VALUES (?, ?, ?);`,
				c.Name, member, i,
			); err != nil {
				return fmt.Errorf("sqlite: insert member: %w", err)
			}
		}

		for _, a := range c.Assignees {
			if _, err := tx.Exec(
				`INSERT INTO collaboration_assignees
				   (collaboration, username, task_name, date, due_date, description, completed)
				 VALUES (?, ?, ?, ?, ?, ?, ?);`,
				c.Name, a.Username, a.Task.Name, a.Task.Date, a.Task.DueDate, a.Task.Description, a.Task.Completed,
			); err != nil {
				return fmt.Errorf("sqlite: insert assignee: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit snapshot: %w", err)
	}
	return nil
}

func (s *Store) loadUsers() ([]store.UserRecord, error) {
	rows, err := s.db.Query(`SELECT username, password FROM users ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load users: %w", err)
	}
	defer rows.Close()

	var users []store.UserRecord
	for rows.Next() {
		var u store.UserRecord
		if err := rows.Scan(&u.Username, &u.Password); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		scheduled, inbox, err := s.loadTasks(users[i].Username)
		if err != nil {
			return nil, err
		}
		users[i].Scheduled = scheduled
		users[i].Inbox = inbox
	}

	return users, nil
}

func (s *Store) loadTasks(username string) (scheduled, inbox []store.TaskRecord, err error) {
	rows, err := s.db.Query(
		`SELECT name, date, due_date, description, completed, inbox
		   FROM tasks WHERE username = ? ORDER BY id;`, username)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: load tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t store.TaskRecord
		var isInbox bool
		if err := rows.Scan(&t.Name, &t.Date, &t.DueDate, &t.Description, &t.Completed, &isInbox); err != nil {
			return nil, nil, err
		}
		if isInbox {
			inbox = append(inbox, t)
		} else {
			scheduled = append(scheduled, t)
		}
	}
	return scheduled, inbox, rows.Err()
}

func (s *Store) loadCollaborations() ([]store.CollaborationRecord, error) {
	rows, err := s.db.Query(`SELECT name, creator FROM collaborations ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load collaborations: %w", err)
	}
	defer rows.Close()

	var collaborations []store.CollaborationRecord
	for rows.Next() {
		var c store.CollaborationRecord
		if err := rows.Scan(&c.Name, &c.Creator); err != nil {
			return nil, err
		}
		collaborations = append(collaborations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range collaborations {
		members, err := s.loadMembers(collaborations[i].Name)
		if err != nil {
			return nil, err
		}
		collaborations[i].Members = members

		assignees, err := s.loadAssignees(collaborations[i].Name)
		if err != nil {
			return nil, err
		}
		collaborations[i].Assignees = assignees
	}

	return collaborations, nil
}

func (s *Store) loadMembers(collaboration string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT username FROM collaboration_members WHERE collaboration = ? ORDER BY position;`,
		collaboration)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		members = append(members, username)
	}
	return members, rows.Err()
}

func (s *Store) loadAssignees(collaboration string) ([]store.AssigneeRecord, error) {
	rows, err := s.db.Query(
		`SELECT username, task_name, date, due_date, description, completed
		   FROM collaboration_assignees WHERE collaboration = ? ORDER BY id;`,
		collaboration)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load assignees: %w", err)
	}
	defer rows.Close()

	var assignees []store.AssigneeRecord
	for rows.Next() {
		var a store.AssigneeRecord
		if err := rows.Scan(&a.Username, &a.Task.Name, &a.Task.Date, &a.Task.DueDate, &a.Task.Description, &a.Task.Completed); err != nil {
			return nil, err
		}
		assignees = append(assignees, a)
	}
	return assignees, rows.Err()
}

func insertTasks(tx *sql.Tx, username string, tasks []store.TaskRecord, inbox bool) error {
	for _, t := range tasks {
		if _, err := tx.Exec(
			`INSERT INTO tasks (username, name, date, due_date, description, completed, inbox)
			 VALUES (?, ?, ?, ?, ?, ?, ?);`,
			username, t.Name, t.Date, t.DueDate, t.Description, t.Completed, inbox,
		); err != nil {
			return fmt.Errorf("sqlite: insert task: %w", err)
		}
	}
	return nil
}
