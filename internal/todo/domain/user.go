package domain

import (
	"strings"
	"time"
)

// User is a registered account. It owns two task sets: Scheduled holds tasks
// with a start date, Inbox holds undated tasks. Task names are unique across
// the union of both sets. Credentials are stored and compared in plain text;
// that is a known limitation carried over from the product behaviour, not a
// security feature.
type User struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Scheduled []*Task `json:"scheduled"`
	Inbox     []*Task `json:"inbox"`
}

// NewUser creates an account with empty task sets.
func NewUser(username, password string) *User {
	return &User{Username: username, Password: password}
}

// Task returns the task with the given name from either set, or nil.
func (u *User) Task(name string) *Task {
	for _, t := range u.Scheduled {
		if t.Name == name {
			return t
		}
	}
	for _, t := range u.Inbox {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddTask inserts a task. Undated tasks go to the inbox, dated ones to the
// scheduled set. The name must not collide with any existing task of this
// user.
func (u *User) AddTask(t *Task) error {
	if u.Task(t.Name) != nil {
		return Errorf(KindConflict, "The task (%s) already exists", t.Name)
	}

	if t.Date == "" {
		u.Inbox = append(u.Inbox, t)
	} else {
		u.Scheduled = append(u.Scheduled, t)
	}
	return nil
}

// UpdateTask replaces the task of the same name. Because the replacement is
// delete + add, updating a task's dated-ness moves it between the inbox and
// the scheduled set.
func (u *User) UpdateTask(t *Task) error {
	if err := u.DeleteTask(t.Name); err != nil {
		return err
	}
	return u.AddTask(t)
}

// DeleteTask removes the named task from whichever set holds it.
func (u *User) DeleteTask(name string) error {
	if u.Task(name) == nil {
		return Errorf(KindNotFound, "Task you are searching for does not exists")
	}

	u.Scheduled = removeTask(u.Scheduled, name)
	u.Inbox = removeTask(u.Inbox, name)
	return nil
}

// FinishTask marks the named task completed by deleting it and re-adding a
// completed copy.
func (u *User) FinishTask(name string) error {
	t := u.Task(name)
	if err := u.DeleteTask(name); err != nil {
		return err
	}

	done := *t
	done.Completed = true
	return u.AddTask(&done)
}

// RenderTask returns the listing form of one task.
func (u *User) RenderTask(name string) (string, error) {
	t := u.Task(name)
	if t == nil {
		return "", Errorf(KindNotFound, "Task you are searching for does not exists")
	}
	return t.Render(), nil
}

// ListTasks renders both task sets, or a fixed message when the user has no
// tasks at all.
func (u *User) ListTasks() string {
	return u.renderSets(func(*Task) bool { return true })
}

// ListTasksByCompletion renders both task sets filtered by the completion
// flag.
func (u *User) ListTasksByCompletion(completed bool) string {
	return u.renderSets(func(t *Task) bool { return t.Completed == completed })
}

// ListDashboard renders every scheduled task whose start date is on or
// before the given date, plus every inbox task unconditionally. Inbox tasks
// have no date to compare, so they are always due; this asymmetry is
// intended behaviour.
func (u *User) ListDashboard(on time.Time) (string, error) {
	if len(u.Scheduled) == 0 && len(u.Inbox) == 0 {
		return "The current user has no tasks !", nil
	}

	var b strings.Builder
	b.WriteString("\nTasks regular : \n")
	for _, t := range u.Scheduled {
		date, err := ParseDate(t.Date)
		if err != nil {
			return "", Errorf(KindValidation, "Date must be in valid format : (%s)", DatePattern)
		}
		if !date.After(on) {
			b.WriteString(t.Render())
			b.WriteString(" ")
		}
	}

	b.WriteString("\nTasks inbox : \n")
	for _, t := range u.Inbox {
		b.WriteString(t.Render())
		b.WriteString(" ")
	}

	return b.String(), nil
}

func (u *User) renderSets(keep func(*Task) bool) string {
	if len(u.Scheduled) == 0 && len(u.Inbox) == 0 {
		return "The current user has no tasks !"
	}

	var b strings.Builder
	b.WriteString("\nTasks regular : \n")
	for _, t := range u.Scheduled {
		if keep(t) {
			b.WriteString(t.Render())
			b.WriteString(" ")
		}
	}

	b.WriteString("\nTasks inbox : \n")
	for _, t := range u.Inbox {
		if keep(t) {
			b.WriteString(t.Render())
			b.WriteString(" ")
		}
	}

	return b.String()
}

func removeTask(set []*Task, name string) []*Task {
	for i, t := range set {
		if t.Name == name {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
