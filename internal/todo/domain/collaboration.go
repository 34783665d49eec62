package domain

import "strings"

// Assignee binds one task to one member of a collaboration. A collaboration
// may hold many bindings, including several for the same member, and
// bindings are not deduplicated by task name.
type Assignee struct {
	Task *Task `json:"task"`
	User *User `json:"-"`
}

// Collaboration is a named shared workspace. The creator is always a member;
// only the creator may delete it.
type Collaboration struct {
	Name      string
	Creator   *User
	Members   []*User
	Assignees []Assignee
}

// NewCollaboration creates a collaboration whose member set starts as just
// the creator.
func NewCollaboration(name string, creator *User) *Collaboration {
	return &Collaboration{
		Name:    name,
		Creator: creator,
		Members: []*User{creator},
	}
}

// HasMember reports whether the user belongs to the collaboration. A nil
// user is never a member.
func (c *Collaboration) HasMember(u *User) bool {
	if u == nil {
		return false
	}
	for _, m := range c.Members {
		if m.Username == u.Username {
			return true
		}
	}
	return false
}

// AddMember adds the user to the member set.
func (c *Collaboration) AddMember(u *User) {
	c.Members = append(c.Members, u)
}

// AssignTask appends an assignee binding for the given member.
func (c *Collaboration) AssignTask(u *User, t *Task) {
	c.Assignees = append(c.Assignees, Assignee{Task: t, User: u})
}

// RenderTasks lists the names of all assigned tasks, or a fixed message when
// there are none.
func (c *Collaboration) RenderTasks() string {
	if len(c.Assignees) == 0 {
		return "The following collaboration has no tasks"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, a := range c.Assignees {
		b.WriteString(a.Task.Name)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMembers lists all member usernames, or a fixed message when the
// member set is empty.
func (c *Collaboration) RenderMembers() string {
	if len(c.Members) == 0 {
		return "The following collaboration has no users"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, m := range c.Members {
		b.WriteString(m.Username)
		b.WriteString("\n")
	}
	return b.String()
}
