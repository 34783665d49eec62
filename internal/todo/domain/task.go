package domain

import (
	"strings"
	"time"
)

// DatePattern is the wire format for task dates, named in validation error
// messages. Day and month may be written without a leading zero.
const DatePattern = "d/M/yyyy"

const dateLayout = "2/1/2006"

// ParseDate parses a task date in the wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Task is a task value. All fields except Completed are immutable once
// constructed; completing a task replaces it (delete + re-add) rather than
// mutating it in place. Dates are kept in their wire form and are validated
// at construction time.
type Task struct {
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// Render returns the listing form of the task. Optional fields are omitted
// when unset.
func (t *Task) Render() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("Name : ")
	b.WriteString(t.Name)
	b.WriteString("\n")

	if t.Date != "" {
		b.WriteString("Date : ")
		b.WriteString(t.Date)
		b.WriteString("\n")
	}

	if t.DueDate != "" {
		b.WriteString("Due Date : ")
		b.WriteString(t.DueDate)
		b.WriteString("\n")
	}

	if t.Description != "" {
		b.WriteString("Description : ")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}

	return b.String()
}
