package service

import (
	"strings"
	"time"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// Positional argument layout for task construction.
const (
	taskNameIndex        = 0
	taskDateIndex        = 1
	taskDueDateIndex     = 2
	taskDescriptionIndex = 3
)

// NewTask parses a positional argument list into a validated task. Dispatch
// is purely on argument count: name; name + start date; name + start date +
// due date; and beyond that the remaining tokens are rejoined into the
// description. Validation is cumulative, so a later stage failing implies
// the earlier stages already passed.
func NewTask(args []string) (*domain.Task, error) {
	switch len(args) {
	case 0:
		return nil, domain.Errorf(domain.KindValidation, "Name of a task must be provided")
	case 1:
		return fillName(args)
	case 2:
		return fillDate(args)
	case 3:
		return fillDeadline(args)
	default:
		return fillDescription(args)
	}
}

func fillName(args []string) (*domain.Task, error) {
	if !validString(args[taskNameIndex]) {
		return nil, domain.Errorf(domain.KindValidation, "Invalid arguments for creating a task")
	}

	return &domain.Task{Name: args[taskNameIndex]}, nil
}

func fillDate(args []string) (*domain.Task, error) {
	if _, err := fillName(args); err != nil {
		return nil, err
	}

	date, err := parseDate(args[taskDateIndex])
	if err != nil {
		return nil, err
	}

	// Today is allowed, strictly earlier is not.
	if date.Before(today()) {
		return nil, domain.Errorf(domain.KindTemporal, "Can not have a task for the past")
	}

	return &domain.Task{
		Name: args[taskNameIndex],
		Date: args[taskDateIndex],
	}, nil
}

func fillDeadline(args []string) (*domain.Task, error) {
	if _, err := fillDate(args); err != nil {
		return nil, err
	}

	start, err := parseDate(args[taskDateIndex])
	if err != nil {
		return nil, err
	}
	due, err := parseDate(args[taskDueDateIndex])
	if err != nil {
		return nil, err
	}

	// Equal start and due dates are fine.
	if start.After(due) {
		return nil, domain.Errorf(domain.KindTemporal, "Can not begin a task after its deadline")
	}

	return &domain.Task{
		Name:    args[taskNameIndex],
		Date:    args[taskDateIndex],
		DueDate: args[taskDueDateIndex],
	}, nil
}

func fillDescription(args []string) (*domain.Task, error) {
	if _, err := fillDeadline(args[:taskDescriptionIndex]); err != nil {
		return nil, err
	}

	// The remaining tokens become the description, rejoined with single
	// spaces and keeping a trailing space after the last one.
	description := strings.Join(args[taskDescriptionIndex:], " ") + " "

	return &domain.Task{
		Name:        args[taskNameIndex],
		Date:        args[taskDateIndex],
		DueDate:     args[taskDueDateIndex],
		Description: description,
	}, nil
}

// today returns the current date at midnight UTC, matching how wire dates
// parse.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
