package service

import (
	"log/slog"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// AddTask builds a task from the positional arguments and adds it to the
// user's sets.
func (s *Service) AddTask(u *domain.User, args []string) error {
	t, err := NewTask(args)
	if err != nil {
		return err
	}

	if err := u.AddTask(t); err != nil {
		return err
	}

	s.logger.Debug("task added", slog.String("username", u.Username), slog.String("task", t.Name))
	return s.saveSnapshot()
}

// UpdateTask replaces the task of the same name with one built from the
// arguments.
func (s *Service) UpdateTask(u *domain.User, args []string) error {
	t, err := NewTask(args)
	if err != nil {
		return err
	}

	if err := u.UpdateTask(t); err != nil {
		return err
	}

	return s.saveSnapshot()
}

// DeleteTask removes the named task from the user's sets.
func (s *Service) DeleteTask(u *domain.User, name string) error {
	if err := u.DeleteTask(name); err != nil {
		return err
	}
	return s.saveSnapshot()
}

// FinishTask marks the named task completed.
func (s *Service) FinishTask(u *domain.User, name string) error {
	if err := u.FinishTask(name); err != nil {
		return err
	}
	return s.saveSnapshot()
}
