// Package service owns the in-memory domain state (users and
// collaborations) and the operations the dispatcher routes commands to.
// Everything here runs on the single dispatch goroutine, so the collections
// need no locking; mutating operations finish by writing a whole-state
// snapshot through the persistence store.
package service

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
	"github.com/aussiebroadwan/taskhub/internal/todo/store"
)

type Service struct {
	logger *slog.Logger
	store  store.Store

	users          []*domain.User
	collaborations []*domain.Collaboration
}

// New restores the domain state from the store's snapshot.
func New(st store.Store, logger *slog.Logger) (*Service, error) {
	snap, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("service: load snapshot: %w", err)
	}

	users, collaborations, err := store.Materialize(snap)
	if err != nil {
		return nil, err
	}

	logger.Info("domain state restored",
		slog.Int("users", len(users)),
		slog.Int("collaborations", len(collaborations)),
	)

	return &Service{
		logger:         logger,
		store:          st,
		users:          users,
		collaborations: collaborations,
	}, nil
}

// UserByName returns the stored account with the given username, or nil.
// The uniqueness invariant makes a linear scan sufficient.
func (s *Service) UserByName(username string) *domain.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// saveSnapshot rewrites the full persisted state. Every mutating operation
// calls this synchronously; a failure here is fatal to the whole process,
// never retried or swallowed.
func (s *Service) saveSnapshot() error {
	if err := s.store.Save(store.Capture(s.users, s.collaborations)); err != nil {
		return fmt.Errorf("service: save snapshot: %w", err)
	}
	return nil
}
