package service

import (
	"log/slog"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// Register stores a new account. It conflicts when the username or the
// password collides with any stored account; credentials are compared in
// plain text, which is what makes the password-collision check possible at
// all.
func (s *Service) Register(username, password string) error {
	for _, u := range s.users {
		if u.Username == username || u.Password == password {
			return domain.Errorf(domain.KindConflict,
				"User (%s) already exists or the (%s) password is not safe", username, password)
		}
	}

	s.users = append(s.users, domain.NewUser(username, password))
	s.logger.Info("account registered", slog.String("username", username))

	return s.saveSnapshot()
}

// Authenticate returns the account matching both credential fields exactly.
func (s *Service) Authenticate(username, password string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, domain.Errorf(domain.KindNotFound,
		"User (%s) does not exists or the following password (%s) is incorrect", username, password)
}
