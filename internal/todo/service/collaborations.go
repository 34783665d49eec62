package service

import (
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// Collaboration returns the collaboration with the given name, or nil.
func (s *Service) Collaboration(name string) *domain.Collaboration {
	for _, c := range s.collaborations {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddCollaboration creates a collaboration whose member set starts as just
// the creator. The name is the collaboration's identity, so it must be
// unique.
func (s *Service) AddCollaboration(name string, creator *domain.User) error {
	if s.Collaboration(name) != nil {
		return domain.Errorf(domain.KindConflict, "Collaboration (%s) already exists", name)
	}

	s.collaborations = append(s.collaborations, domain.NewCollaboration(name, creator))
	s.logger.Info("collaboration created",
		slog.String("collaboration", name),
		slog.String("creator", creator.Username),
	)

	return s.saveSnapshot()
}

// AddUserToCollaboration adds the named account to the collaboration's
// member set. The requesting user must already be a member; the target must
// not be, since membership is a set and the snapshot schema keys members by
// (collaboration, username).
func (s *Service) AddUserToCollaboration(requester *domain.User, collaborationName, username string) error {
	c := s.Collaboration(collaborationName)
	if c == nil {
		return domain.Errorf(domain.KindNotFound, "Provided collaboration does not exist in the database")
	}

	target := s.UserByName(username)
	if target == nil {
		return domain.Errorf(domain.KindNotFound, "Provided user does not exist in the database")
	}

	if !c.HasMember(requester) {
		return domain.Errorf(domain.KindAuthorization, "Provided user is not a part of this collaboration")
	}

	if c.HasMember(target) {
		return domain.Errorf(domain.KindConflict, "User (%s) is already a part of collaboration (%s)", username, collaborationName)
	}

	c.AddMember(target)
	return s.saveSnapshot()
}

// AssignTask builds a task from the trailing arguments and binds it to the
// named member. Only existing members may be assigned tasks.
func (s *Service) AssignTask(collaborationName, username string, taskArgs []string) error {
	c := s.Collaboration(collaborationName)
	if c == nil {
		return domain.Errorf(domain.KindNotFound, "Provided collaboration does not exist in the database")
	}

	target := s.UserByName(username)
	if !c.HasMember(target) {
		return domain.Errorf(domain.KindAuthorization, "Provided user is not a part of this collaboration")
	}

	t, err := NewTask(taskArgs)
	if err != nil {
		return err
	}

	c.AssignTask(target, t)
	return s.saveSnapshot()
}

// DeleteCollaboration removes the named collaboration. Only its creator may
// do so.
func (s *Service) DeleteCollaboration(name string, requester *domain.User) error {
	c := s.Collaboration(name)
	if c == nil {
		return domain.Errorf(domain.KindNotFound, "Collaboration (%s) does not exist in database", name)
	}

	if c.Creator.Username != requester.Username {
		return domain.Errorf(domain.KindAuthorization, "Only creator can delete collaboration (%s)", name)
	}

	for i, other := range s.collaborations {
		if other == c {
			s.collaborations = append(s.collaborations[:i], s.collaborations[i+1:]...)
			break
		}
	}

	s.logger.Info("collaboration deleted", slog.String("collaboration", name))
	return s.saveSnapshot()
}

// ListCollaborations renders the names of every collaboration the user is a
// member of, or a fixed message when there are none.
func (s *Service) ListCollaborations(u *domain.User) string {
	var b strings.Builder
	b.WriteString("\n")

	count := 0
	for _, c := range s.collaborations {
		if c.HasMember(u) {
			b.WriteString(c.Name)
			b.WriteString("\n")
			count++
		}
	}

	if count == 0 {
		return "You have no collaborations"
	}
	return b.String()
}

// RenderCollaborationTasks lists the assigned task names of the named
// collaboration.
func (s *Service) RenderCollaborationTasks(name string) (string, error) {
	c := s.Collaboration(name)
	if c == nil {
		return "", domain.Errorf(domain.KindNotFound, "Collaboration (%s) does not exist in database", name)
	}
	return c.RenderTasks(), nil
}

// RenderCollaborationMembers lists the member usernames of the named
// collaboration.
func (s *Service) RenderCollaborationMembers(name string) (string, error) {
	c := s.Collaboration(name)
	if c == nil {
		return "", domain.Errorf(domain.KindNotFound, "Collaboration (%s) does not exist in database", name)
	}
	return c.RenderMembers(), nil
}
