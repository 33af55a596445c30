package ledger

import (
	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// AddParticipant invites a participant by email. Admin only; admin itself
// cannot be granted through an invite.
func (s *Service) AddParticipant(projectID, actorEmail, email, name string, role project.Role) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanAdminister)
	if err != nil {
		return err
	}

	if err := p.AddParticipant(email, name, role); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Participant added", "project_id", projectID, "email", email, "role", role)
	s.notify()
	return nil
}

// ChangeParticipantRole updates a participant's role. Admin only.
func (s *Service) ChangeParticipantRole(projectID, actorEmail, email string, role project.Role) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanAdminister)
	if err != nil {
		return err
	}

	if err := p.ChangeParticipantRole(email, role); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Participant role changed", "project_id", projectID, "email", email, "role", role)
	s.notify()
	return nil
}

// RemoveParticipant removes a participant. Admin only; the check against
// removing the last admin runs on the freshly read document, which is the
// strongest guarantee the store's write model offers.
func (s *Service) RemoveParticipant(projectID, actorEmail, email string) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanAdminister)
	if err != nil {
		return err
	}

	if err := p.RemoveParticipant(email); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Participant removed", "project_id", projectID, "email", email)
	s.notify()
	return nil
}
