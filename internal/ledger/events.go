package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// AddEvent appends a calendar event to a project. Editor or admin.
func (s *Service) AddEvent(projectID, actorEmail, title string, date time.Time) (*project.Event, error) {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return nil, err
	}

	event, err := p.AddEvent(title, date)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Replace(p); err != nil {
		return nil, err
	}

	s.notify()
	return event, nil
}

// ToggleEvent flips an event's completed flag
func (s *Service) ToggleEvent(projectID, actorEmail string, eventID uuid.UUID) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	if err := p.ToggleEvent(eventID); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.notify()
	return nil
}

// DeleteEvent removes an event permanently
func (s *Service) DeleteEvent(projectID, actorEmail string, eventID uuid.UUID) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	if err := p.DeleteEvent(eventID); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.notify()
	return nil
}
