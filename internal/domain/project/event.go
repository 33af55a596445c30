package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a simple calendar reminder attached to a project
type Event struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// AddEvent appends a new calendar event to the project
func (p *Project) AddEvent(title string, date time.Time) (*Event, error) {
	event := Event{
		ID:    uuid.New(),
		Title: title,
		Date:  date,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	p.Events = append(p.Events, event)
	return &p.Events[len(p.Events)-1], nil
}

// ToggleEvent flips the completed flag of the event with the given id
func (p *Project) ToggleEvent(id uuid.UUID) error {
	for i := range p.Events {
		if p.Events[i].ID == id {
			p.Events[i].Completed = !p.Events[i].Completed
			return nil
		}
	}
	return ErrEventNotFound
}

// DeleteEvent removes the event with the given id
func (p *Project) DeleteEvent(id uuid.UUID) error {
	for i := range p.Events {
		if p.Events[i].ID == id {
			p.Events = append(p.Events[:i], p.Events[i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}
