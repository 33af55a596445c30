// Package project contains the Roots project aggregate: participants with
// roles, budget categories, dual-currency transactions and calendar events,
// all embedded in a single document. Every mutation transforms the whole
// aggregate in memory; persistence replaces the stored document in one write.
package project

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Participant is a user's membership and role within a project
type Participant struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Project is the root aggregate. Categories, transactions, events and
// participants are embedded collections persisted as JSONB, mirroring the
// document-store layout the application was built around.
type Project struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description"`
	Address      string         `json:"address"`
	OwnerEmail   string         `json:"owner_email" gorm:"not null"`
	Participants []Participant  `json:"participants" gorm:"type:jsonb;serializer:json"`
	// ParticipantsEmails is denormalized for membership queries and must
	// always equal the set of Participants[].Email.
	ParticipantsEmails pq.StringArray `json:"participants_emails" gorm:"type:text[]"`
	Categories         []Category     `json:"categories" gorm:"type:jsonb;serializer:json"`
	Transactions       []Transaction  `json:"transactions" gorm:"type:jsonb;serializer:json"`
	Events             []Event        `json:"events" gorm:"type:jsonb;serializer:json"`
	Status             Status         `json:"status" gorm:"type:project_status;not null;default:'planning'"`
	CreatedAt          time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate sets a UUID before creating the record
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// New creates a project with the owner as its single admin participant
func New(name, description, address, ownerEmail, ownerName string) *Project {
	p := &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Address:     address,
		OwnerEmail:  NormalizeEmail(ownerEmail),
		Participants: []Participant{
			{Email: NormalizeEmail(ownerEmail), Name: ownerName, Role: RoleAdmin},
		},
		Categories:   make([]Category, 0),
		Transactions: make([]Transaction, 0),
		Events:       make([]Event, 0),
		Status:       StatusPlanning,
		CreatedAt:    time.Now(),
	}
	p.SyncParticipantEmails()
	return p
}

// Validate checks if the project data is valid
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.OwnerEmail == "" {
		return fmt.Errorf("owner_email is required")
	}
	admins := 0
	seen := make(map[string]bool, len(p.Participants))
	for _, part := range p.Participants {
		if !part.Role.IsValid() {
			return fmt.Errorf("invalid role %q for participant %s", part.Role, part.Email)
		}
		if seen[part.Email] {
			return fmt.Errorf("duplicate participant email %s", part.Email)
		}
		seen[part.Email] = true
		if part.Role == RoleAdmin {
			admins++
		}
	}
	if len(p.Participants) > 0 && admins == 0 {
		return fmt.Errorf("project must have at least one admin")
	}
	return nil
}

// SyncParticipantEmails rebuilds the denormalized email list from Participants
func (p *Project) SyncParticipantEmails() {
	emails := make([]string, 0, len(p.Participants))
	for _, part := range p.Participants {
		emails = append(emails, part.Email)
	}
	p.ParticipantsEmails = emails
}

// RoleFor returns the role of the given email, or RoleNone if not a participant
func (p *Project) RoleFor(email string) Role {
	email = NormalizeEmail(email)
	for _, part := range p.Participants {
		if part.Email == email {
			return part.Role
		}
	}
	return RoleNone
}

// IsParticipant checks whether the email belongs to a participant
func (p *Project) IsParticipant(email string) bool {
	return slices.Contains(p.ParticipantsEmails, NormalizeEmail(email))
}

// AddParticipant invites a participant. Admin cannot be granted on invite;
// a duplicate email is a conflict and leaves the list unchanged.
func (p *Project) AddParticipant(email, name string, role Role) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if role != RoleEditor && role != RoleViewer {
		return fmt.Errorf("%w: role must be editor or viewer", ErrInvalidRole)
	}
	if p.RoleFor(email) != RoleNone {
		return ErrParticipantExists
	}

	p.Participants = append(p.Participants, Participant{Email: email, Name: name, Role: role})
	p.SyncParticipantEmails()
	return nil
}

// ChangeParticipantRole updates the role of an existing participant
func (p *Project) ChangeParticipantRole(email string, role Role) error {
	email = NormalizeEmail(email)
	if !role.IsValid() {
		return ErrInvalidRole
	}

	for i, part := range p.Participants {
		if part.Email != email {
			continue
		}
		if part.Role == RoleAdmin && role != RoleAdmin && p.adminCount() == 1 {
			return ErrLastAdmin
		}
		p.Participants[i].Role = role
		return nil
	}
	return ErrParticipantNotFound
}

// RemoveParticipant removes a participant. Removing the last remaining admin
// is rejected and the participant list stays unchanged. Historical `user`
// strings on transactions are display-only and are not cascaded.
func (p *Project) RemoveParticipant(email string) error {
	email = NormalizeEmail(email)

	for i, part := range p.Participants {
		if part.Email != email {
			continue
		}
		if part.Role == RoleAdmin && p.adminCount() == 1 {
			return ErrLastAdmin
		}
		p.Participants = append(p.Participants[:i], p.Participants[i+1:]...)
		p.SyncParticipantEmails()
		return nil
	}
	return ErrParticipantNotFound
}

func (p *Project) adminCount() int {
	count := 0
	for _, part := range p.Participants {
		if part.Role == RoleAdmin {
			count++
		}
	}
	return count
}

// NormalizeEmail lowercases and trims an email address. Membership checks
// and role lookups always compare normalized emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
