package project

import "errors"

var (
	ErrParticipantExists   = errors.New("participant already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrLastAdmin           = errors.New("cannot remove the last admin")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEventNotFound       = errors.New("event not found")
)
