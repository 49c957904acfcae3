package core

import "time"

// Role identifies the author of an exchange.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Exchange is a single validated conversation turn.
// Content must be non-empty and Role one of the two enumerated values;
// anything else is rejected at the buffer boundary and never stored.
type Exchange struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Validate reports whether the exchange has a storable shape.
func (e Exchange) Validate() error {
	if e.Role != RoleUser && e.Role != RoleAssistant {
		return ErrValidation
	}
	if e.Content == "" {
		return ErrValidation
	}
	return nil
}
