package domain

import (
	"github.com/google/uuid"

	dErrors "selfservice/pkg/domain-errors"
)

// ServiceID identifies a service registration inside a session's registry.
type ServiceID uuid.UUID

// SessionID identifies the browser session that owns a registry.
type SessionID uuid.UUID

// NewServiceID generates a fresh random service id.
func NewServiceID() ServiceID { return ServiceID(uuid.New()) }

// NewSessionID generates a fresh random session id.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

func (id ServiceID) String() string { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero UUID.
func (id ServiceID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the id is the zero UUID.
func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets ids round-trip through JSON documents and map keys.
func (id ServiceID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ServiceID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id SessionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *SessionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseServiceID parses a path parameter into a ServiceID.
func ParseServiceID(s string) (ServiceID, error) {
	u, err := parseUUID(s, "service id")
	return ServiceID(u), err
}

// ParseSessionID parses a cookie claim into a SessionID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session id")
	return SessionID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
