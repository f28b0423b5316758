package models

import (
	"strings"
	"time"

	id "selfservice/pkg/domain"
	dErrors "selfservice/pkg/domain-errors"
)

// DefaultServiceName is used when a service is seeded rather than created
// through the form.
const DefaultServiceName = "Default Service"

// Service is one client registration owned by a browser session.
//
// Invariants:
//   - ID and CreatedAt are immutable after construction
//   - Name is non-empty
//   - Production is only changed by go-live checklist tasks
type Service struct {
	ID                id.ServiceID `json:"id"`
	Name              string       `json:"name"`
	CreatedAt         time.Time    `json:"created_at"`
	Integration       ClientConfig `json:"integration"`
	Production        ClientConfig `json:"production"`
	GoLiveChecklist   Checklist    `json:"go_live_checklist"`
	GoLiveRequestedAt *time.Time   `json:"go_live_requested_at,omitempty"`
}

// NewService builds a service with default integration and production
// configurations and an empty checklist.
func NewService(serviceID id.ServiceID, name string, now time.Time) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Service name is required")
	}
	return &Service{
		ID:          serviceID,
		Name:        name,
		CreatedAt:   now,
		Integration: NewClientConfig(name),
		Production:  NewClientConfig(name),
	}, nil
}

// Rename updates the display name. Blank names keep the current one so the
// service stays listable.
func (s *Service) Rename(name string) {
	if name = strings.TrimSpace(name); name != "" {
		s.Name = name
	}
}

// GoLiveRequested reports whether a go-live request has been submitted.
func (s *Service) GoLiveRequested() bool {
	return s.GoLiveRequestedAt != nil
}

// Summary is the registry listing view of a service.
type Summary struct {
	ID   id.ServiceID
	Name string
}

func (s *Service) Summary() Summary {
	return Summary{ID: s.ID, Name: s.Name}
}

func (s *Service) clone() *Service {
	c := *s
	c.Integration = s.Integration.clone()
	c.Production = s.Production.clone()
	if s.GoLiveRequestedAt != nil {
		t := *s.GoLiveRequestedAt
		c.GoLiveRequestedAt = &t
	}
	return &c
}
