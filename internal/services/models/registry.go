package models

import (
	id "selfservice/pkg/domain"
)

// Registry is the ordered set of services owned by one session.
type Registry struct {
	Services []*Service `json:"services"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Services: []*Service{}}
}

// Add appends a service, keeping insertion order.
func (r *Registry) Add(s *Service) {
	r.Services = append(r.Services, s)
}

// Find returns the service with the given id.
func (r *Registry) Find(serviceID id.ServiceID) (*Service, bool) {
	for _, s := range r.Services {
		if s.ID == serviceID {
			return s, true
		}
	}
	return nil, false
}

// First returns the earliest-created service, if any.
func (r *Registry) First() (*Service, bool) {
	if len(r.Services) == 0 {
		return nil, false
	}
	return r.Services[0], true
}

// Summaries lists services in insertion order.
func (r *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(r.Services))
	for _, s := range r.Services {
		out = append(out, s.Summary())
	}
	return out
}

// Len returns the number of services.
func (r *Registry) Len() int {
	return len(r.Services)
}

// Clone deep-copies the registry so stores never hand out shared state.
func (r *Registry) Clone() *Registry {
	out := &Registry{Services: make([]*Service, 0, len(r.Services))}
	for _, s := range r.Services {
		out.Services = append(out.Services, s.clone())
	}
	return out
}
