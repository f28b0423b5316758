package audit

import (
	"time"

	id "selfservice/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with contractual significance, such as
	// accepting the terms of use or requesting production access.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine configuration activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	SessionID id.SessionID
	ServiceID id.ServiceID
	Action    string
	Subject   string
	RequestID string
}

type AuditEvent string

const (
	EventServiceCreated          AuditEvent = "service_created"
	EventIntegrationFieldUpdated AuditEvent = "integration_field_updated"
	EventProductionUpdated       AuditEvent = "production_config_updated"
	EventChecklistStepUpdated    AuditEvent = "checklist_step_updated"
	EventGoLiveRequested         AuditEvent = "go_live_requested"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventServiceCreated:          CategoryOperations,
	EventIntegrationFieldUpdated: CategoryOperations,
	EventProductionUpdated:       CategoryOperations,
	EventChecklistStepUpdated:    CategoryCompliance,
	EventGoLiveRequested:         CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
