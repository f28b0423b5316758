package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	servicemetrics "selfservice/internal/services/metrics"
	"selfservice/internal/services/models"
	id "selfservice/pkg/domain"
	dErrors "selfservice/pkg/domain-errors"
	"selfservice/pkg/platform/audit"
	"selfservice/pkg/platform/sentinel"
	"selfservice/pkg/requestcontext"
)

// RegistryStore holds one registry per session. Update must apply fn
// atomically: either every change fn makes is saved or none is.
type RegistryStore interface {
	Load(ctx context.Context, sessionID id.SessionID) (*models.Registry, error)
	Update(ctx context.Context, sessionID id.SessionID, fn func(*models.Registry) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service implements the per-session service registry.
type Service struct {
	registries     RegistryStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *servicemetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *servicemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(registries RegistryStore, opts ...Option) *Service {
	s := &Service{registries: registries}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListServices returns the session's services in creation order.
func (s *Service) ListServices(ctx context.Context, sessionID id.SessionID) ([]models.Summary, error) {
	defer s.observe("list_services", time.Now())

	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return reg.Summaries(), nil
}

// CreateService registers a new service with default configurations.
func (s *Service) CreateService(ctx context.Context, sessionID id.SessionID, name string) (id.ServiceID, error) {
	defer s.observe("create_service", time.Now())

	if err := requireSession(sessionID); err != nil {
		return id.ServiceID{}, err
	}
	svc, err := models.NewService(id.NewServiceID(), name, requestcontext.Now(ctx))
	if err != nil {
		return id.ServiceID{}, err
	}

	err = s.registries.Update(ctx, sessionID, func(reg *models.Registry) error {
		reg.Add(svc)
		return nil
	})
	if err != nil {
		return id.ServiceID{}, wrapStoreErr(err, "failed to create service")
	}

	s.logAudit(ctx, audit.EventServiceCreated, sessionID, svc.ID, "name", svc.Name)
	if s.metrics != nil {
		s.metrics.IncrementServicesCreated()
	}
	return svc.ID, nil
}

// GetService returns one of the session's services.
func (s *Service) GetService(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID) (*models.Service, error) {
	defer s.observe("get_service", time.Now())

	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	svc, ok := reg.Find(serviceID)
	if !ok {
		return nil, errServiceNotFound()
	}
	return svc, nil
}

// FirstServiceID resolves the service that unprefixed legacy routes act on.
// ok is false when the session has no services yet.
func (s *Service) FirstServiceID(ctx context.Context, sessionID id.SessionID) (serviceID id.ServiceID, ok bool, err error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return id.ServiceID{}, false, err
	}
	first, ok := reg.First()
	if !ok {
		return id.ServiceID{}, false, nil
	}
	return first.ID, true, nil
}

// UpdateIntegrationField parses raw form input for one integration field and
// stores it. Renaming the integration client also renames the service.
func (s *Service) UpdateIntegrationField(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, field string, raw string) error {
	defer s.observe("update_integration_field", time.Now())

	_, err := s.mutate(ctx, sessionID, serviceID, func(svc *models.Service) error {
		f, err := models.ParseField(field)
		if err != nil {
			return err
		}
		if err := svc.Integration.Set(f, raw); err != nil {
			return err
		}
		if f == models.FieldName {
			svc.Rename(raw)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.EventIntegrationFieldUpdated, sessionID, serviceID, "field", field)
	return nil
}

// UpdateProductionRedirects replaces the production redirect URIs from
// newline separated text. The checklist step is done when at least one
// redirect URI remains.
func (s *Service) UpdateProductionRedirects(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, redirectURIs, postLogoutRedirectURIs string) error {
	defer s.observe("update_production_redirects", time.Now())

	svc, err := s.mutate(ctx, sessionID, serviceID, func(svc *models.Service) error {
		if err := svc.Production.Set(models.FieldRedirectURIs, redirectURIs); err != nil {
			return err
		}
		if err := svc.Production.Set(models.FieldPostLogoutRedirectURIs, postLogoutRedirectURIs); err != nil {
			return err
		}
		svc.GoLiveChecklist.RedirectURLs = len(svc.Production.RedirectURIs) > 0
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.EventProductionUpdated, sessionID, serviceID, "field", "redirect_uris")
	s.countChecklist(models.StepRedirectURLs, svc.GoLiveChecklist.RedirectURLs)
	return nil
}

// UpdateProductionScopes sets the production scopes to openid plus the
// selected scopes, and marks the scopes step done.
func (s *Service) UpdateProductionScopes(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, selected []string) error {
	defer s.observe("update_production_scopes", time.Now())

	_, err := s.mutate(ctx, sessionID, serviceID, func(svc *models.Service) error {
		svc.Production.Scopes = models.WithOpenID(selected)
		svc.GoLiveChecklist.Scopes = true
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.EventProductionUpdated, sessionID, serviceID, "field", "scopes")
	s.countChecklist(models.StepScopes, true)
	return nil
}

// SetChecklistFlag records the answer to one checklist step.
func (s *Service) SetChecklistFlag(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, step models.ChecklistStep, value bool) error {
	defer s.observe("set_checklist_flag", time.Now())

	_, err := s.mutate(ctx, sessionID, serviceID, func(svc *models.Service) error {
		return svc.GoLiveChecklist.Set(step, value)
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.EventChecklistStepUpdated, sessionID, serviceID, "step", string(step))
	s.countChecklist(step, value)
	return nil
}

// RequestGoLive records that the session asked for production access.
// Submission is accepted whatever the state of the checklist.
func (s *Service) RequestGoLive(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID) (*models.Service, error) {
	defer s.observe("request_go_live", time.Now())

	now := requestcontext.Now(ctx)
	svc, err := s.mutate(ctx, sessionID, serviceID, func(svc *models.Service) error {
		svc.GoLiveRequestedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventGoLiveRequested, sessionID, serviceID,
		"checklist_completed", svc.GoLiveChecklist.CompletedCount())
	if s.metrics != nil {
		s.metrics.IncrementGoLiveRequests()
	}
	return svc, nil
}

// mutate applies fn to one service inside a store update and returns the
// service as saved.
func (s *Service) mutate(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, fn func(*models.Service) error) (*models.Service, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	var updated *models.Service
	err := s.registries.Update(ctx, sessionID, func(reg *models.Registry) error {
		svc, ok := reg.Find(serviceID)
		if !ok {
			return errServiceNotFound()
		}
		if err := fn(svc); err != nil {
			return err
		}
		updated = svc
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err, "failed to update service")
	}
	return updated, nil
}

func (s *Service) load(ctx context.Context, sessionID id.SessionID) (*models.Registry, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	reg, err := s.registries.Load(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.NewRegistry(), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load services")
	}
	return reg, nil
}

func requireSession(sessionID id.SessionID) error {
	if sessionID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "session is required")
	}
	return nil
}

func errServiceNotFound() error {
	return dErrors.New(dErrors.CodeNotFound, "service not found")
}

// wrapStoreErr keeps domain errors raised inside an update callback and
// translates store failures.
func wrapStoreErr(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "service was changed by another request")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, sessionID id.SessionID, serviceID id.ServiceID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	args := append(attributes,
		"event", string(event),
		"log_type", "audit",
		"service_id", serviceID.String(),
	)
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		SessionID: sessionID,
		ServiceID: serviceID,
		Action:    string(event),
		Subject:   serviceID.String(),
		RequestID: requestID,
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

func (s *Service) countChecklist(step models.ChecklistStep, done bool) {
	if s.metrics != nil {
		s.metrics.IncrementChecklistStep(string(step), done)
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}
