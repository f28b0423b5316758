package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"selfservice/internal/services/models"
	id "selfservice/pkg/domain"
	dErrors "selfservice/pkg/domain-errors"
	"selfservice/pkg/requestcontext"
)

// Service defines the registry operations the pages need.
type Service interface {
	ListServices(ctx context.Context, sessionID id.SessionID) ([]models.Summary, error)
	CreateService(ctx context.Context, sessionID id.SessionID, name string) (id.ServiceID, error)
	GetService(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID) (*models.Service, error)
	FirstServiceID(ctx context.Context, sessionID id.SessionID) (id.ServiceID, bool, error)
	UpdateIntegrationField(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, field string, raw string) error
	UpdateProductionRedirects(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, redirectURIs, postLogoutRedirectURIs string) error
	UpdateProductionScopes(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, selected []string) error
	SetChecklistFlag(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID, step models.ChecklistStep, value bool) error
	RequestGoLive(ctx context.Context, sessionID id.SessionID, serviceID id.ServiceID) (*models.Service, error)
}

// SessionEnder ends the browser session on sign out.
type SessionEnder interface {
	Clear(w http.ResponseWriter)
}

// Handler serves the service registry pages.
type Handler struct {
	services Service
	logger   *slog.Logger
	views    *views
	sessions SessionEnder
}

type Option func(*Handler)

// WithSessionEnder lets /sign-out drop the session cookie.
func WithSessionEnder(sessions SessionEnder) Option {
	return func(h *Handler) {
		h.sessions = sessions
	}
}

// New creates a Handler. It fails only if the embedded templates do not parse.
func New(services Service, logger *slog.Logger, opts ...Option) (*Handler, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		services: services,
		logger:   logger,
		views:    v,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register registers the page routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/your-account", h.handleYourAccount)
	r.Get("/sign-out", h.handleSignOut)

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.handleListServices)
		r.Post("/add-new-service", h.handleAddService)

		r.Route("/{uid}", func(r chi.Router) {
			r.Get("/", h.handleServiceRoot)
			r.Get("/dashboard", h.handleDashboard)
			r.Get("/client-configuration", h.handleClientConfiguration)
			r.Get("/client-configuration/change/{field}", h.handleChangeField)
			r.Post("/client-configuration/change/{field}", h.handleSaveField)
			r.Get("/settings", h.handleSettings)
			r.Get("/team-members", h.handleTeamMembers)

			r.Get("/make-live", h.handleChecklist)
			r.Get("/make-live/integration-complete", h.handleConfirmStep(models.StepIntegrationComplete))
			r.Post("/make-live/integration-complete", h.handleSaveConfirmStep(models.StepIntegrationComplete))
			r.Get("/make-live/redirect-urls", h.handleRedirectURLs)
			r.Post("/make-live/redirect-urls", h.handleSaveRedirectURLs)
			r.Get("/make-live/scopes", h.handleScopes)
			r.Post("/make-live/scopes", h.handleSaveScopes)
			r.Get("/make-live/team-member", h.handleConfirmStep(models.StepTeamMember))
			r.Post("/make-live/team-member", h.handleSaveConfirmStep(models.StepTeamMember))
			r.Get("/make-live/agreement", h.handleConfirmStep(models.StepAgreement))
			r.Post("/make-live/agreement", h.handleSaveConfirmStep(models.StepAgreement))
			r.Get("/make-live/request", h.handleGoLiveRequest)
			r.Post("/make-live/request", h.handleSendGoLiveRequest)
		})
	})

	h.registerLegacy(r)
	r.NotFound(h.handleNotFound)
}

// loadService resolves the {uid} path parameter to one of the session's
// services. Malformed ids are reported as not found.
func (h *Handler) loadService(w http.ResponseWriter, r *http.Request) (*models.Service, bool) {
	ctx := r.Context()
	serviceID, err := id.ParseServiceID(chi.URLParam(r, "uid"))
	if err != nil {
		h.renderNotFound(w, r)
		return nil, false
	}
	svc, err := h.services.GetService(ctx, requestcontext.SessionID(ctx), serviceID)
	if err != nil {
		h.writeError(w, r, err, "failed to load service")
		return nil, false
	}
	return svc, true
}

// writeError maps a domain error to a page. Validation and unknown-field
// errors are handled where the form is submitted.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	ctx := r.Context()
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		h.renderNotFound(w, r)
		return
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeConflict:
		h.logger.WarnContext(ctx, msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		h.renderError(w, r, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), dErrors.Message(err))
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	h.renderError(w, r, http.StatusInternalServerError, "")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.views.render(w, status, page, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"page", page,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(r.Context()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not-found", errorPage{layout: layout{Title: "Page not found"}})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", errorPage{layout: layout{Title: "Sorry, there is a problem"}, Message: message})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}

// parseForm reads the url-encoded body. A malformed body renders 400.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form submission"), "invalid form submission")
		return false
	}
	return true
}

func servicePath(uid string, suffix string) string {
	return "/services/" + uid + suffix
}

func makeLivePath(uid string, step string) string {
	return servicePath(uid, "/make-live/"+step)
}
