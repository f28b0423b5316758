package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"selfservice/internal/services/models"
	id "selfservice/pkg/domain"
	"selfservice/pkg/requestcontext"
)

// legacyGetPaths and legacyPostPaths are the unprefixed pages from before a
// session could own more than one service.
var (
	legacyGetPaths = []string{
		"/dashboard",
		"/client-configuration",
		"/client-configuration/change/{field}",
		"/settings",
		"/team-members",
		"/make-live",
		"/make-live/{step}",
	}
	legacyPostPaths = []string{
		"/client-configuration/change/{field}",
		"/make-live/{step}",
	}
)

func (h *Handler) registerLegacy(r chi.Router) {
	for _, p := range legacyGetPaths {
		r.Get(p, h.handleLegacy)
	}
	for _, p := range legacyPostPaths {
		r.Post(p, h.handleLegacy)
	}
}

// handleLegacy redirects an unprefixed page to the same page of the
// session's first service. POSTs use 307 so the browser resubmits the form.
func (h *Handler) handleLegacy(w http.ResponseWriter, r *http.Request) {
	serviceID, err := h.defaultServiceID(r)
	if err != nil {
		h.writeError(w, r, err, "failed to resolve default service")
		return
	}
	target := servicePath(serviceID.String(), r.URL.Path)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	status := http.StatusFound
	if r.Method == http.MethodPost {
		status = http.StatusTemporaryRedirect
	}
	http.Redirect(w, r, target, status)
}

// defaultServiceID returns the session's first service, creating the
// default service when the session has none.
func (h *Handler) defaultServiceID(r *http.Request) (id.ServiceID, error) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)

	serviceID, ok, err := h.services.FirstServiceID(ctx, sessionID)
	if err != nil {
		return id.ServiceID{}, err
	}
	if ok {
		return serviceID, nil
	}
	return h.services.CreateService(ctx, sessionID, models.DefaultServiceName)
}
