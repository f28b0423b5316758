package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"selfservice/internal/services/models"
	dErrors "selfservice/pkg/domain-errors"
	"selfservice/pkg/requestcontext"
)

const serviceNameField = "service-name"

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/services", http.StatusFound)
}

// handleListServices lists the session's services. An empty registry is
// seeded with a default service so the list is never blank.
func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)

	services, err := h.services.ListServices(ctx, sessionID)
	if err != nil {
		h.writeError(w, r, err, "failed to list services")
		return
	}
	if len(services) == 0 {
		if _, err := h.services.CreateService(ctx, sessionID, models.DefaultServiceName); err != nil {
			h.writeError(w, r, err, "failed to seed default service")
			return
		}
		if services, err = h.services.ListServices(ctx, sessionID); err != nil {
			h.writeError(w, r, err, "failed to list services")
			return
		}
	}

	h.render(w, r, http.StatusOK, "services", servicesPage{
		layout:   layout{Title: "Your services"},
		Services: services,
	})
}

func (h *Handler) handleAddService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.parseForm(w, r) {
		return
	}
	sessionID := requestcontext.SessionID(ctx)
	name := r.PostForm.Get(serviceNameField)

	serviceID, err := h.services.CreateService(ctx, sessionID, name)
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		services, listErr := h.services.ListServices(ctx, sessionID)
		if listErr != nil {
			h.writeError(w, r, listErr, "failed to list services")
			return
		}
		h.render(w, r, http.StatusBadRequest, "services", servicesPage{
			layout:         layout{Title: "Your services"},
			Services:       services,
			NewServiceName: name,
			Error:          dErrors.Message(err),
		})
		return
	}
	if err != nil {
		h.writeError(w, r, err, "failed to create service")
		return
	}
	http.Redirect(w, r, servicePath(serviceID.String(), ""), http.StatusSeeOther)
}

func (h *Handler) handleServiceRoot(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, servicePath(svc.ID.String(), "/dashboard"), http.StatusFound)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", dashboardPage{
		layout:          serviceLayout("Dashboard", svc),
		CreatedAt:       svc.CreatedAt,
		Completed:       svc.GoLiveChecklist.CompletedCount(),
		Total:           len(models.ChecklistSteps),
		GoLiveRequested: svc.GoLiveRequested(),
	})
}

func (h *Handler) handleClientConfiguration(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "client-configuration", configPage{
		layout:      serviceLayout("Client configuration", svc),
		Saved:       r.URL.Query().Get("saved") != "",
		Integration: configRows(svc.Integration, servicePath(svc.ID.String(), "/client-configuration/change/")),
		Production:  configRows(svc.Production, ""),
	})
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "settings", configPage{
		layout:      serviceLayout("Settings", svc),
		Saved:       r.URL.Query().Get("saved") != "",
		Integration: configRows(svc.Integration, ""),
		Production:  configRows(svc.Production, ""),
	})
}

// handleChangeField shows the edit form for one integration field. Unknown
// fields go back to the configuration page.
func (h *Handler) handleChangeField(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	spec, known := models.LookupField(fieldParam(r))
	if !known {
		http.Redirect(w, r, servicePath(svc.ID.String(), "/client-configuration"), http.StatusFound)
		return
	}
	value, err := svc.Integration.Value(spec.Field)
	if err != nil {
		h.writeError(w, r, err, "failed to read field")
		return
	}
	h.render(w, r, http.StatusOK, "clients-change", changePage{
		layout:   serviceLayout(spec.Label, svc),
		Field:    spec.Field,
		Label:    spec.Label,
		Textarea: spec.Input == models.InputTextarea,
		Value:    value,
	})
}

func (h *Handler) handleSaveField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	field := fieldParam(r)
	configPath := servicePath(svc.ID.String(), "/client-configuration")

	err := h.services.UpdateIntegrationField(ctx, requestcontext.SessionID(ctx), svc.ID, field, r.PostForm.Get("value"))
	switch {
	case dErrors.HasCode(err, dErrors.CodeInvalidInput):
		http.Redirect(w, r, configPath, http.StatusSeeOther)
		return
	case err != nil:
		h.writeError(w, r, err, "failed to update client configuration")
		return
	}
	http.Redirect(w, r, configPath+"?saved=1", http.StatusSeeOther)
}

func (h *Handler) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "team-members", serviceLayout("Team members", svc))
}

func (h *Handler) handleYourAccount(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "your-account", layout{Title: "Your account"})
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		h.sessions.Clear(w)
	}
	h.logger.InfoContext(r.Context(), "session signed out",
		"request_id", requestcontext.RequestID(r.Context()),
	)
	http.Redirect(w, r, "/", http.StatusFound)
}

func fieldParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "field"))
}
