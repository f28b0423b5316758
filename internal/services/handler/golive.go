package handler

import (
	"net/http"

	"selfservice/internal/services/models"
	"selfservice/pkg/requestcontext"
)

// productionScopeOptions are the scopes offered on the production scopes
// page in addition to openid.
var productionScopeOptions = []string{"email", "phone"}

// confirmStep describes a checklist task answered by a single form control.
type confirmStep struct {
	field       string
	accept      string
	question    string
	hint        string
	acceptLabel string
	checkbox    bool
}

var confirmSteps = map[models.ChecklistStep]confirmStep{
	models.StepIntegrationComplete: {
		field:    "integrationComplete",
		accept:   "yes",
		question: "Have you completed your integration?",
		hint:     "Your service must work end to end in the integration environment.",
	},
	models.StepTeamMember: {
		field:    "teamMember",
		accept:   "yes",
		question: "Have you added another team member?",
		hint:     "At least two people should be able to manage the service.",
	},
	models.StepAgreement: {
		field:       "agreement",
		accept:      "accepted",
		question:    "Terms of use",
		acceptLabel: "I accept the terms of use",
		checkbox:    true,
	},
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "go-live-checklist", checklistPage{
		layout:    serviceLayout("Go-live checklist", svc),
		Tasks:     checklistTasks(svc),
		Completed: svc.GoLiveChecklist.CompletedCount(),
		Total:     len(models.ChecklistSteps),
	})
}

func (h *Handler) handleConfirmStep(step models.ChecklistStep) http.HandlerFunc {
	cfg := confirmSteps[step]
	return func(w http.ResponseWriter, r *http.Request) {
		svc, ok := h.loadService(w, r)
		if !ok {
			return
		}
		h.render(w, r, http.StatusOK, "make-live-confirm", confirmPage{
			layout:      serviceLayout(cfg.question, svc),
			Action:      makeLivePath(svc.ID.String(), string(step)),
			Question:    cfg.question,
			Hint:        cfg.hint,
			Name:        cfg.field,
			Accept:      cfg.accept,
			AcceptLabel: cfg.acceptLabel,
			Checkbox:    cfg.checkbox,
			Done:        svc.GoLiveChecklist.Done(step),
		})
	}
}

// handleSaveConfirmStep records the submitted answer. Anything but the
// accepting value clears the step.
func (h *Handler) handleSaveConfirmStep(step models.ChecklistStep) http.HandlerFunc {
	cfg := confirmSteps[step]
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		svc, ok := h.loadService(w, r)
		if !ok {
			return
		}
		if !h.parseForm(w, r) {
			return
		}
		value := r.PostForm.Get(cfg.field) == cfg.accept
		if err := h.services.SetChecklistFlag(ctx, requestcontext.SessionID(ctx), svc.ID, step, value); err != nil {
			h.writeError(w, r, err, "failed to update checklist")
			return
		}
		http.Redirect(w, r, servicePath(svc.ID.String(), "/make-live"), http.StatusSeeOther)
	}
}

func (h *Handler) handleRedirectURLs(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	redirects, _ := svc.Production.Value(models.FieldRedirectURIs)
	postLogout, _ := svc.Production.Value(models.FieldPostLogoutRedirectURIs)
	h.render(w, r, http.StatusOK, "make-live-redirect-urls", redirectsPage{
		layout:                 serviceLayout("Production redirect URLs", svc),
		RedirectURLs:           redirects,
		PostLogoutRedirectURLs: postLogout,
	})
}

func (h *Handler) handleSaveRedirectURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	err := h.services.UpdateProductionRedirects(ctx, requestcontext.SessionID(ctx), svc.ID,
		r.PostForm.Get("redirectUrls"),
		r.PostForm.Get("postLogoutRedirectUrls"),
	)
	if err != nil {
		h.writeError(w, r, err, "failed to update production redirect URLs")
		return
	}
	http.Redirect(w, r, servicePath(svc.ID.String(), "/make-live"), http.StatusSeeOther)
}

func (h *Handler) handleScopes(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	options := make([]scopeOption, 0, len(productionScopeOptions))
	for _, scope := range productionScopeOptions {
		options = append(options, scopeOption{Name: scope, Checked: svc.Production.HasScope(scope)})
	}
	h.render(w, r, http.StatusOK, "make-live-scopes", scopesPage{
		layout:  serviceLayout("Production scopes", svc),
		Options: options,
	})
}

func (h *Handler) handleSaveScopes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	if err := h.services.UpdateProductionScopes(ctx, requestcontext.SessionID(ctx), svc.ID, r.PostForm["scopes"]); err != nil {
		h.writeError(w, r, err, "failed to update production scopes")
		return
	}
	http.Redirect(w, r, servicePath(svc.ID.String(), "/make-live"), http.StatusSeeOther)
}

func (h *Handler) handleGoLiveRequest(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "make-live-request", requestPage{
		layout:      serviceLayout("Send request to go live", svc),
		Completed:   svc.GoLiveChecklist.CompletedCount(),
		Total:       len(models.ChecklistSteps),
		RequestedAt: svc.GoLiveRequestedAt,
	})
}

func (h *Handler) handleSendGoLiveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.loadService(w, r)
	if !ok {
		return
	}
	if _, err := h.services.RequestGoLive(ctx, requestcontext.SessionID(ctx), svc.ID); err != nil {
		h.writeError(w, r, err, "failed to send go-live request")
		return
	}
	http.Redirect(w, r, makeLivePath(svc.ID.String(), "request"), http.StatusSeeOther)
}
