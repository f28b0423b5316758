package models

import (
	dErrors "selfservice/pkg/domain-errors"
)

// ChecklistStep names one task of the go-live checklist. Values match the
// path segment of the task page.
type ChecklistStep string

const (
	StepIntegrationComplete ChecklistStep = "integration-complete"
	StepRedirectURLs        ChecklistStep = "redirect-urls"
	StepScopes              ChecklistStep = "scopes"
	StepTeamMember          ChecklistStep = "team-member"
	StepAgreement           ChecklistStep = "agreement"
)

// ChecklistSteps lists the steps in the order the checklist page shows them.
var ChecklistSteps = []ChecklistStep{
	StepIntegrationComplete,
	StepRedirectURLs,
	StepScopes,
	StepTeamMember,
	StepAgreement,
}

// Checklist tracks the go-live tasks of a service. Steps are independent;
// nothing orders them or gates the go-live request on them.
type Checklist struct {
	IntegrationComplete bool `json:"integration_complete"`
	RedirectURLs        bool `json:"redirect_urls"`
	Scopes              bool `json:"scopes"`
	TeamMember          bool `json:"team_member"`
	Agreement           bool `json:"agreement"`
}

// Set records the value of one step.
func (c *Checklist) Set(step ChecklistStep, value bool) error {
	switch step {
	case StepIntegrationComplete:
		c.IntegrationComplete = value
	case StepRedirectURLs:
		c.RedirectURLs = value
	case StepScopes:
		c.Scopes = value
	case StepTeamMember:
		c.TeamMember = value
	case StepAgreement:
		c.Agreement = value
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "unknown checklist step: "+string(step))
	}
	return nil
}

// Done reports whether a step is complete. Unknown steps are never done.
func (c Checklist) Done(step ChecklistStep) bool {
	switch step {
	case StepIntegrationComplete:
		return c.IntegrationComplete
	case StepRedirectURLs:
		return c.RedirectURLs
	case StepScopes:
		return c.Scopes
	case StepTeamMember:
		return c.TeamMember
	case StepAgreement:
		return c.Agreement
	}
	return false
}

// CompletedCount returns how many steps are done.
func (c Checklist) CompletedCount() int {
	n := 0
	for _, step := range ChecklistSteps {
		if c.Done(step) {
			n++
		}
	}
	return n
}

// Complete reports whether every step is done. Views use it for status only.
func (c Checklist) Complete() bool {
	return c.CompletedCount() == len(ChecklistSteps)
}
