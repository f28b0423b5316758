package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	servicemetrics "selfservice/internal/services/metrics"
	"selfservice/internal/services/models"
	"selfservice/internal/services/store/registry"
	id "selfservice/pkg/domain"
	dErrors "selfservice/pkg/domain-errors"
	"selfservice/pkg/platform/audit"
	auditpublisher "selfservice/pkg/platform/audit/publisher"
	auditmemory "selfservice/pkg/platform/audit/store/memory"
	"selfservice/pkg/platform/sentinel"
	"selfservice/pkg/requestcontext"
)

type RegistryServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	session id.SessionID
	store   *registry.InMemory
	audit   *auditmemory.InMemoryStore
	metrics *servicemetrics.Metrics
	service *Service
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.session = id.NewSessionID()
	s.store = registry.NewInMemory(time.Hour)
	s.audit = auditmemory.NewInMemoryStore()
	s.metrics = servicemetrics.New(prometheus.NewRegistry())
	s.service = New(s.store,
		WithAuditPublisher(auditpublisher.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
}

func (s *RegistryServiceSuite) create(name string) id.ServiceID {
	uid, err := s.service.CreateService(s.ctx, s.session, name)
	s.Require().NoError(err)
	return uid
}

func (s *RegistryServiceSuite) get(uid id.ServiceID) *models.Service {
	svc, err := s.service.GetService(s.ctx, s.session, uid)
	s.Require().NoError(err)
	return svc
}

func (s *RegistryServiceSuite) TestCreateService() {
	s.Run("fresh uid with default scopes", func() {
		seen := map[id.ServiceID]bool{}
		for _, name := range []string{"Acme", "Beta", "Gamma"} {
			uid := s.create(name)
			s.False(seen[uid], "uid must not repeat")
			seen[uid] = true

			svc := s.get(uid)
			s.Equal(name, svc.Name)
			s.Contains(svc.Integration.Scopes, "openid")
			s.Contains(svc.Integration.Scopes, "email")
			s.Equal(s.now, svc.CreatedAt)
		}
	})

	s.Run("empty name is a validation error", func() {
		_, err := s.service.CreateService(s.ctx, s.session, "  ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("Service name is required", dErrors.Message(err))
	})

	s.Run("records audit event and metric", func() {
		before := testutil.ToFloat64(s.metrics.ServicesCreated)
		s.create("Audited")
		s.Equal(before+1, testutil.ToFloat64(s.metrics.ServicesCreated))

		events, err := s.audit.ListBySession(s.ctx, s.session)
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal(string(audit.EventServiceCreated), last.Action)
		s.Equal(s.now, last.Timestamp)
	})

	s.Run("requires a session", func() {
		_, err := s.service.CreateService(s.ctx, id.SessionID{}, "Acme")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *RegistryServiceSuite) TestListServices() {
	s.Run("empty for a new session", func() {
		list, err := s.service.ListServices(s.ctx, id.NewSessionID())
		s.Require().NoError(err)
		s.Empty(list)
	})

	s.Run("insertion order", func() {
		a := s.create("A")
		b := s.create("B")
		list, err := s.service.ListServices(s.ctx, s.session)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal(models.Summary{ID: a, Name: "A"}, list[0])
		s.Equal(models.Summary{ID: b, Name: "B"}, list[1])
	})
}

func (s *RegistryServiceSuite) TestGetService() {
	s.Run("unknown uid is not found", func() {
		_, err := s.service.GetService(s.ctx, s.session, id.NewServiceID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other session cannot see the service", func() {
		uid := s.create("Acme")
		_, err := s.service.GetService(s.ctx, id.NewSessionID(), uid)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestFirstServiceID() {
	_, ok, err := s.service.FirstServiceID(s.ctx, s.session)
	s.Require().NoError(err)
	s.False(ok)

	first := s.create("First")
	s.create("Second")
	got, ok, err := s.service.FirstServiceID(s.ctx, s.session)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(first, got)
}

func (s *RegistryServiceSuite) TestUpdateIntegrationField() {
	s.Run("redirect URIs round trip without blank lines", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateIntegrationField(s.ctx, s.session, uid, "redirectUris", "a\nb\n\nc"))
		s.Equal([]string{"a", "b", "c"}, s.get(uid).Integration.RedirectURIs)
	})

	s.Run("scopes are comma separated and keep openid", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateIntegrationField(s.ctx, s.session, uid, "scopes", "email, phone"))
		s.Equal([]string{"openid", "email", "phone"}, s.get(uid).Integration.Scopes)
	})

	s.Run("renaming updates the display name", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateIntegrationField(s.ctx, s.session, uid, "name", "Acme Integration"))
		svc := s.get(uid)
		s.Equal("Acme Integration", svc.Name)
		s.Equal("Acme Integration", svc.Integration.Name)
		s.Equal("Acme", svc.Production.Name)
	})

	s.Run("production is untouched", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateIntegrationField(s.ctx, s.session, uid, "clientId", "abc"))
		svc := s.get(uid)
		s.Equal("abc", svc.Integration.ClientID)
		s.Empty(svc.Production.ClientID)
	})

	s.Run("unknown field", func() {
		uid := s.create("Acme")
		err := s.service.UpdateIntegrationField(s.ctx, s.session, uid, "landingPageUri", "x")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("missing service wins over unknown field", func() {
		err := s.service.UpdateIntegrationField(s.ctx, s.session, id.NewServiceID(), "bogus", "x")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestUpdateProductionRedirects() {
	s.Run("non-empty redirects complete the step", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateProductionRedirects(s.ctx, s.session, uid,
			"https://svc.gov.uk/cb\r\n\r\nhttps://svc.gov.uk/cb2", "https://svc.gov.uk/logout"))

		svc := s.get(uid)
		s.Equal([]string{"https://svc.gov.uk/cb", "https://svc.gov.uk/cb2"}, svc.Production.RedirectURIs)
		s.Equal([]string{"https://svc.gov.uk/logout"}, svc.Production.PostLogoutRedirectURIs)
		s.True(svc.GoLiveChecklist.RedirectURLs)
		s.Empty(svc.Integration.RedirectURIs)
	})

	s.Run("empty redirects leave the step incomplete", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateProductionRedirects(s.ctx, s.session, uid, "https://a/cb", ""))
		s.Require().NoError(s.service.UpdateProductionRedirects(s.ctx, s.session, uid, " \n ", ""))
		svc := s.get(uid)
		s.Empty(svc.Production.RedirectURIs)
		s.False(svc.GoLiveChecklist.RedirectURLs)
	})
}

func (s *RegistryServiceSuite) TestUpdateProductionScopes() {
	s.Run("openid plus selected scopes", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateProductionScopes(s.ctx, s.session, uid, []string{"email", "phone"}))
		svc := s.get(uid)
		s.Equal([]string{"openid", "email", "phone"}, svc.Production.Scopes)
		s.True(svc.GoLiveChecklist.Scopes)
	})

	s.Run("no selection still completes the step", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateProductionScopes(s.ctx, s.session, uid, nil))
		svc := s.get(uid)
		s.Equal([]string{"openid"}, svc.Production.Scopes)
		s.True(svc.GoLiveChecklist.Scopes)
	})

	s.Run("resubmitted openid is not repeated", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.UpdateProductionScopes(s.ctx, s.session, uid, []string{"openid", "email"}))
		s.Equal([]string{"openid", "email"}, s.get(uid).Production.Scopes)
	})
}

func (s *RegistryServiceSuite) TestSetChecklistFlag() {
	s.Run("idempotent", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.SetChecklistFlag(s.ctx, s.session, uid, models.StepTeamMember, true))
		s.Require().NoError(s.service.SetChecklistFlag(s.ctx, s.session, uid, models.StepTeamMember, true))
		svc := s.get(uid)
		s.True(svc.GoLiveChecklist.TeamMember)
		s.Equal(1, svc.GoLiveChecklist.CompletedCount())
	})

	s.Run("steps in any order", func() {
		uid := s.create("Acme")
		s.Require().NoError(s.service.SetChecklistFlag(s.ctx, s.session, uid, models.StepAgreement, true))
		svc := s.get(uid)
		s.True(svc.GoLiveChecklist.Agreement)
		s.False(svc.GoLiveChecklist.IntegrationComplete)
	})

	s.Run("unknown service", func() {
		err := s.service.SetChecklistFlag(s.ctx, s.session, id.NewServiceID(), models.StepAgreement, true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestRequestGoLive() {
	uid := s.create("Acme")
	svc, err := s.service.RequestGoLive(s.ctx, s.session, uid)
	s.Require().NoError(err)
	s.Require().True(svc.GoLiveRequested())
	s.Equal(s.now, *svc.GoLiveRequestedAt)
	s.False(svc.GoLiveChecklist.Complete(), "request is accepted with an incomplete checklist")
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.GoLiveRequests))

	events, err := s.audit.ListBySession(s.ctx, s.session)
	s.Require().NoError(err)
	last := events[len(events)-1]
	s.Equal(string(audit.EventGoLiveRequested), last.Action)
	s.Equal(audit.CategoryCompliance, last.Category)
	s.Equal(uid, last.ServiceID)
}

type failingStore struct {
	loadErr   error
	updateErr error
}

func (f failingStore) Load(context.Context, id.SessionID) (*models.Registry, error) {
	return nil, f.loadErr
}

func (f failingStore) Update(context.Context, id.SessionID, func(*models.Registry) error) error {
	return f.updateErr
}

func (s *RegistryServiceSuite) TestStoreFailures() {
	s.Run("load failure is internal", func() {
		svc := New(failingStore{loadErr: errors.New("connection refused")})
		_, err := svc.ListServices(s.ctx, s.session)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("conflict is surfaced", func() {
		svc := New(failingStore{updateErr: sentinel.ErrConflict})
		_, err := svc.CreateService(s.ctx, s.session, "Acme")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}
