package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "selfservice/pkg/domain"
	"selfservice/pkg/requestcontext"
)

type SessionSuite struct {
	suite.Suite
	now     time.Time
	manager *Manager
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.manager = NewManager("test-key", time.Hour, WithClock(func() time.Time { return s.now }))
}

func (s *SessionSuite) serve(req *http.Request) (*httptest.ResponseRecorder, id.SessionID) {
	var seen id.SessionID
	h := s.manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.SessionID(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func (s *SessionSuite) TestIssueAndVerify() {
	sessionID := id.NewSessionID()
	token, expiresAt, err := s.manager.Issue(sessionID)
	s.Require().NoError(err)
	s.Equal(s.now.Add(time.Hour), expiresAt)

	got, gotExpiry, err := s.manager.Verify(token)
	s.Require().NoError(err)
	s.Equal(sessionID, got)
	s.True(expiresAt.Equal(gotExpiry))
}

func (s *SessionSuite) TestVerifyRejectsExpiredToken() {
	token, _, err := s.manager.Issue(id.NewSessionID())
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Hour)
	_, _, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *SessionSuite) TestVerifyRejectsForeignKey() {
	other := NewManager("other-key", time.Hour, WithClock(func() time.Time { return s.now }))
	token, _, err := other.Issue(id.NewSessionID())
	s.Require().NoError(err)

	_, _, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *SessionSuite) TestMiddlewareMintsSessionWithoutCookie() {
	rr, sessionID := s.serve(httptest.NewRequest(http.MethodGet, "/services", nil))

	s.False(sessionID.IsNil())
	cookie := sessionCookie(rr)
	s.Require().NotNil(cookie)
	s.True(cookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)

	got, _, err := s.manager.Verify(cookie.Value)
	s.Require().NoError(err)
	s.Equal(sessionID, got)
}

func (s *SessionSuite) TestMiddlewareReusesValidCookie() {
	sessionID := id.NewSessionID()
	token, _, err := s.manager.Issue(sessionID)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr, seen := s.serve(req)

	s.Equal(sessionID, seen)
	s.Nil(sessionCookie(rr), "fresh cookie should not be re-issued")
}

func (s *SessionSuite) TestMiddlewareRefreshesAgingCookie() {
	sessionID := id.NewSessionID()
	token, _, err := s.manager.Issue(sessionID)
	s.Require().NoError(err)

	s.now = s.now.Add(45 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr, seen := s.serve(req)

	s.Equal(sessionID, seen)
	s.NotNil(sessionCookie(rr))
}

func (s *SessionSuite) TestMiddlewareReplacesTamperedCookie() {
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rr, seen := s.serve(req)

	s.False(seen.IsNil())
	s.NotNil(sessionCookie(rr))
}

func (s *SessionSuite) TestMiddlewareFlagsMintedSessions() {
	var fresh bool
	h := s.manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fresh = requestcontext.IsNewSession(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/services/add-new-service", nil))
	s.True(fresh, "no cookie")

	token, _, err := s.manager.Issue(id.NewSessionID())
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/services/add-new-service", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)
	s.False(fresh, "valid cookie")
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewManager("k", time.Hour, WithSecureCookie(true))
	rr := httptest.NewRecorder()
	m.Clear(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.True(t, cookies[0].Secure)
}
