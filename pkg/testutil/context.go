package testutil

import (
	"net/http"
	"time"

	id "selfservice/pkg/domain"
	"selfservice/pkg/requestcontext"
)

// WithSession adds a session ID to the request context.
// This simulates what the session middleware does for every request.
func WithSession(req *http.Request, sessionID id.SessionID) *http.Request {
	return req.WithContext(requestcontext.WithSessionID(req.Context(), sessionID))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
