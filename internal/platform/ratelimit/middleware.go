package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"selfservice/pkg/requestcontext"
)

// Middleware limits state-changing requests per session. Reads are never
// limited. A request that arrived without a session cookie is limited by its
// remote address instead, so clients that drop cookies share one budget.
type Middleware struct {
	window *Window
	logger *slog.Logger
}

func New(window *Window, logger *slog.Logger) *Middleware {
	return &Middleware{window: window, logger: logger}
}

func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key, ok := limitKey(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		result := m.window.Allow(key)
		addHeaders(w, result)
		if !result.Allowed {
			m.logger.WarnContext(ctx, "form submission rate limited",
				"key", key,
				"request_id", requestcontext.RequestID(ctx),
			)
			retryAfter := int(math.Ceil(time.Until(result.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "Too many changes. Wait a moment and try again.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitKey picks the bucket for r: the session id for known sessions and the
// remote host for sessions minted by this request.
func limitKey(r *http.Request) (string, bool) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)
	if sessionID.IsNil() {
		return "", false
	}
	if !requestcontext.IsNewSession(ctx) {
		return "session:" + sessionID.String(), true
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host, true
}

func addHeaders(w http.ResponseWriter, result Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
