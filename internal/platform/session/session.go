// Package session binds each browser to an anonymous session id carried in a
// signed cookie. Registries are scoped to that id.
package session

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "selfservice/pkg/domain"
	"selfservice/pkg/requestcontext"
)

// CookieName is the name of the session cookie.
const CookieName = "selfservice_session"

const issuer = "selfservice"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token has expired")
)

// Claims is the payload of the session cookie. Subject holds the session id.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager mints and verifies session cookies.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
	secure     bool
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSecureCookie marks the cookie Secure so browsers only send it over TLS.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithClock overrides the clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(signingKey string, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs a token for sessionID that expires after the manager's TTL.
func (m *Manager) Issue(sessionID id.SessionID) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the token signature and expiry and returns the session id and
// expiry it carries.
func (m *Manager) Verify(tokenString string) (id.SessionID, time.Time, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.SessionID{}, time.Time{}, ErrTokenExpired
		}
		return id.SessionID{}, time.Time{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ExpiresAt == nil {
		return id.SessionID{}, time.Time{}, ErrInvalidToken
	}
	sessionID, err := id.ParseSessionID(claims.Subject)
	if err != nil {
		return id.SessionID{}, time.Time{}, ErrInvalidToken
	}
	return sessionID, claims.ExpiresAt.Time, nil
}

// Middleware attaches a session id to every request. A missing, expired or
// tampered cookie starts a fresh session. Cookies past half their lifetime are
// re-issued so active browsers keep their registry.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, reissue, fresh := m.resolve(r)
		if reissue {
			if err := m.setCookie(w, sessionID); err != nil {
				m.logError(r, "failed to issue session cookie", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		ctx := requestcontext.WithSessionID(r.Context(), sessionID)
		if fresh {
			ctx = requestcontext.WithNewSession(ctx)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Clear expires the session cookie. The next request starts a new session.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// resolve returns the request's session id, whether its cookie needs
// re-issuing, and whether the session was minted here.
func (m *Manager) resolve(r *http.Request) (id.SessionID, bool, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return id.NewSessionID(), true, true
	}
	sessionID, expiresAt, err := m.Verify(cookie.Value)
	if err != nil {
		if m.logger != nil {
			m.logger.DebugContext(r.Context(), "discarding session cookie", "reason", err.Error())
		}
		return id.NewSessionID(), true, true
	}
	return sessionID, expiresAt.Sub(m.now()) < m.ttl/2, false
}

func (m *Manager) setCookie(w http.ResponseWriter, sessionID id.SessionID) error {
	token, expiresAt, err := m.Issue(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) logError(r *http.Request, msg string, err error) {
	if m.logger == nil {
		return
	}
	m.logger.ErrorContext(r.Context(), msg, "error", err, "request_id", requestcontext.RequestID(r.Context()))
}
