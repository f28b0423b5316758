package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"selfservice/internal/platform/metrics"
	"selfservice/internal/platform/session"
	"selfservice/pkg/requestcontext"
	"selfservice/pkg/testutil"
)

type stubPages struct {
	sawSession bool
}

func (p *stubPages) Register(r chi.Router) {
	r.Get("/services", func(w http.ResponseWriter, r *http.Request) {
		p.sawSession = !requestcontext.SessionID(r.Context()).IsNil()
		w.WriteHeader(http.StatusOK)
	})
}

type stubPinger struct{ err error }

func (p stubPinger) Health(context.Context) error { return p.err }

func newTestRouter(store Pinger, pages *stubPages) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(RouterConfig{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Store:    store,
		Pages:    pages,
	})
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "no external store", func(t *testing.T) {
		router := newTestRouter(nil, &stubPages{})

		testutil.Then(t, "healthz reports memory storage", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "store", "memory")
		})
	})

	testutil.Given(t, "an unreachable redis", func(t *testing.T) {
		router := newTestRouter(stubPinger{err: errors.New("dial tcp: refused")}, &stubPages{})

		testutil.Then(t, "healthz is unavailable", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
			testutil.AssertJSONContains(t, rr, "status", "unavailable")
		})
	})

	testutil.Given(t, "a page request", func(t *testing.T) {
		router := newTestRouter(nil, &stubPages{})

		testutil.When(t, "metrics are scraped afterwards", func(t *testing.T) {
			testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/services"))
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))

			testutil.Then(t, "the request latency is exported by route", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertBodyContains(t, rr, `selfservice_http_request_duration_seconds_count{method="GET",route="/services",status="2xx"} 1`)
			})
		})

		testutil.Then(t, "every response carries a request id", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/services"))
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatal("expected X-Request-ID header")
			}
		})
	})

	testutil.Given(t, "session middleware", func(t *testing.T) {
		pages := &stubPages{}
		router := NewRouter(RouterConfig{
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Sessions: session.NewManager("test-key", time.Hour).Middleware,
			Pages:    pages,
		})

		testutil.When(t, "a page is requested without a cookie", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/services"))

			testutil.Then(t, "a session is minted for the page", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				if !pages.sawSession {
					t.Fatal("expected session id in page context")
				}
				if len(rr.Result().Cookies()) != 1 {
					t.Fatalf("expected one session cookie, got %d", len(rr.Result().Cookies()))
				}
			})
		})

		testutil.When(t, "healthz is probed", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

			testutil.Then(t, "no cookie is set", func(t *testing.T) {
				if len(rr.Result().Cookies()) != 0 {
					t.Fatal("probes must not mint sessions")
				}
			})
		})
	})
}
