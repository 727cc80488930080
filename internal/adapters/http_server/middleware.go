package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"trip_planner/internal/adapters/observability"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"type":"about:blank","title":"Timeout","status":503,"detail":"timeout"}`)
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func status(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

// ---- plan annotations ----

// planNote carries what a plan handler did back out to the request logger.
// Handlers behind Timeout run on their own goroutine, hence the lock.
type planNote struct {
	mu      sync.Mutex
	id      string
	outcome string
}

type planNoteKey struct{}

// notePlan records the plan id and outcome for the request log. Either may be empty.
func notePlan(r *http.Request, id, outcome string) {
	n, ok := r.Context().Value(planNoteKey{}).(*planNote)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if id != "" {
		n.id = id
	}
	if outcome != "" {
		n.outcome = outcome
	}
}

func (n *planNote) fields(e *zerolog.Event) *zerolog.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.id != "" {
		e = e.Str("plan_id", n.id)
	}
	if n.outcome != "" {
		e = e.Str("plan_outcome", n.outcome)
	}
	return e
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.ObserveHTTP(routePattern(r), r.Method, status(ww), time.Since(start))
	})
}

// ---- Structured logging middleware ----

// Logger writes one line per request. RealIP must run first so RemoteAddr is
// the client address.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			note := &planNote{}
			r = r.WithContext(context.WithValue(r.Context(), planNoteKey{}, note))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			st := status(ww)
			ev := l.Info()
			if st >= http.StatusInternalServerError {
				ev = l.Warn()
			}
			note.fields(ev).
				Str("route", routePattern(r)).
				Str("method", r.Method).
				Int("status", st).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote", r.RemoteAddr).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("http_request")
		})
	}
}
