// Package rosterrouter mounts the roster module's HTTP surface behind the
// shared middleware stack.
package rosterrouter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	rosterservice "github.com/high-country-wrestling/roster-bot/app/modules/roster/application"
	rosterhandlers "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/handlers"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
)

// RosterRouter wires the roster handlers into a chi router.
type RosterRouter struct {
	logger *slog.Logger
	router chi.Router
}

// NewRosterRouter creates the router with its middleware stack. writeLimit
// caps the sustained rate of incoming requests; zero disables limiting.
func NewRosterRouter(service rosterservice.Service, logger *slog.Logger, writeLimit rate.Limit) *RosterRouter {
	h := rosterhandlers.NewRosterHandlers(service, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(correlationIDMiddleware)
	r.Use(chimiddleware.Recoverer)
	if writeLimit > 0 {
		r.Use(rateLimitMiddleware(rate.NewLimiter(writeLimit, int(writeLimit)+1)))
	}
	r.Mount("/sessions", h.Routes())

	return &RosterRouter{logger: logger, router: r}
}

func (r *RosterRouter) Handler() http.Handler { return r.router }

// correlationIDMiddleware honors an inbound X-Correlation-ID header and
// generates one otherwise, so events published during the request carry the
// same ID the client saw.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Correlation-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Correlation-ID", id)
		next.ServeHTTP(w, req.WithContext(attr.WithCorrelationID(req.Context(), id)))
	})
}

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
