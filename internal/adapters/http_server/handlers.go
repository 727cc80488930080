// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trip_planner/internal/app"
	"trip_planner/internal/domain"
	"trip_planner/internal/routes"
)

const maxRequestBody = 1 << 20

type Handlers struct {
	P *app.PlanningService
	Q *app.QueryService
}

// problem mirrors the error body the planning service sends, so the browser
// reads "detail" the same way whichever side failed.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(Timeout(readTimeout))
			r.Get("/routes", h.listRoutes)
			r.Get("/routes/resolve", h.resolveRoute)
			r.Get("/plans", h.listPlans)
			r.Get("/plans/{id}", h.getPlan)
			r.Get("/plans/{id}/map", h.getTripMap)
		})
		r.With(Timeout(planTimeout)).Post("/trip", h.createPlan)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers with v, or 304 when the client already holds it.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// createPlan answers with the TripPlan itself, so it is a drop-in for the
// planning service's own POST /trip. The stored plan's id travels in headers.
func (h *Handlers) createPlan(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sp, err := h.P.CreatePlan(r.Context(), req)
	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) {
			notePlan(r, "", "remote_error")
			writeProblem(w, http.StatusBadGateway, "Planning failed", re.Message)
			return
		}
		notePlan(r, "", "error")
		log.Error().Err(err).Msg("create plan failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create plan")
		return
	}

	notePlan(r, sp.ID, "created")
	w.Header().Set("Location", "/api/plans/"+sp.ID)
	w.Header().Set("X-Plan-Id", sp.ID)
	if view, err := routes.Build(routes.Plan, map[string]string{"id": sp.ID}); err == nil {
		w.Header().Set("Content-Location", view)
	}
	writeJSON(w, http.StatusCreated, sp.Plan)
}

func (h *Handlers) getPlan(w http.ResponseWriter, r *http.Request) {
	notePlan(r, chi.URLParam(r, "id"), "")
	sp, err := h.Q.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.readFailed(w, err, "plan")
		return
	}
	writeCacheable(w, r, sp)
}

func (h *Handlers) getTripMap(w http.ResponseWriter, r *http.Request) {
	notePlan(r, chi.URLParam(r, "id"), "")
	m, err := h.Q.TripMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.readFailed(w, err, "plan")
		return
	}
	writeCacheable(w, r, m)
}

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := domain.PageQuery{Limit: 20}
	if ls := q.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		page.Limit = l
	}
	if c := q.Get("cursor"); c != "" {
		page.Cursor = &c
	}
	if city := q.Get("city"); city != "" {
		page.City = &city
	}

	out, err := h.Q.ListPlans(r.Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			writeProblem(w, http.StatusBadRequest, "Invalid cursor", err.Error())
			return
		}
		h.readFailed(w, err, "plans")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listRoutes(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, routes.All())
}

type resolvedRoute struct {
	Route  routes.Route      `json:"route"`
	Params map[string]string `json:"params"`
}

func (h *Handlers) resolveRoute(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid path", "path is required")
		return
	}
	rt, params, ok := routes.Resolve(path)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no view for "+path)
		return
	}
	writeJSON(w, http.StatusOK, resolvedRoute{Route: rt, Params: params})
}

func (h *Handlers) readFailed(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
		return
	}
	log.Error().Err(err).Str("what", what).Msg("read failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load "+what)
}
