// Package api exposes the dashboard pages and view snapshots over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/octofit/internal/dashboard"
	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/view"
)

// Handler coordinates HTTP requests with the dashboard service.
type Handler struct {
	service        *dashboard.Service
	log            *slog.Logger
	allowedOrigins []string
}

// NewHandler builds a Handler. allowedOrigins applies to the JSON snapshot routes.
func NewHandler(service *dashboard.Service, log *slog.Logger, allowedOrigins []string) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Handler{service: service, log: log, allowedOrigins: allowedOrigins}
}

// Router wires endpoints.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/views", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/{view}", h.viewSnapshot)
	})

	r.Get("/", h.overviewPage)
	r.Get("/{view}", h.viewPage)

	return r
}

// healthz returns an OK response for readiness probes.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) overviewPage(w http.ResponseWriter, r *http.Request) {
	views := h.service.MountAll(r.Context())
	for _, v := range views {
		if _, err := v.Wait(r.Context()); err != nil {
			h.log.DebugContext(r.Context(), "client left before views resolved", slog.Any("err", err))
			return
		}
	}
	h.writePage(w, r, http.StatusOK, "Overview", "", views...)
}

func (h *Handler) viewPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	v, err := h.service.Mount(r.Context(), name)
	if err != nil {
		h.writeMountError(w, r, err)
		return
	}
	state, err := v.Wait(r.Context())
	if err != nil {
		h.log.DebugContext(r.Context(), "client left before view resolved", slog.String("view", name), slog.Any("err", err))
		return
	}

	status := http.StatusOK
	if state.Phase == view.PhaseError {
		status = http.StatusBadGateway
	}
	h.writePage(w, r, status, v.Definition().Title, name, v)
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, title, active string, views ...*view.View) {
	var buf bytes.Buffer
	if err := h.service.RenderPage(&buf, title, active, views...); err != nil {
		h.log.ErrorContext(r.Context(), "render failed", slog.Any("err", err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// SnapshotResponse is the JSON form of a resolved view.
type SnapshotResponse struct {
	ID         string          `json:"id"`
	View       string          `json:"view"`
	Collection string          `json:"collection"`
	State      view.Phase      `json:"state"`
	Message    string          `json:"message,omitempty"`
	Count      int             `json:"count"`
	Records    []domain.Record `json:"records"`
}

func (h *Handler) viewSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	v, err := h.service.Mount(r.Context(), name)
	if err != nil {
		h.writeMountError(w, r, err)
		return
	}
	state, err := v.Wait(r.Context())
	if err != nil {
		return
	}

	def := v.Definition()
	resp := SnapshotResponse{
		ID:         v.ID(),
		View:       def.Name,
		Collection: def.Collection,
		State:      state.Phase,
		Message:    state.Message,
		Count:      len(state.Records),
		Records:    state.Records,
	}
	if resp.Records == nil {
		resp.Records = []domain.Record{}
	}
	status := http.StatusOK
	if state.Phase == view.PhaseError {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

func (h *Handler) writeMountError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dashboard.ErrViewNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "view not found")
		return
	}
	h.log.ErrorContext(r.Context(), "mount failed", slog.Any("err", err))
	writeError(w, http.StatusInternalServerError, "server_error", err.Error())
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		h.log.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(started)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
