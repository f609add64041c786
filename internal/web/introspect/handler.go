// Package introspect serves reflection data over HTTP as JSON.
//
// Routes:
//
//	GET /classes
//	GET /classes/{id}
//	GET /classes/{id}/members/{index}/parameters
//	GET /classes/{id}/members/{index}/docblock
//
// {id} accepts a class id or a fully qualified class name.
package introspect

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jymfony/scriba/internal/catalog"
	"github.com/jymfony/scriba/runtime/reflection"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// DocblockResponse wraps a member docblock; Docblock is null when absent
type DocblockResponse struct {
	Docblock *string `json:"docblock"`
}

// Handler routes introspection requests
type Handler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
	mux     chi.Router
}

// NewHandler creates the introspection handler
func NewHandler(c *catalog.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{catalog: c, logger: logger, mux: chi.NewRouter()}

	h.mux.Use(middleware.RequestID)
	h.mux.Use(middleware.Recoverer)
	h.mux.Use(h.logRequests)

	h.mux.Get("/classes", h.listClasses)
	h.mux.Route("/classes/{id}", func(r chi.Router) {
		r.Get("/", h.getClass)
		r.Get("/members/{index}/parameters", h.getParameters)
		r.Get("/members/{index}/docblock", h.getDocblock)
	})

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.catalog.List(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderJSON(w, http.StatusOK, classes)
}

func (h *Handler) getClass(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r)
	if !ok {
		return
	}

	class, err := h.catalog.Describe(id)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderJSON(w, http.StatusOK, class)
}

func (h *Handler) getParameters(w http.ResponseWriter, r *http.Request) {
	id, index, ok := h.member(w, r)
	if !ok {
		return
	}

	params, err := h.catalog.Parameters(id, index)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderJSON(w, http.StatusOK, params)
}

func (h *Handler) getDocblock(w http.ResponseWriter, r *http.Request) {
	id, index, ok := h.member(w, r)
	if !ok {
		return
	}

	doc, found, err := h.catalog.Docblock(id, index)
	if err != nil {
		h.renderError(w, err)
		return
	}

	resp := DocblockResponse{}
	if found {
		resp.Docblock = &doc
	}
	h.renderJSON(w, http.StatusOK, resp)
}

func (h *Handler) classID(w http.ResponseWriter, r *http.Request) (reflection.ClassID, bool) {
	id, err := h.catalog.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, err)
		return "", false
	}
	return id, true
}

func (h *Handler) member(w http.ResponseWriter, r *http.Request) (reflection.ClassID, int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		h.renderJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "member index must be a non-negative integer",
		})
		return "", 0, false
	}

	id, ok := h.classID(w, r)
	return id, index, ok
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var nf *catalog.NotFoundError
	switch {
	case errors.As(err, &nf):
		h.renderJSON(w, http.StatusNotFound, ErrorResponse{
			Error:       "class_not_found",
			Message:     nf.Error(),
			Suggestions: nf.Suggestions,
		})
	case errors.Is(err, catalog.ErrMemberNotFound):
		h.renderJSON(w, http.StatusNotFound, ErrorResponse{Error: "member_not_found", Message: err.Error()})
	default:
		h.logger.Error("introspection request failed", zap.Error(err))
		h.renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

func (h *Handler) renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}
