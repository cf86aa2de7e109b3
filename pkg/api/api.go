// Package api exposes the pokedex service over HTTP.
//
// Routes:
//
//	GET /pokemon/{name}             species metadata
//	GET /pokemon/translated/{name}  species metadata, description translated
//	GET /healthz                    liveness
//
// Successful lookups return the species record as JSON. Failures return the
// mapped API error from [github.com/matzehuels/pokespeare/pkg/errors] with
// its HTTP status and a {"code","message"} body. Every response carries an
// X-Request-Id header.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apierrors "github.com/matzehuels/pokespeare/pkg/errors"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
)

// HeaderRequestID carries the request correlation ID.
const HeaderRequestID = "X-Request-Id"

// Service is the lookup surface served by the router. Implemented by
// *pokedex.Service.
type Service interface {
	Info(ctx context.Context, name string) (*pokeapi.SpeciesInfo, error)
	TranslatedInfo(ctx context.Context, name string) (*pokeapi.SpeciesInfo, error)
}

type handler struct {
	svc    Service
	logger *log.Logger
}

// NewRouter builds the HTTP handler for svc. If logger is nil, log.Default()
// is used.
func NewRouter(svc Service, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apierrors.NotFound("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apierrors.MethodNotAllowed())
	})

	r.Get("/healthz", h.health)
	r.Get("/pokemon/{name}", h.info)
	r.Get("/pokemon/translated/{name}", h.translatedInfo)

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) info(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Info(r.Context(), nameParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *handler) translatedInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.TranslatedInfo(r.Context(), nameParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// nameParam returns the decoded {name} segment. chi matches on the escaped
// path when one is set, so "%2F" and friends arrive still encoded. Names
// that are not valid escapes are passed through unchanged.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// =============================================================================
// Responses
// =============================================================================

// writeError maps err to an API error, logs its cause and writes the body.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierrors.From(err)
	fields := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", apiErr.Status,
		"code", apiErr.Code,
		"request_id", w.Header().Get(HeaderRequestID),
	}
	if apiErr.Cause != nil {
		fields = append(fields, "err", apiErr.Cause)
	}
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

// requestID echoes the incoming X-Request-Id or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request at info level.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", r.Header.Get(HeaderRequestID),
			)
		})
	}
}
