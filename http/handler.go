package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/smallserver"
	"github.com/sagarc03/smallserver/metrics"
)

// Service resolves request paths to files and opens them.
type Service interface {
	Resolve(ctx context.Context, rawPath string) (smallserver.ResolvedFile, error)
	Open(ctx context.Context, file smallserver.ResolvedFile) (io.ReadSeekCloser, error)
}

// Planner computes the response for a resolved file.
type Planner interface {
	Plan(h http.Header, file smallserver.ResolvedFile) smallserver.ResponsePlan
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// ServerName is sent in the Server header (default: smallserver).
	ServerName string
	CORS       CORSConfig
	// Metrics enables request metrics collection.
	Metrics bool
}

// Handler serves files resolved by a Service.
type Handler struct {
	config  HandlerConfig
	service Service
	planner Planner
}

// NewHandler creates a new Handler with the given configuration, service and planner.
func NewHandler(config *HandlerConfig, service Service, planner Planner) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		planner: planner,
	}
}

// Router returns an http.Handler serving GET and HEAD on every path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(AccessLog)
	if h.config.Metrics {
		r.Use(metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(ServerHeader(h.config.ServerName))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/*", h.handleGet)
	r.Head("/*", h.handleGet)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, err := h.service.Resolve(ctx, r.URL.EscapedPath())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if file.Fallback != smallserver.NoFallback {
		metrics.RecordFallback(file.Fallback.String())
	}

	plan := h.planner.Plan(r.Header, file)

	if !plan.Body || r.Method == http.MethodHead {
		writeHeader(w, plan)
		return
	}

	content, err := h.service.Open(ctx, file)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	defer func() { _ = content.Close() }()

	body, err := window(content, plan)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeHeader(w, plan)

	if plan.Encoding != smallserver.EncodingIdentity {
		metrics.RecordEncoding(string(plan.Encoding))
	}

	// The status line is out; failures from here on can only abort the response.
	if err := copyBody(w, body, plan.Encoding); err != nil {
		metrics.RecordAborted()
		if errors.Is(err, context.Canceled) {
			slog.DebugContext(ctx, "client went away", "path", file.Path)
			return
		}
		slog.WarnContext(ctx, "response aborted", "path", file.Path, "err", err)
	}
}

func writeHeader(w http.ResponseWriter, plan smallserver.ResponsePlan) {
	header := w.Header()
	for k, v := range plan.Header {
		header[k] = v
	}
	w.WriteHeader(plan.Status)
}

// window restricts content to the planned byte window.
func window(content io.ReadSeeker, plan smallserver.ResponsePlan) (io.Reader, error) {
	if !plan.Ranged {
		return content, nil
	}

	if _, err := content.Seek(plan.Window.Start, io.SeekStart); err != nil {
		return nil, err
	}

	return io.LimitReader(content, plan.Window.Len()), nil
}
