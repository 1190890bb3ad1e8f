package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/smallserver"
)

// WriteError writes a plain text error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(message)); err != nil {
		slog.Debug("failed to write error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Errors reach here only before any part of the response is written.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if errors.Is(err, smallserver.ErrNotFound) {
		slog.WarnContext(ctx, "not found page unavailable", "error", err)
		WriteError(w, http.StatusNotFound, "404 page not found")
		return
	}

	if errors.Is(err, context.Canceled) {
		slog.DebugContext(ctx, "request canceled", "error", err)
	} else {
		slog.ErrorContext(ctx, "request error", "error", err)
	}

	WriteError(w, http.StatusInternalServerError, err.Error())
}
