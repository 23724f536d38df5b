package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/michael-berardi/expatsargentina/internal/observability"
)

// apiError is the JSON error envelope returned by every API route.
type apiError struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

func newError(code, message string, status int) apiError {
	return apiError{Code: code, Message: message, Status: status}
}

func (e apiError) with(key string, value any) apiError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

func writeError(ctx context.Context, w http.ResponseWriter, e apiError) {
	payload := map[string]any{
		"error":   e.Code,
		"message": e.Message,
		"status":  e.Status,
	}
	if id := chimw.GetReqID(ctx); id != "" {
		payload["request_id"] = clip(id, 80)
	}
	if info, ok := observability.Trace(ctx); ok && info.TraceID != "" {
		payload["trace_id"] = info.TraceID
	}
	for k, v := range e.Details {
		payload[k] = v
	}
	writeJSON(ctx, w, e.Status, payload)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(ctx).Warn("encode response", zap.Error(err))
	}
}

// clip flattens line breaks and keeps at most limit runes.
func clip(value string, limit int) string {
	value = strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ").Replace(value))
	n := 0
	for i := range value {
		if n == limit {
			return value[:i]
		}
		n++
	}
	return value
}
