// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/service"
)

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a service error onto the JSON failure payload.
// Failures keep HTTP 200 so the editor scripts read the body; the code
// field carries the classification. Store details never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := classifyError(err)
	if code == middleware.CodeInternal {
		slog.ErrorContext(r.Context(), "api request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}
	middleware.WriteFailure(w, http.StatusOK, code, message)
}

// classifyError returns the failure code and client message for err.
func classifyError(err error) (code, message string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return middleware.CodeValidation, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return middleware.CodeNotFound, err.Error()
	case errors.Is(err, service.ErrPermission):
		return middleware.CodePermission, err.Error()
	default:
		return middleware.CodeInternal, "internal error"
	}
}
