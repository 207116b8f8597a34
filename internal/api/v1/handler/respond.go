package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, body dto.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out, so a failed encode can only be dropped.
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dto.SuccessResponse(data))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse(code, message))
}

// writeInternalError reports an unexpected failure. The underlying message
// is suppressed in production.
func writeInternalError(w http.ResponseWriter, err error, prod bool) {
	message := "An unexpected error occurred"
	if !prod && err != nil {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, dto.CodeInternalServerError, message)
}

// writeNotFound is the envelope used for unknown routes and methods.
func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, dto.CodeNotFound, "Resource not found")
}

// userIDFromContext pulls the authenticated user ID set by the auth
// middleware. A missing value means the handler was mounted without it.
func userIDFromContext(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, dto.CodeAuthenticationError, "User not found in request context")
		return "", false
	}
	return userID, true
}
