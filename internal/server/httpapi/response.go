package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// writeJSON writes data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps err to a status code and writes the error body. Errors
// that are not one of the known kinds are logged and reported as a generic
// 500 so internal details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, log logging.Logger, err error) {
	status, code, fallback := classify(err)
	if status == http.StatusInternalServerError {
		log.Error(ctx, "request failed", "error", err)
		writeJSON(w, status, errorBody{Message: fallback, Error: code})
		return
	}
	writeJSON(w, status, errorBody{Message: common.MessageOf(err, fallback), Error: code})
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "bad_request", "bad request"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, common.ErrorMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}
