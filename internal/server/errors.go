package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/matzehuels/bandslicer/pkg/errors"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeDegenerateInput:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeIndexOutOfRange, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath, apperrors.ErrCodeInvalidDirection,
		apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := statusFor(code)
	msg := apperrors.UserMessage(err)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code, status, msg = "CANCELED", http.StatusServiceUnavailable, "request canceled"
	case code == "":
		code = apperrors.ErrCodeInternal
		msg = "internal error"
	}

	writeJSON(w, status, errorResponse{
		Code:      string(code),
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
