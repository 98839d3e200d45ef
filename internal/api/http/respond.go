package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code               string `json:"code"`
	Message            string `json:"message"`
	ConflictingOrderID string `json:"conflicting_order_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps each domain error kind to one stable, distinguishable
// response so the calling layer can render "dates unavailable" differently
// from "not permitted". Unknown errors become an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	detail := errorDetail{Message: err.Error()}

	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, detail.Code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrForbidden):
		status, detail.Code = http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrInvalidDateRange):
		status, detail.Code = http.StatusUnprocessableEntity, "invalid_date_range"
	case errors.Is(err, domain.ErrNotAvailable):
		status, detail.Code = http.StatusConflict, "not_available"
	case errors.Is(err, domain.ErrConflict):
		status, detail.Code = http.StatusConflict, "conflict"
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			detail.ConflictingOrderID = ce.ConflictingOrderID
		}
	case errors.Is(err, domain.ErrInvalidTransition):
		status, detail.Code = http.StatusConflict, "invalid_transition"
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		status, detail.Code = http.StatusInternalServerError, "internal"
		detail.Message = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: detail})
}
