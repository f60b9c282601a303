package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mercator-hq/atoz/pkg/api/types"
	"mercator-hq/atoz/pkg/listing"
)

// writeJSON writes data as a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// writeError writes an error response with the status implied by its type.
func writeError(w http.ResponseWriter, errResp *types.ErrorResponse) {
	_ = writeJSON(w, errResp.Error.HTTPStatusCode(), errResp)
}

// handleError maps service errors to API errors. Unknown errors are
// logged and reported without detail.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		queryErr *listing.QueryError
		itemErr  *listing.ItemError
		maxErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &queryErr):
		writeError(w, types.NewInvalidRequestError(queryErr.Cause.Error(), "", types.CodeInvalidValue))
	case errors.As(err, &itemErr):
		writeError(w, types.NewInvalidRequestError(itemErr.Cause.Error(), "", types.CodeInvalidValue))
	case errors.Is(err, listing.ErrNotFound):
		writeError(w, types.NewNotFoundError("item not found", types.CodeItemNotFound))
	case errors.As(err, &maxErr):
		writeError(w, types.NewInvalidRequestError(
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), "", types.CodeRequestTooLarge))
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, types.NewServerError("An internal error occurred. Please try again later."))
	}
}
