package web

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/rbessler/inkwell/internal/errors"
)

// errorBody is the JSON envelope for failed requests. Only the taxonomy
// code and message are rendered; causes stay in the logs.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError maps err onto the taxonomy and writes the error envelope.
// Errors outside the taxonomy render as INTERNAL.
func renderError(w http.ResponseWriter, log *slog.Logger, err error) {
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(err)
	}

	if appErr.Status >= 500 {
		log.Error("request failed", "code", appErr.Code, "error", err)
	}

	renderJSON(w, appErr.Status, errorBody{
		Error: errorDetail{
			Code:    string(appErr.Code),
			Message: appErr.Message,
		},
	})
}
