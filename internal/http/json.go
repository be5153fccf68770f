package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/target/mmk-usersession/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid JSON body"))
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// WriteData wraps v in the {"data": ...} envelope the users API answers with.
func WriteData(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, map[string]any{"data": v})
}

type apiError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code  string `json:"code"`
		Field string `json:"field,omitempty"`
	} `json:"extensions"`
}

// WriteError renders err in the {"errors": [...]} envelope. The status follows
// the AppError code; anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	var e apiError
	e.Message = err.Error()
	if code == apperrors.ErrCodeInternal {
		// Causes of internal errors stay in the logs.
		e.Message = http.StatusText(http.StatusInternalServerError)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			e.Message = appErr.Message
		}
	}
	e.Extensions.Code = strings.ToUpper(string(code))
	e.Extensions.Field = apperrors.GetField(err)

	WriteJSON(w, apperrors.StatusForCode(code), map[string]any{"errors": []apiError{e}})
}
