package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"textdigest/internal/errortypes"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func JSONResponse(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func JSONError(w http.ResponseWriter, status int, message string) error {
	return JSONResponse(w, status, map[string]string{"error": message})
}

// HandleError writes err with the status matching its kind.
func HandleError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		JSONError(w, httpErr.Code, httpErr.Message)
	case errortypes.IsInvalidArgument(err):
		JSONError(w, http.StatusBadRequest, err.Error())
	default:
		JSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// DecodeJSON requires a JSON content type and decodes the body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be application/json",
		}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid JSON payload: " + err.Error(),
		}
	}
	return nil
}
