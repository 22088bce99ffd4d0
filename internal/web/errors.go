package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// writeError maps a coded error to its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := perrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case code == "":
		code = perrors.ErrCodeInternal
	case perrors.IsNotFound(err):
		status = http.StatusNotFound
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case code == perrors.ErrCodeStorageUnavailable:
		status = http.StatusServiceUnavailable
	}

	message := perrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeErr(w, status, string(code), message)
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, maxBytes int64, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			writeErr(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds max size")
		case strings.Contains(err.Error(), "unknown field"):
			writeErr(w, http.StatusBadRequest, "BAD_JSON", "request contains unknown fields")
		default:
			writeErr(w, http.StatusBadRequest, "BAD_JSON", "request body must be valid JSON")
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "BAD_JSON", "request body must contain exactly one JSON object")
		if err == nil {
			err = errors.New("trailing data")
		}
		return err
	}
	return nil
}
