package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/middleware"
)

const errBodyTooLarge = errors.ConstError("request body too large")

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// writeError maps an error kind to a status and writes the error body.
// Server-side failures are logged in full; their text reaches the client
// only when exposeInternalErrors is set.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, errBodyTooLarge):
		status, message = http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, errors.NotValid):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errors.Unauthorized):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, errors.Forbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, errors.NotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, data.ErrStoreUnavailable):
		status, message = http.StatusServiceUnavailable, "content store unavailable"
	}

	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("request failed")
		if s.exposeInternalErrors {
			message = err.Error()
		}
	}
	middleware.WriteError(w, status, "", message)
}

// decodeJSON reads a JSON body into v. An empty body is accepted only when
// allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && allowEmpty:
		return nil
	case isTooLarge(err):
		return errBodyTooLarge
	default:
		return errors.NewNotValid(err, "malformed JSON body")
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if isTooLarge(err) {
			return nil, errBodyTooLarge
		}
		return nil, errors.NewNotValid(err, "reading body")
	}
	return body, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
