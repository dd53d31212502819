package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/store"
)

var errRouteNotFound = apperr.New(apperr.ErrCodeNotFound, "no such route")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// statusFor maps an application error to an HTTP status. A page past the
// end of a document is a missing resource here, not a bad request.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) || apperr.Is(err, apperr.ErrCodeInvalidPage) {
		return http.StatusNotFound
	}
	switch code := apperr.GetCode(err); {
	case code.Category() == apperr.Missing:
		return http.StatusNotFound
	case code.Category() == apperr.Invalid, code == apperr.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(apperr.GetCode(err))
	if code == "" {
		code = string(apperr.ErrCodeInternal)
	}
	msg := apperr.UserMessage(err)
	if status == http.StatusInternalServerError && apperr.GetCode(err) == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
