package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quizhub/api/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// engineError maps an engine error kind to an HTTP status.
func engineError(w http.ResponseWriter, err error) {
	switch engine.KindOf(err) {
	case engine.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case engine.KindInvalidState, engine.KindConflict, engine.KindCapacityExceeded:
		writeError(w, http.StatusConflict, err.Error())
	case engine.KindValidationFailed:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses a numeric URL parameter. A non-numeric id can never name a
// resource, so callers treat an error as not found.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
