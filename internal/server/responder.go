package server

import (
	"encoding/json"
	"net/http"

	"github.com/bookable-app/bookable/pkg/httperr"
)

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeAPIError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeStoreError maps domain errors onto statuses; anything unclassified is
// a 500 with a caller-supplied code so log lines stay greppable per route.
func writeStoreError(w http.ResponseWriter, err error, fallbackCode string) {
	switch {
	case httperr.IsBadRequest(err):
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
	case httperr.IsNotFound(err):
		writeAPIError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeAPIError(w, http.StatusInternalServerError, fallbackCode, "internal error")
	}
}
