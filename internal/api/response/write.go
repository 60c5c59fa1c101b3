package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data before touching the response, so an encoding failure
// still yields a clean 500 instead of a truncated body. Nil data writes
// only the status.
func JSON(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// Created writes a 201 pointing at the new resource
func Created(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204, used for empty listings and deletes
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
