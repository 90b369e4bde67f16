package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/CrowderSoup/godolist/database"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError sends {"error": msg}, the body the client turns into an
// APIError.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDBError maps a database error to a response. what names the entity
// for the not-found message.
func writeDBError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, database.ErrInvalidField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Database error: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeBody decodes a JSON request body. Numbers stay json.Number.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func pathID(r *http.Request) (int64, bool) {
	return parseID(mux.Vars(r)["id"])
}

func queryID(r *http.Request, key string) (int64, bool) {
	return parseID(r.URL.Query().Get(key))
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
