package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Observer counts cache lookups and degraded reports; *api.Metrics satisfies it
type Observer interface {
	CacheHit()
	CacheMiss()
	Degraded(reasons []string)
}

type nopObserver struct{}

func (nopObserver) CacheHit()         {}
func (nopObserver) CacheMiss()        {}
func (nopObserver) Degraded([]string) {}

func observe(o Observer, hit bool) {
	if hit {
		o.CacheHit()
	} else {
		o.CacheMiss()
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
