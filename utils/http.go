package utils

import (
	"encoding/json"
	"net/http"
)

// MW wraps a handler. Middleware applies a chain so the first MW runs
// outermost.
type MW func(http.HandlerFunc) http.HandlerFunc

func JSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

func Middleware(final http.HandlerFunc, h ...MW) http.HandlerFunc {
	for i := len(h) - 1; i >= 0; i-- {
		final = h[i](final)
	}
	return final
}

// NoStore keeps responses carrying form state out of shared and browser
// caches.
func NoStore(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next(w, r)
	}
}
