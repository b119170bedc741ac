package middleware

import (
	"net/http"
	"sync"
)

// SingleFlight gates a route group so only one request per client is in
// flight at a time. It is the server-side version of the UI's "busy" flag on
// AI controls: a repeat submission while a call is outstanding gets a 409
// instead of a second model invocation. There is no cancellation; the first
// request always runs to completion.
func SingleFlight() func(http.Handler) http.Handler {
	var mu sync.Mutex
	inflight := make(map[string]struct{})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)
			mu.Lock()
			if _, busy := inflight[key]; busy {
				mu.Unlock()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error":{"code":"busy","message":"a request is already in flight"}}`))
				return
			}
			inflight[key] = struct{}{}
			mu.Unlock()

			defer func() {
				mu.Lock()
				delete(inflight, key)
				mu.Unlock()
			}()
			next.ServeHTTP(w, r)
		})
	}
}
