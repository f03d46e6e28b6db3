package http

import "net/http"

// NotFoundHandler answers unmatched routes with the JSON error envelope
// instead of the mux default.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
}
