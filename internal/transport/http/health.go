package http

import stdhttp "net/http"

// HealthHandler reports service liveness.
func HealthHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	writeJSON(w, stdhttp.StatusOK, map[string]string{"status": "ok"})
}
