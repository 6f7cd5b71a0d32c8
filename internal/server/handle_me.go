package server

import "net/http"

// handleMe returns the authenticated account.
func handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, accountFrom(r))
	}
}
