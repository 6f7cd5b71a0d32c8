package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// handleLogin verifies credentials and returns a fresh session token.
// Unknown emails and wrong passwords are deliberately indistinguishable.
func handleLogin(logger *slog.Logger, store Store, secret []byte, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		acc, err := store.AccountByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			logger.Error("load account", "error", err)
			writeError(w, http.StatusInternalServerError, "could not log in")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := signToken(secret, ttl, acc.ID, acc.Email)
		if err != nil {
			logger.Error("sign token", "error", err)
			writeError(w, http.StatusInternalServerError, "could not log in")
			return
		}

		writeJSON(w, http.StatusOK, authResponse{Token: token, Account: acc})
	}
}
