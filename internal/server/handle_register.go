package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// handleRegister creates an account and returns a signed session token.
func handleRegister(logger *slog.Logger, store Store, secret []byte, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !strings.Contains(email, "@") {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		// bcrypt truncates past 72 bytes.
		if len(req.Password) < 8 || len(req.Password) > 72 {
			writeError(w, http.StatusBadRequest, "password must be between 8 and 72 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("hash password", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create account")
			return
		}

		acc, err := store.CreateAccount(r.Context(), email, string(hash))
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				writeError(w, http.StatusBadRequest, "an account with this email already exists")
				return
			}
			logger.Error("create account", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create account")
			return
		}

		token, err := signToken(secret, ttl, acc.ID, acc.Email)
		if err != nil {
			logger.Error("sign token", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create account")
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{Token: token, Account: acc})
	}
}
