package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyAccount ctxKey = iota

// requireAccount gates a route behind the bearer JWT: a missing token is
// unauthenticated (401), an invalid or expired token — or one whose account
// no longer exists — is forbidden (403). The resolved account is placed in
// the request context.
func requireAccount(store Store, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			accountID, err := parseToken(secret, token)
			if err != nil {
				writeError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			acc, err := store.AccountByID(r.Context(), accountID)
			if err != nil {
				writeError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAccount, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accountFrom(r *http.Request) Account {
	return r.Context().Value(ctxKeyAccount).(Account)
}
