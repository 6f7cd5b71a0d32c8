package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const leaderboardSize = 10

// handleLeaderboard returns the top accounts by best score. Public.
func handleLeaderboard(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.Leaderboard(r.Context(), leaderboardSize)
		if err != nil {
			logger.Error("load leaderboard", "error", err)
			writeError(w, http.StatusInternalServerError, "could not load leaderboard")
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// handleLeaderboardEvents streams leaderboard updates over SSE.
func handleLeaderboardEvents(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case data := <-ch:
				fmt.Fprintf(w, "event: leaderboard\ndata: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
