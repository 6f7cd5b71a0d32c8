package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/openguessr/api/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "OpenGuessr API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the OpenGuessr location-guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/register
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/register")
	postRegister.SetSummary("Register")
	postRegister.SetDescription("Creates an account and returns a bearer token.")
	postRegister.AddReqStructure(credentialsRequest{})
	postRegister.AddRespStructure(authResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postRegister)

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Log in")
	postLogin.SetDescription("Authenticates with email and password and returns a bearer token.")
	postLogin.AddReqStructure(credentialsRequest{})
	postLogin.AddRespStructure(authResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// GET /api/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/me")
	getMe.SetSummary("Current account")
	getMe.SetDescription("Returns the authenticated account. Requires Bearer token.")
	getMe.AddRespStructure(Account{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getMe)

	// POST /api/games
	postGames, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGames.SetSummary("Save game")
	postGames.SetDescription("Records a completed game and updates the account's best score. Requires Bearer token.")
	postGames.AddReqStructure(saveGameRequest{})
	postGames.AddRespStructure(GameRecord{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postGames)

	// GET /api/games
	getGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	getGames.SetSummary("Game history")
	getGames.SetDescription("Returns the account's games, newest first. Requires Bearer token.")
	getGames.AddRespStructure([]GameRecord{}, openapi.WithHTTPStatus(http.StatusOK))
	getGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getGames)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Returns the top accounts by best score. Public.")
	getLeaderboard.AddRespStructure([]LeaderboardEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	// GET /api/leaderboard/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard/events")
	getEvents.SetSummary("Leaderboard event stream")
	getEvents.SetDescription("Server-Sent Events stream of leaderboard updates. Public.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Start session")
	postSession.SetDescription("Starts a server-tracked game session. Requires Bearer token.")
	postSession.AddRespStructure(sessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postSession)

	// GET /api/session/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/session/{id}")
	getSession.SetSummary("Session state")
	getSession.SetDescription("Returns the current state of a live session. Requires Bearer token.")
	getSession.AddRespStructure(sessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// POST /api/session/{id}/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/session/{id}/guess")
	postGuess.SetSummary("Submit guess")
	postGuess.SetDescription("Scores a guess for the current round. Requires Bearer token.")
	postGuess.AddReqStructure(game.Guess{})
	postGuess.AddRespStructure(game.RoundResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postGuess)

	// POST /api/session/{id}/next
	postNext, _ := r.NewOperationContext(http.MethodPost, "/api/session/{id}/next")
	postNext.SetSummary("Advance session")
	postNext.SetDescription("Moves to the next round, or finalizes and persists the game after the last round. Requires Bearer token.")
	postNext.AddRespStructure(sessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postNext)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
