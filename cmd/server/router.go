package main

import (
	"net/http"

	"github.com/vancomm/mastermind-solver/internal/middleware"
)

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)
	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("GET /v1/records", handleGetRecords)

	mux.HandleFunc("POST /v1/game", handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", handleGetGame)
	mux.HandleFunc("POST /v1/game/{id}/guess", handleGuess)
	mux.HandleFunc("POST /v1/game/{id}/feedback", handleFeedback)

	mux.HandleFunc("GET /v1/game/{id}/connect", handleConnectWs)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Auth(log, cookies, jwtConfig),
		middleware.Logging(log),
	)
}
