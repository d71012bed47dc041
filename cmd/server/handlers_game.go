package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/mastermind-solver/internal/middleware"
	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type newGameParams struct {
	Places   int    `schema:"places,required"`
	Colors   int    `schema:"colors,required"`
	Strategy string `schema:"strategy,required"`
	Rule     string `schema:"rule"`
	Pool     string `schema:"pool"`
}

type feedbackParams struct {
	Exact int `schema:"exact,required"`
	Color int `schema:"color,required"`
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	params := newGameParams{
		Rule: string(solver.PreferCandidate),
		Pool: string(solver.PoolUniverse),
	}
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := mastermind.NewGame(params.Places, params.Colors)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategy, err := solver.ParseStrategy(params.Strategy)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	rule, err := solver.ParseTieBreak(params.Rule)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	pool, err := solver.ParseGuessPool(params.Pool)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
	} else {
		log.Debug("creating anonymous session")
	}

	session, err := newSolveSession(game, strategy, rule, pool, playerId)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to create session")
		log.Error(err)
		return
	}
	sessions.Put(r.Context(), session)

	session.mu.Lock()
	defer session.mu.Unlock()
	sendJSON(w, session)
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, err := sessions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, errSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to load session")
		log.Error(err)
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	sendJSON(w, session)
}

func handleGuess(w http.ResponseWriter, r *http.Request) {
	session, err := sessions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, errSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to load session")
		log.Error(err)
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, err := session.Solver.NewGuess(); err != nil {
		status, message := solverErrorStatus(err)
		sendError(w, status, message)
		return
	}
	sessions.persist(r.Context(), session)
	sendJSON(w, session)
}

func handleFeedback(w http.ResponseWriter, r *http.Request) {
	var params feedbackParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := sessions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, errSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to load session")
		log.Error(err)
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	f := mastermind.Feedback{Exact: params.Exact, Color: params.Color}
	if err := session.Solver.Feedback(f); err != nil {
		status, message := solverErrorStatus(err)
		sendError(w, status, message)
		return
	}
	if session.Solver.Solved() && session.EndedAt.IsZero() {
		session.EndedAt = time.Now().UTC()
		recordFinishedSession(r.Context(), session)
	}
	sessions.persist(r.Context(), session)
	sendJSON(w, session)
}

// recordFinishedSession stores a finished game in postgres. Failures
// are logged, not surfaced: the solve itself succeeded.
func recordFinishedSession(ctx context.Context, session *solveSession) {
	if err := pg.CreateGameRecord(ctx, session); err != nil {
		log.Error("unable to record finished session: ", err)
	}
}

// solverErrorStatus maps the solver's sentinel errors onto HTTP
// statuses: caller errors are 4xx, a poisoned history is a conflict.
func solverErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, solver.ErrGuessPending),
		errors.Is(err, solver.ErrInvalidFeedback):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, solver.ErrInconsistentHistory):
		return http.StatusConflict, err.Error()
	case errors.Is(err, solver.ErrSearchExhausted):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, err.Error()
}
