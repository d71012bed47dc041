package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/mastermind-solver/mastermind"
)

// handleConnectWs drives a solving session over one socket. The client
// sends text commands:
//
//	g                request the next guess
//	f <exact> <color> submit feedback for the outstanding guess
//
// and receives the full session state after each command. The loop
// ends when the session is solved or the client disconnects.
func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	session, err := sessions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, errSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to load session")
		log.Error(err)
		return
	}

	c, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	session.mu.Lock()
	err = c.WriteJSON(session)
	session.mu.Unlock()
	if err != nil {
		log.Error("write: ", err)
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read: ", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		session.mu.Lock()
		solved, cmdErr := executeCommand(session, text)
		if cmdErr == nil {
			sessions.persist(r.Context(), session)
		}
		var writeErr error
		if cmdErr != nil {
			writeErr = c.WriteJSON(map[string]string{"error": cmdErr.Error()})
		} else {
			writeErr = c.WriteJSON(session)
		}
		session.mu.Unlock()

		if writeErr != nil {
			log.Error("write: ", writeErr)
			return
		}
		if solved {
			return
		}
	}
}

// executeCommand applies one client command. Callers must hold the
// session lock.
func executeCommand(session *solveSession, text string) (solved bool, err error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false, errors.New("empty command")
	}
	switch fields[0] {
	case "g":
		if len(fields) != 1 {
			return false, errors.New("g takes no arguments")
		}
		if _, err := session.Solver.NewGuess(); err != nil {
			return false, err
		}
		return false, nil
	case "f":
		if len(fields) != 3 {
			return false, errors.New("f takes two arguments: exact color")
		}
		var f mastermind.Feedback
		if _, err := fmt.Sscan(fields[1]+" "+fields[2], &f.Exact, &f.Color); err != nil {
			return false, errors.New("feedback arguments must be numbers")
		}
		if err := session.Solver.Feedback(f); err != nil {
			return false, err
		}
		if session.Solver.Solved() && session.EndedAt.IsZero() {
			session.EndedAt = time.Now().UTC()
			recordFinishedSession(context.Background(), session)
		}
		return session.Solver.Solved(), nil
	}
	return false, errors.New("unknown command")
}
