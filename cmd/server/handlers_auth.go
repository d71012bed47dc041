package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/mastermind-solver/internal/middleware"
)

func credentials(r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" || len(password) > 72 {
		return "", "", false
	}
	return username, password, true
}

func issueCookies(w http.ResponseWriter, playerId int64, username string) error {
	token, err := jwtConfig.Sign(jwtConfig.NewPlayerClaims(playerId, username))
	if err != nil {
		return err
	}
	return cookies.Refresh(w, token, time.Now().Add(jwtConfig.TokenLifetime))
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to hash password")
		log.Error(err)
		return
	}

	player, err := pg.CreatePlayer(r.Context(), username, hash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, http.StatusConflict, "username taken")
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to create player")
		log.Error(err)
		return
	}

	if err := issueCookies(w, player.PlayerId, player.Username); err != nil {
		sendError(w, http.StatusInternalServerError, "unable to set auth cookies")
		log.Error(err)
		return
	}
	sendJSON(w, map[string]string{"username": player.Username})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	player, err := pg.GetPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	} else if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to fetch player")
		log.Error(err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Error("bcrypt compare error: ", err)
		}
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := issueCookies(w, player.PlayerId, player.Username); err != nil {
		sendError(w, http.StatusInternalServerError, "unable to set auth cookies")
		log.Error(err)
		return
	}
	sendJSON(w, map[string]string{"username": player.Username})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	cookies.Clear(w)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		sendJSON(w, map[string]string{"status": "ok", "username": claims.Username})
		return
	}
	sendJSON(w, map[string]string{"status": "ok"})
}
