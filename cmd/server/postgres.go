package main

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgres struct {
	db *pgxpool.Pool
}

func (pg *postgres) Close() {
	pg.db.Close()
}

type Player struct {
	PlayerId     int64  `db:"player_id"`
	Username     string `db:"username"`
	PasswordHash []byte `db:"password_hash"`
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int64
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id;`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

// CreateGameRecord stores a solved session. Callers must hold the
// session lock.
func (pg *postgres) CreateGameRecord(
	ctx context.Context, session *solveSession,
) error {
	_, err := pg.db.Exec(ctx, `
		INSERT INTO game_record (
			session_id, player_id, places, colors, strategy, turns, playtime_ms
		)
		VALUES (
			@session_id, @player_id, @places, @colors, @strategy, @turns, @playtime_ms
		);`,
		pgx.NamedArgs{
			"session_id":  session.Id,
			"player_id":   session.PlayerId,
			"places":      session.Game.Places(),
			"colors":      session.Game.Colors(),
			"strategy":    string(session.Strategy),
			"turns":       session.Solver.Turns(),
			"playtime_ms": session.EndedAt.Sub(session.StartedAt).Milliseconds(),
		})
	return err
}
