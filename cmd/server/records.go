package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

type GameRecord struct {
	SessionId  string  `json:"session_id" db:"session_id"`
	Username   *string `json:"username" db:"username"`
	Places     int     `json:"places" db:"places"`
	Colors     int     `json:"colors" db:"colors"`
	Strategy   string  `json:"strategy" db:"strategy"`
	Turns      int     `json:"turns" db:"turns"`
	PlaytimeMs int64   `json:"playtime_ms" db:"playtime_ms"`
}

type gameRecordFilters struct {
	username *string
	places   *int
	colors   *int
	strategy *string
}

func (f gameRecordFilters) whereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	clauses := []string{}
	if f.username != nil {
		args["username"] = *f.username
		clauses = append(clauses, "username = @username")
	}
	if f.places != nil {
		args["places"] = *f.places
		clauses = append(clauses, "places = @places")
	}
	if f.colors != nil {
		args["colors"] = *f.colors
		clauses = append(clauses, "colors = @colors")
	}
	if f.strategy != nil {
		args["strategy"] = *f.strategy
		clauses = append(clauses, "strategy = @strategy")
	}
	if len(clauses) == 0 {
		return "", args
	}
	return strings.Join(clauses, " and "), args
}

type gameRecordsOption = func(*gameRecordFilters)

func recordsForPlayer(username string) gameRecordsOption {
	return func(f *gameRecordFilters) { f.username = &username }
}

func recordsForGame(places, colors int) gameRecordsOption {
	return func(f *gameRecordFilters) {
		f.places = &places
		f.colors = &colors
	}
}

func recordsForStrategy(strategy string) gameRecordsOption {
	return func(f *gameRecordFilters) { f.strategy = &strategy }
}

func getGameRecords(
	ctx context.Context, options ...gameRecordsOption,
) ([]GameRecord, error) {
	filters := &gameRecordFilters{}
	for _, op := range options {
		op(filters)
	}

	sql := `
	select
		session_id
		, username
		, places
		, colors
		, strategy
		, turns
		, playtime_ms
	from game_record
		left outer join player using (player_id)`

	whereClause, args := filters.whereClause()
	if whereClause != "" {
		sql += " where " + whereClause
	}

	sql += " order by turns, playtime_ms"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}

type recordsParams struct {
	Username string `schema:"username"`
	Places   int    `schema:"places"`
	Colors   int    `schema:"colors"`
	Strategy string `schema:"strategy"`
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	var params recordsParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	var options []gameRecordsOption
	if params.Username != "" {
		options = append(options, recordsForPlayer(params.Username))
	}
	if params.Places > 0 && params.Colors > 0 {
		options = append(options, recordsForGame(params.Places, params.Colors))
	}
	if params.Strategy != "" {
		options = append(options, recordsForStrategy(params.Strategy))
	}

	records, err := getGameRecords(r.Context(), options...)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "unable to fetch records")
		log.Error(err)
		return
	}
	if records == nil {
		records = []GameRecord{}
	}
	sendJSON(w, records)
}
