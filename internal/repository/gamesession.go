package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	Difficulty    string
	Mistakes      int
	Won           bool
	Forfeited     bool
	State         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateSessionParams struct {
	PlayerId   *int64
	Difficulty string
	State      []byte
}

func (q Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*GameSession, error) {
	args := pgx.NamedArgs{
		"player_id":  nil,
		"difficulty": params.Difficulty,
		"state":      params.State,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (player_id, difficulty, state)
		VALUES (@player_id, @difficulty, @state)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) GetSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

type UpdateSessionParams struct {
	GameSessionId int64
	State         []byte
	Mistakes      int
	Won           bool
	Forfeited     bool
	EndedAt       *time.Time
}

func (q Queries) UpdateSession(
	ctx context.Context, params UpdateSessionParams,
) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session SET
			state = @state,
			mistakes = @mistakes,
			won = @won,
			forfeited = @forfeited,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionId,
			"state":           params.State,
			"mistakes":        params.Mistakes,
			"won":             params.Won,
			"forfeited":       params.Forfeited,
			"ended_at":        params.EndedAt,
		},
	)
	return err
}
