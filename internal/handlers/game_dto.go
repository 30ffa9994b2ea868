package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/repository"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/sudoku"
)

type CreateNewGameDTO struct {
	Difficulty string `schema:"difficulty,required"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameMoveDTO struct {
	Move  string `schema:"move,required"`
	Row   int    `schema:"row,required"`
	Col   int    `schema:"col,required"`
	Value int    `schema:"value"`
}

func ParseGameMoveDTO(src map[string][]string) (GameMoveDTO, error) {
	var dto GameMoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string       `json:"game_session_id"`
	Difficulty    string       `json:"difficulty"`
	Puzzle        sudoku.Grid  `json:"puzzle"`
	Board         sudoku.Grid  `json:"board"`
	Solution      *sudoku.Grid `json:"solution,omitempty"`
	Mistakes      int          `json:"mistakes"`
	Won           bool         `json:"won"`
	Forfeited     bool         `json:"forfeited"`
	StartedAt     int64        `json:"started_at"`
	EndedAt       *int64       `json:"ended_at,omitempty"`
}

// NewGameSessionDTO shapes a session for the client. The solution is
// only exposed once the game is over.
func NewGameSessionDTO(
	gameSessionId int64,
	startedAt time.Time,
	endedAt *time.Time,
	game *sudoku.GameState,
) *GameSessionDTO {
	var endedAtMs *int64
	if endedAt != nil {
		e := endedAt.UnixMilli()
		endedAtMs = &e
	}
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(gameSessionId, 10),
		Difficulty:    string(game.Difficulty),
		Puzzle:        game.Puzzle,
		Board:         game.Board,
		Mistakes:      game.Mistakes,
		Won:           game.Won,
		Forfeited:     game.Forfeited,
		StartedAt:     startedAt.UnixMilli(),
		EndedAt:       endedAtMs,
	}
	if game.Over() {
		solution := game.Solution
		dto.Solution = &solution
	}
	return dto
}

func sessionDTO(
	session *repository.GameSession, game *sudoku.GameState,
) *GameSessionDTO {
	return NewGameSessionDTO(
		session.GameSessionId, session.StartedAt, session.EndedAt, game,
	)
}
