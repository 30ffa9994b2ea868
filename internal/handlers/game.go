package handlers

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/config"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/middleware"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/repository"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/sudoku"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
	}
}

// newRand builds an independently seeded generator. Requests are served
// concurrently and each generation must own its entropy source, so a
// fresh one is made per call instead of sharing a handler-wide rand.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	difficulty, err := sudoku.ParseDifficulty(dto.Difficulty)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game, err := sudoku.NewGame(difficulty, newRand())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to generate a new game", "error", err)
		return
	}

	state, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode game state", "error", err)
		return
	}

	params := repository.CreateSessionParams{
		Difficulty: string(difficulty),
		State:      state,
	}
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		g.logger.Debug("creating player session", "claims", claims)
		params.PlayerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateSession(r.Context(), params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

// loadSession fetches a session by the path id and decodes its game
// state, writing the appropriate status on failure.
func (g GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *sudoku.GameState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}

	game, err := sudoku.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, false
	}

	return session, game, true
}

func (g GameHandler) persistSession(
	ctx context.Context,
	session *repository.GameSession, game *sudoku.GameState,
) error {
	if game.Over() && session.EndedAt == nil {
		endedAt := time.Now().UTC()
		session.EndedAt = &endedAt
	}

	state, err := game.Bytes()
	if err != nil {
		return fmt.Errorf("unable to serialize game state: %w", err)
	}

	err = g.repo.UpdateSession(ctx, repository.UpdateSessionParams{
		GameSessionId: session.GameSessionId,
		State:         state,
		Mistakes:      game.Mistakes,
		Won:           game.Won,
		Forfeited:     game.Forfeited,
		EndedAt:       session.EndedAt,
	})
	if err != nil {
		return fmt.Errorf("unable to update session in db: %w", err)
	}

	return nil
}

func (g GameHandler) saveSession(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *sudoku.GameState,
) bool {
	if err := g.persistSession(r.Context(), session, game); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to save session", "error", err)
		return false
	}
	return true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseGameMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if !game.ValidatePosition(dto.Row, dto.Col) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	switch dto.Move {
	case "set":
		err = game.SetCell(dto.Row, dto.Col, uint8(dto.Value))
	case "clear":
		err = game.ClearCell(dto.Row, dto.Col)
	case "check":
		sendJSONOrLog(w, g.logger, map[string]bool{
			"correct": game.CheckCell(dto.Row, dto.Col),
		})
		return
	default:
		err = fmt.Errorf("unknown move %q", dto.Move)
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	if !g.saveSession(w, r, session, game) {
		return
	}

	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	game.Forfeit()

	if !g.saveSession(w, r, session, game) {
		return
	}

	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}
