package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/repository"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/sudoku"
)

type Highscores struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewHighscores(logger *slog.Logger, db *pgxpool.Pool) *Highscores {
	return &Highscores{
		logger: logger,
		repo:   repository.New(db),
	}
}

type HighscoreFilterDTO struct {
	Username   *string `schema:"username"`
	Difficulty *string `schema:"difficulty"`
}

func (h Highscores) Get(w http.ResponseWriter, r *http.Request) {
	var dto HighscoreFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	if dto.Difficulty != nil {
		if _, err := sudoku.ParseDifficulty(*dto.Difficulty); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
	}

	scores, err := h.repo.GetHighscores(r.Context(), repository.HighscoreFilter{
		Username:   dto.Username,
		Difficulty: dto.Difficulty,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, scores)
}
