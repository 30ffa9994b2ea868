package app

import (
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.db, a.cookies, a.ws)
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	highscores := handlers.NewHighscores(a.logger, a.db)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /highscores", highscores.Get)

	a.router.HandleFunc("GET /auth/status", auth.Status)
	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
}
