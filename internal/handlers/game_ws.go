package handlers

import (
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/sudoku"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

var commandNargs = map[string]int{
	"s": 3, // set row col value
	"c": 2, // clear row col
	"f": 0, // forfeit
	"b": 0, // no-op, just echo the board back
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		out[i] = n
	}
	return out, nil
}

func parseCommand(g *sudoku.GameState, c string) error {
	parts := strings.Split(c, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("invalid number of arguments")
	}

	args, err := parseInts(parts[1:])
	if err != nil {
		return err
	}

	switch parts[0] {
	case "s":
		if !g.ValidatePosition(args[0], args[1]) {
			return fmt.Errorf("invalid cell coordinates")
		}
		return g.SetCell(args[0], args[1], uint8(args[2]))
	case "c":
		if !g.ValidatePosition(args[0], args[1]) {
			return fmt.Errorf("invalid cell coordinates")
		}
		return g.ClearCell(args[0], args[1])
	case "f":
		g.Forfeit()
		return nil
	case "b":
		return nil
	}
	return fmt.Errorf("invalid command")
}

// ConnectWS upgrades the request and processes newline-separated game
// commands, answering each message with the refreshed session payload.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		g.logger.Debug(fmt.Sprintf("\t> %s", text))

		for _, cmd := range iterBySep(text, "\n") {
			if err := parseCommand(game, cmd); err != nil {
				if werr := c.WriteJSON(wrapError(err)); werr != nil {
					g.logger.Error("unable to send ws error", slog.Any("error", werr))
					return
				}
				continue
			}
		}

		if err := g.persistSession(r.Context(), session, game); err != nil {
			g.logger.Error("unable to save session", slog.Any("error", err))
			return
		}

		if err := c.WriteJSON(sessionDTO(session, game)); err != nil {
			g.logger.Error("unable to send ws payload", slog.Any("error", err))
			return
		}
	}
}
