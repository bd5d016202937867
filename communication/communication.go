package communication

import (
	"tictac/game"
)

// ActRequest asks the agent service for a move.
type ActRequest struct {
	Board game.Board `json:"board"`
	Mark  game.Mark  `json:"mark"`
	Agent string     `json:"agent,omitempty"`
}

func (r ActRequest) State() game.State {
	return game.State{Board: r.Board, Mark: r.Mark}
}

type ActResponse struct {
	Action game.Action `json:"action"`
	Agent  string      `json:"agent"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
