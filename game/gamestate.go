package game

import (
	"errors"
	"fmt"

	"tictac/utils"
)

var ErrIllegalAction = errors.New("illegal action")

// Env is a tic-tac-toe environment. The zero value is not usable, call NewEnv.
type Env struct {
	board     Board
	mark      Mark
	startMark Mark
	done      bool
}

// NewEnv returns a reset environment with O to move.
func NewEnv() *Env {
	e := &Env{startMark: O}
	e.Reset()
	return e
}

// SetStartMark sets the mark moving first after the next Reset.
func (e *Env) SetStartMark(mark Mark) {
	e.startMark = mark
}

// Reset clears the board and returns the initial observation.
func (e *Env) Reset() State {
	e.board = Board{}
	e.mark = e.startMark
	e.done = false
	return e.State()
}

// Load replaces the environment's position, used to resume a game from an
// observed state.
func (e *Env) Load(state State) {
	e.board = state.Board
	e.mark = state.Mark
	e.done = CheckGameStatus(state.Board).Terminal()
}

func (e *Env) State() State {
	return State{Board: e.board, Mark: e.mark}
}

func (e *Env) Mark() Mark {
	return e.mark
}

func (e *Env) Done() bool {
	return e.done
}

func (e *Env) AvailableActions() []Action {
	return LegalActions(e.board)
}

func (e *Env) Step(action Action) (State, float64, bool, error) {
	if !action.Valid() {
		return e.State(), NoReward, e.done, fmt.Errorf("cell %d out of range: %w", action, ErrIllegalAction)
	}
	if e.done {
		return e.State(), NoReward, true, nil
	}
	if utils.FindIndex(e.AvailableActions(), action) < 0 {
		return e.State(), NoReward, false, fmt.Errorf("cell %d already taken: %w", action, ErrIllegalAction)
	}

	reward := NoReward
	e.board[action] = ToCode(e.mark)
	status := CheckGameStatus(e.board)
	if status.Terminal() {
		e.done = true
		if _, won := status.Winner(); won {
			if e.mark == O {
				reward = OReward
			} else {
				reward = XReward
			}
		}
	}
	e.mark = NextMark(e.mark)
	return e.State(), reward, e.done, nil
}

func (e *Env) Copy() Environment {
	c := *e
	return &c
}

func (e *Env) AfterActionState(state State, action Action) State {
	return AfterActionState(state, action)
}

func (e *Env) CheckGameStatus(board Board) Status {
	return CheckGameStatus(board)
}
