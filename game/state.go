package game

import "strings"

const NumCells = 9

// Board holds one Code per cell, row-major.
type Board [NumCells]Code

// State is what a player observes before moving: the board and whose turn it is.
type State struct {
	Board Board `json:"board"`
	Mark  Mark  `json:"mark"`
}

// NewState returns an empty board with mark to move.
func NewState(mark Mark) State {
	return State{Mark: mark}
}

// AfterActionState places the mover's code on action's cell and passes the turn.
// The input state is not modified.
func AfterActionState(state State, action Action) State {
	board := state.Board
	board[action] = ToCode(state.Mark)
	return State{Board: board, Mark: NextMark(state.Mark)}
}

// LegalActions returns the empty cells of board in ascending order.
func LegalActions(board Board) []Action {
	actions := make([]Action, 0, NumCells)
	for i, c := range board {
		if c == Empty {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

// ParseBoard reads a 9 character board such as "XO.X....O", where '.',
// '-' or ' ' mark empty cells.
func ParseBoard(s string) (Board, bool) {
	var b Board
	if len(s) != NumCells {
		return b, false
	}
	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'O':
			b[i] = OCode
		case 'X':
			b[i] = XCode
		case '.', '-', ' ':
			b[i] = Empty
		default:
			return b, false
		}
	}
	return b, true
}

func (b Board) String() string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case OCode:
			sb.WriteByte('O')
		case XCode:
			sb.WriteByte('X')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
