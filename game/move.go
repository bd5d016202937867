package game

import "fmt"

// Action is the index of the cell to mark, counting row-major from the top left.
type Action int

// NoAction is the action of a search root: no move led to it.
const NoAction Action = -1

func (a Action) Valid() bool {
	return a >= 0 && a < NumCells
}

func (a Action) String() string {
	if !a.Valid() {
		return "none"
	}
	return fmt.Sprintf("%d", int(a))
}
