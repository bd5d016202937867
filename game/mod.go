package game

// Environment is the game a searcher plays against. Implementations are
// mutable: Step advances the internal state, Copy must return an
// environment that shares no memory with the receiver.
type Environment interface {
	// AvailableActions lists the legal actions from the current state
	AvailableActions() []Action
	// Step applies action to the current state and reports the new state,
	// the environment's own reward signal and whether the game is over
	Step(action Action) (state State, reward float64, done bool, err error)
	Done() bool
	Copy() Environment
	// AfterActionState previews action on state without touching the environment
	AfterActionState(state State, action Action) State
	CheckGameStatus(board Board) Status
}

// Mark identifies a player by the symbol it places on the board.
type Mark string

const (
	O Mark = "O"
	X Mark = "X"
)

// Code is the numeric content of a board cell.
type Code int

const (
	Empty Code = iota
	OCode
	XCode
)

// Status is the result of CheckGameStatus: InProgress, Tie or the Code of the winner.
type Status int

const (
	InProgress Status = -1
	Tie        Status = 0
)

// Rewards returned by Env.Step when a line is completed.
const (
	OReward  = 1.0
	XReward  = -1.0
	NoReward = 0.0
)
