package game

var lines = [...][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// CheckGameStatus returns the Code of the player holding a full line (O is
// checked first), InProgress while any cell is empty, and Tie otherwise.
func CheckGameStatus(board Board) Status {
	for _, code := range []Code{OCode, XCode} {
		for _, line := range lines {
			if board[line[0]] == code && board[line[1]] == code && board[line[2]] == code {
				return Status(code)
			}
		}
	}
	for _, c := range board {
		if c == Empty {
			return InProgress
		}
	}
	return Tie
}

// Winner returns the mark of the winning player, ok is false for ties and
// unfinished games.
func (s Status) Winner() (Mark, bool) {
	if s == Status(OCode) || s == Status(XCode) {
		return ToMark(Code(s)), true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s != InProgress
}

func ToCode(mark Mark) Code {
	if mark == O {
		return OCode
	}
	return XCode
}

func ToMark(code Code) Mark {
	switch code {
	case OCode:
		return O
	case XCode:
		return X
	}
	return ""
}

func NextMark(mark Mark) Mark {
	if mark == O {
		return X
	}
	return O
}

// ParseMark accepts "O" or "X" in either case.
func ParseMark(s string) (Mark, bool) {
	switch s {
	case "O", "o":
		return O, true
	case "X", "x":
		return X, true
	}
	return "", false
}
