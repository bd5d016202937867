package game

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, s string) Board {
	t.Helper()
	b, ok := ParseBoard(s)
	require.True(t, ok, "board %q should parse", s)
	return b
}

func TestCheckGameStatus(t *testing.T) {
	t.Run("empty board is in progress", func(t *testing.T) {
		require.Equal(t, InProgress, CheckGameStatus(Board{}))
	})

	t.Run("row, column and diagonal wins", func(t *testing.T) {
		require.Equal(t, Status(XCode), CheckGameStatus(mustBoard(t, "XXXOO....")))
		require.Equal(t, Status(OCode), CheckGameStatus(mustBoard(t, "OX.OX.O..")))
		require.Equal(t, Status(XCode), CheckGameStatus(mustBoard(t, "XO.OX...X")))
		require.Equal(t, Status(OCode), CheckGameStatus(mustBoard(t, "XXO.O.O..")))
	})

	t.Run("full board without a line is a tie", func(t *testing.T) {
		require.Equal(t, Tie, CheckGameStatus(mustBoard(t, "XOXXOOOXX")))
	})

	t.Run("O is reported first when both marks hold a line", func(t *testing.T) {
		require.Equal(t, Status(OCode), CheckGameStatus(mustBoard(t, "OOOXXX...")))
	})
}

func TestStatusWinner(t *testing.T) {
	mark, ok := Status(XCode).Winner()
	require.True(t, ok)
	require.Equal(t, X, mark)

	_, ok = Tie.Winner()
	require.False(t, ok, "Tie has no winner")
	_, ok = InProgress.Winner()
	require.False(t, ok, "Unfinished game has no winner")
}

func TestAfterActionState(t *testing.T) {
	state := State{Board: mustBoard(t, "X........"), Mark: O}

	got := AfterActionState(state, 4)

	require.Equal(t, mustBoard(t, "X...O...."), got.Board, "Should place the mover's code")
	require.Equal(t, X, got.Mark, "Should pass the turn")
	require.Equal(t, mustBoard(t, "X........"), state.Board, "Should not modify the input state")
}

func TestLegalActions(t *testing.T) {
	require.Equal(t, []Action{1, 2, 6, 8}, LegalActions(mustBoard(t, "X..OXO.X.")))
	require.Empty(t, LegalActions(mustBoard(t, "XOXXOOOXX")))
}

func TestParseBoard(t *testing.T) {
	_, ok := ParseBoard("XO")
	require.False(t, ok, "Should reject short boards")
	_, ok = ParseBoard("XOZ......")
	require.False(t, ok, "Should reject unknown symbols")

	b := mustBoard(t, "xo-  ....")
	require.Equal(t, "XO.......", b.String())
}

func TestMarks(t *testing.T) {
	require.Equal(t, X, NextMark(O))
	require.Equal(t, O, NextMark(X))
	require.Equal(t, OCode, ToCode(O))
	require.Equal(t, XCode, ToCode(X))
	require.Equal(t, O, ToMark(OCode))
	require.Equal(t, Mark(""), ToMark(Empty))

	m, ok := ParseMark("x")
	require.True(t, ok)
	require.Equal(t, X, m)
	_, ok = ParseMark("Z")
	require.False(t, ok)
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, termenv.WithProfile(termenv.Ascii))

	require.NoError(t, r.Render(mustBoard(t, "XO..X...O")))

	expected := " X | O |  \n" +
		"---+---+---\n" +
		"   | X |  \n" +
		"---+---+---\n" +
		"   |   | O\n\n"
	require.Equal(t, expected, buf.String())

	buf.Reset()
	require.NoError(t, r.ShowResult(XReward))
	require.Equal(t, "Winner is 'X'!\n", buf.String())
}
