package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Renderer draws boards to a terminal, colouring marks when the output supports it.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Render writes board as a 3x3 grid followed by a blank line.
func (r *Renderer) Render(board Board) error {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = r.cell(board[row*3+col])
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}
	sb.WriteString("\n")
	_, err := io.WriteString(r.out, sb.String())
	return err
}

func (r *Renderer) cell(code Code) string {
	switch code {
	case OCode:
		return r.out.String(string(O)).Foreground(r.out.Color("4")).Bold().String()
	case XCode:
		return r.out.String(string(X)).Foreground(r.out.Color("1")).Bold().String()
	}
	return " "
}

// ShowTurn writes whose turn it is.
func (r *Renderer) ShowTurn(mark Mark) error {
	_, err := fmt.Fprintf(r.out, "%s's turn.\n", mark)
	return err
}

// ShowResult writes the outcome of a finished game given the final step reward.
func (r *Renderer) ShowResult(reward float64) error {
	var msg string
	switch reward {
	case OReward:
		msg = "Winner is 'O'!"
	case XReward:
		msg = "Winner is 'X'!"
	default:
		msg = "==== Finished: Draw ===="
	}
	_, err := fmt.Fprintln(r.out, r.out.String(msg).Bold().String())
	return err
}
