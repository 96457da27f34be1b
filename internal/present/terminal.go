package present

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Terminal commands. Anything else is submitted as an answer.
const (
	CmdNew  = "/new"
	CmdList = "/list"
	CmdQuit = "/quit"
)

// Terminal plays rounds over a line-oriented reader and writer.
type Terminal struct {
	game *game.Game
	in   *bufio.Scanner
	out  io.Writer
}

// NewTerminal returns a Terminal reading answers from in and writing to out.
func NewTerminal(g *game.Game, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{game: g, in: bufio.NewScanner(in), out: out}
}

// Run starts a round and processes lines until EOF, /quit, or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	r := t.game.NewRound()
	t.showRound(r.State())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(t.out, "> ")
		if !t.in.Scan() {
			fmt.Fprintln(t.out)
			return t.in.Err()
		}
		line := strings.TrimSuffix(t.in.Text(), "\r")

		switch strings.TrimSpace(line) {
		case "":
			// nothing to submit
			continue
		case CmdQuit:
			return nil
		case CmdNew:
			t.showRound(t.game.Reset(r))
			continue
		case CmdList:
			t.showAnswers(r.State())
			continue
		}

		out, st := t.game.Submit(ctx, r, line)
		if out.Accepted {
			fmt.Fprintf(t.out, "+ %s\n", st.Answers[0])
			continue
		}
		msg := For(out, st.BaseWord)
		fmt.Fprintf(t.out, "! %s %s\n", msg.Title, msg.Body)
	}
}

func (t *Terminal) showRound(st game.State) {
	fmt.Fprintf(t.out, "Base word: %s\n", st.BaseWord)
	fmt.Fprintf(t.out, "Type words made from its letters (%s new word, %s answers, %s exit).\n", CmdNew, CmdList, CmdQuit)
}

func (t *Terminal) showAnswers(st game.State) {
	if len(st.Answers) == 0 {
		fmt.Fprintln(t.out, "(no answers yet)")
		return
	}
	for _, a := range st.Answers {
		fmt.Fprintf(t.out, "  %s\n", a)
	}
}
