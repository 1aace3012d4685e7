// Package adapter provides concrete engine.IOAdapter implementations: an
// interactive terminal, a batch file/reader, an in-memory buffer for
// tests, and (see websocket.go, built by cmd/tinybasicd) a network
// connection.
package adapter

import (
	"fmt"
	"io"
	"os"

	"github.com/danswartzendruber/liner"

	"github.com/nmiell/tinybasic/internal/config"
	"github.com/nmiell/tinybasic/internal/engine"
)

// TTY is a local interactive adapter. It reads whole lines through two
// liner.State instances -- one for the command prompt with history, one
// for INPUT without -- exactly as the teacher's setupLiners/readLine pair
// does, then serves them to the engine one byte at a time. Because
// liner.Prompt blocks until a full line is available, GetInputChar never
// returns Waiting: a TTY session is driven with Engine.RunUntilEndOfInput.
type TTY struct {
	commandLiner *liner.State
	inputLiner   *liner.State

	pending    []byte
	atEOF      bool
	sawEOF     bool
	terminated bool
}

// NewTTY creates a TTY adapter with its own command and input liners, set
// up in the teacher's raw-mode ordering (command liner first, input liner
// second, so closing them in reverse order restores cooked mode cleanly).
func NewTTY() *TTY {
	t := &TTY{
		commandLiner: liner.NewLiner(),
		inputLiner:   liner.NewLiner(),
	}
	t.commandLiner.SetMultiLineMode(false)
	t.inputLiner.SetMultiLineMode(true)
	return t
}

// Close restores the terminal to cooked mode. Liners must close in LIFO
// order relative to NewTTY's construction order.
func (t *TTY) Close() {
	t.inputLiner.Close()
	t.commandLiner.Close()
}

func (t *TTY) fill(l *liner.State, prompt string, history bool) {
	if len(t.pending) > 0 || t.sawEOF {
		return
	}
	line, err := l.Prompt(prompt)
	if err != nil {
		if err == io.EOF || err == liner.ErrPromptAborted {
			t.sawEOF = true
			return
		}
		t.sawEOF = true
		return
	}
	if history {
		l.AppendHistory(line)
	}
	t.pending = append([]byte(line), '\n')
}

// GetInputChar implements engine.IOAdapter. The caller is expected to have
// already called one of showCommandPrompt/showInputPrompt on this tick;
// TTY ignores those hints and drives liner's own prompt instead, since
// liner.Prompt renders the prompt itself.
func (t *TTY) GetInputChar() engine.InputCharResult {
	if len(t.pending) == 0 {
		return engine.CharEndOfStream()
	}
	b := t.pending[0]
	t.pending = t.pending[1:]
	return engine.CharValue(b)
}

func (t *TTY) Interactive() bool { return false } // liner echoes on its own

func (t *TTY) PutOutputChar(c byte) { os.Stdout.Write([]byte{c}) }

func (t *TTY) ShowCommandPrompt() { t.fill(t.commandLiner, config.CommandPrompt, true) }
func (t *TTY) ShowInputPrompt()   { t.fill(t.inputLiner, config.InputPrompt, false) }

func (t *TTY) ShowErrorMessage(text string)      { fmt.Fprintln(os.Stdout, text) }
func (t *TTY) ShowDebugTraceMessage(text string) { fmt.Fprintln(os.Stdout, text) }

func (t *TTY) Bye() { t.terminated = true }

// Terminated reports whether BYE has been signalled, so the host loop
// knows to stop calling Next.
func (t *TTY) Terminated() bool { return t.terminated }
