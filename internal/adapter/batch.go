package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nmiell/tinybasic/internal/engine"
)

// Batch reads a whole program (and any INPUT data) from a plain
// io.Reader -- typically a redirected file, `tinybasic < script.bas`.
// Prompts are hints only; Batch never blocks waiting for a human, so a
// session driven by Batch always finishes with Engine.RunUntilEndOfInput.
type Batch struct {
	r          *bufio.Reader
	w          io.Writer
	echo       bool
	sawEOF     bool
	terminated bool
}

// NewBatch wraps r/w. echo controls whether input bytes are written back
// to w as they're consumed -- it is set from go-isatty on os.Stdout (not
// on w) so a batch run whose stdout is a real terminal still shows what
// it "typed", while one whose stdout is another process or a log file
// doesn't duplicate the program text.
func NewBatch(r io.Reader, w io.Writer) *Batch {
	return &Batch{
		r:    bufio.NewReader(r),
		w:    w,
		echo: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (b *Batch) GetInputChar() engine.InputCharResult {
	if b.sawEOF {
		return engine.CharEndOfStream()
	}
	c, err := b.r.ReadByte()
	if err != nil {
		b.sawEOF = true
		return engine.CharEndOfStream()
	}
	return engine.CharValue(c)
}

func (b *Batch) Interactive() bool { return b.echo }

func (b *Batch) PutOutputChar(c byte) { b.w.Write([]byte{c}) }

func (b *Batch) ShowCommandPrompt() {}
func (b *Batch) ShowInputPrompt()   {}

func (b *Batch) ShowErrorMessage(text string)      { fmt.Fprintln(b.w, text) }
func (b *Batch) ShowDebugTraceMessage(text string) { fmt.Fprintln(b.w, text) }

func (b *Batch) Bye() { b.terminated = true }

// Terminated reports whether BYE has been signalled.
func (b *Batch) Terminated() bool { return b.terminated }
