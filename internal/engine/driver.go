package engine

import (
	"fmt"

	"github.com/nmiell/tinybasic/internal/config"
	"github.com/nmiell/tinybasic/internal/diag"
	"github.com/nmiell/tinybasic/internal/lang"
)

// lineOutcome is the result of one attempt to assemble a complete input
// line from the adapter.
type lineOutcome int

const (
	lineWaiting lineOutcome = iota
	lineReady
	lineEndOfStream
	lineTooLong
)

// readLine assembles one line of input per the wire contract in spec.md
// §6: bytes accumulate until LF; HT becomes a space; other control bytes
// (< 0x20) are discarded; a lone CR is swallowed rather than treated as a
// terminator. A line that grows past config.MaxLineLength stops
// accumulating: the rest of it up to its LF is dropped and the whole line
// is reported as lineTooLong, never parsed. showPrompt is
// called exactly once, the first time this line is attempted, so a
// Waiting result never repeats the prompt.
func (e *Engine) readLine(showPrompt func()) (lang.InputLine, lineOutcome) {
	if !e.lineStarted {
		showPrompt()
		e.lineStarted = true
	}
	for {
		r := e.io.GetInputChar()
		switch r.Kind {
		case InputWaiting:
			return nil, lineWaiting
		case InputEndOfStream:
			e.lineStarted = false
			e.lineBuf = nil
			return nil, lineEndOfStream
		default:
			b := r.Value
			if e.io.Interactive() {
				e.io.PutOutputChar(b)
			}
			switch {
			case b == '\n':
				line := e.lineBuf
				e.lineBuf = nil
				e.lineStarted = false
				if len(line) > config.MaxLineLength {
					return nil, lineTooLong
				}
				return lang.InputLine(line), lineReady
			case b < 0x20 && b != '\t':
				// CR and other control bytes: swallowed, not a terminator.
			default:
				if len(e.lineBuf) > config.MaxLineLength {
					// Already over the cap: drop bytes until the LF.
					continue
				}
				if b == '\t' {
					b = ' '
				}
				e.lineBuf = append(e.lineBuf, b)
			}
		}
	}
}

// Next drives the interpreter forward by one tick, per the state table in
// spec.md §4.6. It returns immediately if the adapter has no byte ready
// (InputWaiting) or if input has already been exhausted at the command
// prompt.
func (e *Engine) Next() {
	if e.hasReachedEndOfInput && e.state == StateReadingStatement {
		return
	}
	switch e.state {
	case StateIdle:
		e.state = StateReadingStatement
	case StateReadingStatement:
		e.stepReadingStatement()
	case StateRunning:
		e.stepRunning()
	case StateReadingInput:
		e.stepReadingInput()
	case StateTerminal:
	}
}

// RunUntilEndOfInput loops Next until end-of-input or BYE. It is only
// valid for an adapter that never returns Waiting (spec.md §4.6): a
// Waiting-capable adapter would spin here forever.
func (e *Engine) RunUntilEndOfInput() {
	for !e.hasReachedEndOfInput && e.state != StateTerminal {
		e.Next()
	}
}

func (e *Engine) reportError(err error) {
	e.io.ShowErrorMessage(err.Error())
}

func (e *Engine) stepReadingStatement() {
	line, outcome := e.readLine(e.io.ShowCommandPrompt)
	switch outcome {
	case lineWaiting:
		return
	case lineEndOfStream:
		e.hasReachedEndOfInput = true
		return
	case lineTooLong:
		e.io.ShowErrorMessage("?LINE TOO LONG")
		return
	}
	e.handleStatementLine(line)
}

func (e *Engine) handleStatementLine(raw lang.InputLine) {
	parsed := lang.ParseLine(raw)
	switch parsed.Kind {
	case lang.LineEmpty:
		return
	case lang.LineEmptyNumbered:
		e.program.Delete(parsed.LineNumber)
	case lang.LineNumbered:
		e.program.Insert(parsed.LineNumber, parsed.Statement)
	case lang.LineImmediate:
		if err := e.dispatch(parsed.Statement); err != nil {
			e.reportError(err)
		}
	default: // lang.LineError
		e.io.ShowErrorMessage("?SYNTAX ERROR")
	}
}

func (e *Engine) stepRunning() {
	if e.interrupted {
		e.interrupted = false
		e.state = StateReadingStatement
		return
	}

	stmt := e.program.Lookup(e.currentLine)
	if stmt == nil {
		e.state = StateReadingStatement
		return
	}
	if e.traceOn {
		e.io.ShowDebugTraceMessage(fmt.Sprintf("[%d]", e.currentLine))
		diag.Dump(stmt)
	}

	prevLine := e.currentLine
	next, hasNext := e.program.Next(e.currentLine)

	if err := e.dispatch(stmt); err != nil {
		e.reportError(err)
		e.state = StateReadingStatement
		return
	}

	if e.state != StateRunning {
		// END, INPUT, BYE, or a nested statement already changed state.
		// A suspend into ReadingInput needs to know where Running should
		// pick back up once the values are read.
		if e.state == StateReadingInput {
			e.inputResumeNext, e.inputResumeHasNext = next, hasNext
		}
		return
	}

	if e.currentLine != prevLine {
		// GOTO/GOSUB/RETURN already repositioned the cursor.
		return
	}
	if !hasNext {
		e.state = StateReadingStatement
		return
	}
	e.currentLine = next
}

// Interrupt requests that a running program stop at its next step and
// return to ReadingStatement, mirroring a host's SIGINT handler.
func (e *Engine) Interrupt() {
	e.interrupted = true
}

// Input begins an INPUT statement's suspension protocol (spec.md §4.5):
// remember the lvalues to fill and the state to resume, then let the
// driver's ReadingInput ticks do the actual reading.
func (e *Engine) Input(lvalues []lang.Lvalue) error {
	e.pendingLvalues = lvalues
	e.pendingFilled = 0
	e.inputCursorValid = false
	e.stateBeforeInput = e.state
	e.state = StateReadingInput
	return nil
}

func (e *Engine) stepReadingInput() {
	for e.pendingFilled < len(e.pendingLvalues) {
		if !e.inputCursorValid {
			line, outcome := e.readLine(e.io.ShowInputPrompt)
			switch outcome {
			case lineWaiting:
				return
			case lineEndOfStream:
				e.abortInput(ErrUnexpectedEndOfInput)
				return
			case lineTooLong:
				e.io.ShowErrorMessage("?LINE TOO LONG")
				e.inputCursorValid = false
				continue
			}
			e.inputCursor = lang.NewPosition(line)
			e.inputCursorValid = true
		}

		cur := e.inputCursor.AfterSpaces()
		if cur.IsRemainingLineEmpty() {
			e.inputCursorValid = false
			continue
		}

		result := lang.ParseInputValue(cur, e)
		if !result.WasParsed() {
			e.io.ShowErrorMessage("?REDO")
			e.inputCursorValid = false
			continue
		}

		lv := e.pendingLvalues[e.pendingFilled]
		if err := lv.Set(e, result.Value()); err != nil {
			e.abortInput(err)
			return
		}
		e.pendingFilled++

		rest := result.NextPos().AfterSpaces()
		if !rest.IsRemainingLineEmpty() && rest.At() == ',' {
			e.inputCursor = rest.Next()
		} else {
			e.inputCursorValid = false
		}
	}

	e.finishInput()
}

func (e *Engine) abortInput(err error) {
	e.reportError(err)
	e.pendingLvalues = nil
	e.pendingFilled = 0
	e.inputCursorValid = false
	e.state = StateReadingStatement
}

func (e *Engine) finishInput() {
	e.pendingLvalues = nil
	e.pendingFilled = 0
	e.state = e.stateBeforeInput
	if e.state == StateRunning {
		if !e.inputResumeHasNext {
			e.state = StateReadingStatement
			return
		}
		e.currentLine = e.inputResumeNext
	}
}
