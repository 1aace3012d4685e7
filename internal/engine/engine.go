package engine

import (
	"errors"
	"math/rand"

	"github.com/nmiell/tinybasic/internal/config"
	"github.com/nmiell/tinybasic/internal/lang"
)

// Errors produced by the engine itself (as opposed to expression
// evaluation errors defined in package lang). All of these are reported as
// runtime aborts per spec.md §7.
var (
	ErrNoSuchLine           = errors.New("no such line")
	ErrReturnStackEmpty     = errors.New("RETURN without GOSUB")
	ErrNegativeDimension    = errors.New("illegal array size")
	ErrUnsupported          = errors.New("not supported by this adapter")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)

// State is the interpreter's externally observable state, per spec.md
// §4.6.
type State int

const (
	StateIdle State = iota
	StateReadingStatement
	StateRunning
	StateReadingInput
	StateTerminal
)

// Engine holds everything the execution model in spec.md §4.5 owns: the
// program table, variable and array stores, the return stack, the trace
// flag, and the cursor used while running a stored program. It also plays
// the role of the driver state machine in §4.6 (see driver.go) and owns
// the IOAdapter used for synchronous output, exactly as the reference
// InterpreterEngine combines both roles in one type.
type Engine struct {
	io IOAdapter

	program   *Program
	variables map[lang.VariableName]lang.Number
	array     []lang.Number

	returnStack []lang.Number

	traceOn bool

	state State

	// currentLine is the line number of the statement to execute next
	// while Running. Spec.md speaks of a "programIndex" into the program
	// table; because this dialect stores exactly one statement per line,
	// that position is realized directly as a line number here rather
	// than as a separate abstract index (see DESIGN.md).
	currentLine lang.Number

	stateBeforeInput State
	pendingLvalues   []lang.Lvalue
	pendingFilled    int

	// inputCursor/inputCursorValid track the unconsumed remainder of the
	// current line of INPUT data, so that comma-separated values on one
	// line are drained before another line is read.
	inputCursor      lang.Position
	inputCursorValid bool

	// inputResumeNext/inputResumeHasNext capture where Running should
	// resume once a program-triggered INPUT completes: stepRunning looks
	// up the INPUT statement's successor before dispatching it, and once
	// Input() has switched to ReadingInput the driver stashes that
	// successor here, since currentLine still names the INPUT line.
	inputResumeNext    lang.Number
	inputResumeHasNext bool

	// lineBuf/lineStarted hold a line of input assembled byte-by-byte
	// across possibly many GetInputChar calls that return InputWaiting.
	lineBuf     []byte
	lineStarted bool

	hasReachedEndOfInput bool
	interrupted          bool

	rng *rand.Rand

	saved SaveLoader
}

// SaveLoader persists and restores program listings by name (SAVE/LOAD)
// and enumerates what has been saved (FILES). Implemented by package
// storage; declared here so the engine depends only on the capability it
// needs, not on storage's sqlite/file-system internals.
type SaveLoader interface {
	Save(name string, listing []string) error
	Load(name string) ([]string, error)
	List() ([]FileInfo, error)
}

// FileInfo describes one saved program for the FILES command.
type FileInfo struct {
	Name string
	Size int64
}

// New creates an Engine bound to the given adapter and persistence
// backend. seed is used to drive RND: pass a fixed seed for reproducible
// tests, or a time-derived seed for interactive use.
func New(io IOAdapter, saved SaveLoader, seed int64) *Engine {
	return &Engine{
		io:        io,
		program:   NewProgram(),
		variables: make(map[lang.VariableName]lang.Number),
		array:     make([]lang.Number, config.DefaultArrayLength),
		state:     StateIdle,
		rng:       rand.New(rand.NewSource(seed)),
		saved:     saved,
	}
}

// State returns the interpreter's current state.
func (e *Engine) State() State { return e.state }

// Program exposes the program table for hosts that need to enumerate it
// directly (e.g. a host-side renumber tool). The core never needs this
// itself.
func (e *Engine) Program() *Program { return e.program }

// ---- lang.EvalContext ----

func (e *Engine) Variable(name lang.VariableName) lang.Number {
	return e.variables[name]
}

func (e *Engine) ArrayElement(index lang.Number) (lang.Number, error) {
	if index < 0 || int(index) >= len(e.array) {
		return 0, lang.ErrSubscriptOutOfRange
	}
	return e.array[index], nil
}

func (e *Engine) Random(bound lang.Number) (lang.Number, error) {
	if bound <= 0 {
		return 0, lang.ErrRandomNonPositive
	}
	return e.rng.Int31n(bound), nil
}

// ---- lang.Engine ----

func (e *Engine) SetVariable(name lang.VariableName, value lang.Number) {
	e.variables[name] = value
}

func (e *Engine) SetArrayElement(index lang.Number, value lang.Number) error {
	if index < 0 || int(index) >= len(e.array) {
		return lang.ErrSubscriptOutOfRange
	}
	e.array[index] = value
	return nil
}

func (e *Engine) Dim(size lang.Number) error {
	if size < 0 {
		return ErrNegativeDimension
	}
	e.array = make([]lang.Number, size)
	return nil
}

// Print writes a PRINT statement's items to the adapter, honoring the
// separators recorded in items.ListText's canonical form (comma -> tab,
// semicolon -> nothing, trailing bare comma/semicolon -> no newline).
func (e *Engine) Print(items lang.PrintList) error {
	for _, entry := range items {
		text, err := entry.Item.Text(e)
		if err != nil {
			return err
		}
		e.writeOutput(text)
		switch entry.Sep {
		case lang.SepTab:
			e.writeOutput("\t")
		case lang.SepNewline:
			e.io.PutOutputChar('\n')
		case lang.SepEmpty:
		}
	}
	return nil
}

func (e *Engine) Goto(lineNumber lang.Number) error {
	if e.program.Lookup(lineNumber) == nil {
		return ErrNoSuchLine
	}
	e.currentLine = lineNumber
	return nil
}

func (e *Engine) Gosub(lineNumber lang.Number) error {
	if e.program.Lookup(lineNumber) == nil {
		return ErrNoSuchLine
	}
	next, ok := e.program.Next(e.currentLine)
	if !ok {
		next = 0
	}
	e.returnStack = append(e.returnStack, next)
	e.currentLine = lineNumber
	return nil
}

func (e *Engine) Return() error {
	if len(e.returnStack) == 0 {
		return ErrReturnStackEmpty
	}
	last := len(e.returnStack) - 1
	e.currentLine = e.returnStack[last]
	e.returnStack = e.returnStack[:last]
	return nil
}

func (e *Engine) Run() {
	e.variables = make(map[lang.VariableName]lang.Number)
	e.array = make([]lang.Number, config.DefaultArrayLength)
	e.returnStack = nil

	first, ok := e.program.First()
	if !ok {
		// Empty program: RUN is a silent no-op (spec.md §9 Open
		// Questions resolves this ambiguity toward silent no-op).
		return
	}
	e.currentLine = first
	e.state = StateRunning
}

func (e *Engine) End() {
	e.state = StateReadingStatement
}

func (e *Engine) List(low, high *lang.Number) error {
	var lines []ProgramLine
	switch {
	case low == nil:
		lines = e.program.Lines()
	case high == nil:
		lines = e.program.LinesInRange(*low, *low)
	default:
		lines = e.program.LinesInRange(*low, *high)
	}
	for _, ln := range lines {
		e.writeLine(listingText(ln))
	}
	return nil
}

func (e *Engine) Clear() {
	e.program.Clear()
	e.variables = make(map[lang.VariableName]lang.Number)
	e.array = make([]lang.Number, config.DefaultArrayLength)
	e.returnStack = nil
}

func (e *Engine) Tron()  { e.traceOn = true }
func (e *Engine) Troff() { e.traceOn = false }

func (e *Engine) Bye() {
	e.io.Bye()
	e.state = StateTerminal
}

func (e *Engine) Help() {
	for _, line := range helpText {
		e.writeLine(line)
	}
}

// ExecuteNested runs s in the current context, used by IF's THEN clause.
func (e *Engine) ExecuteNested(s lang.Statement) error {
	return e.dispatch(s)
}

func (e *Engine) dispatch(s lang.Statement) error {
	return s.Execute(e)
}

// ---- output helpers ----

func (e *Engine) writeOutput(text string) {
	for i := 0; i < len(text); i++ {
		e.io.PutOutputChar(text[i])
	}
}

func (e *Engine) writeLine(text string) {
	e.writeOutput(text)
	e.io.PutOutputChar('\n')
}

// listingText renders one program-table entry in canonical LIST format:
// a line number, a single space, then the statement's own ListText.
func listingText(ln ProgramLine) string {
	return lang.NumberToListText(ln.LineNumber) + " " + ln.Statement.ListText()
}
