package adapter

import (
	"github.com/nmiell/tinybasic/internal/engine"
)

// Memory is an in-memory IOAdapter for tests. Input is queued with Feed;
// Output, Errors, and Traces accumulate for assertions. WaitAfterEachByte,
// when set, makes GetInputChar return Waiting once before every byte it
// serves (the first one included), letting a test exercise Engine.Next's suspend/resume behaviour
// one byte at a time instead of running straight through.
type Memory struct {
	input []byte
	pos   int
	eof   bool

	WaitAfterEachByte bool
	waitedSinceLast   bool

	Output     []byte
	Errors     []string
	Traces     []string
	ByeCalled  bool
	Prompts    int
	InputCount int
}

// NewMemory returns an adapter with no queued input.
func NewMemory() *Memory {
	return &Memory{}
}

// Feed appends text to the input queue.
func (m *Memory) Feed(text string) { m.input = append(m.input, text...) }

// FeedEOF marks the input queue as exhausted once everything fed so far
// has been consumed.
func (m *Memory) FeedEOF() { m.eof = true }

func (m *Memory) GetInputChar() engine.InputCharResult {
	if m.pos >= len(m.input) {
		if m.eof {
			return engine.CharEndOfStream()
		}
		return engine.CharWaiting()
	}
	if m.WaitAfterEachByte && !m.waitedSinceLast {
		m.waitedSinceLast = true
		return engine.CharWaiting()
	}
	m.waitedSinceLast = false
	b := m.input[m.pos]
	m.pos++
	return engine.CharValue(b)
}

func (m *Memory) Interactive() bool { return false }

func (m *Memory) PutOutputChar(c byte) { m.Output = append(m.Output, c) }

func (m *Memory) ShowCommandPrompt() { m.Prompts++ }
func (m *Memory) ShowInputPrompt()   { m.InputCount++ }

func (m *Memory) ShowErrorMessage(text string)      { m.Errors = append(m.Errors, text) }
func (m *Memory) ShowDebugTraceMessage(text string) { m.Traces = append(m.Traces, text) }

func (m *Memory) Bye() { m.ByeCalled = true }

// OutputString returns everything written so far as a string, for test
// assertions.
func (m *Memory) OutputString() string { return string(m.Output) }

type clipboard struct{ data []byte }

// MemoryClipboard adds ClipboardWrite/ClipboardRead to Memory so tests can
// exercise CLIPSAVE/CLIPLOAD without a real OS clipboard.
type MemoryClipboard struct {
	*Memory
	clipboard
}

// NewMemoryWithClipboard returns a Memory adapter that also implements
// engine.ClipboardAdapter.
func NewMemoryWithClipboard() *MemoryClipboard {
	return &MemoryClipboard{Memory: NewMemory()}
}

func (m *MemoryClipboard) ClipboardWrite(data []byte) error {
	m.clipboard.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryClipboard) ClipboardRead() ([]byte, error) {
	return m.clipboard.data, nil
}
