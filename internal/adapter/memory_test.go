package adapter

import (
	"testing"

	"github.com/nmiell/tinybasic/internal/engine"
)

func TestMemoryServesQueuedBytesThenWaits(t *testing.T) {
	m := NewMemory()
	m.Feed("AB")

	for _, want := range []byte{'A', 'B'} {
		r := m.GetInputChar()
		if r.Kind != engine.InputValue {
			t.Fatalf("GetInputChar() kind = %v, want InputValue", r.Kind)
		}
		if got := r.Value; got != want {
			t.Fatalf("GetInputChar() = %q, want %q", got, want)
		}
	}

	if r := m.GetInputChar(); r.Kind != engine.InputWaiting {
		t.Fatalf("GetInputChar() after drain = %v, want InputWaiting", r.Kind)
	}
}

func TestMemoryReportsEndOfStreamAfterFeedEOF(t *testing.T) {
	m := NewMemory()
	m.Feed("X")
	m.FeedEOF()

	if r := m.GetInputChar(); r.Kind != engine.InputValue || r.Value != 'X' {
		t.Fatalf("GetInputChar() = %v, want value X", r)
	}
	if r := m.GetInputChar(); r.Kind != engine.InputEndOfStream {
		t.Fatalf("GetInputChar() after eof = %v, want InputEndOfStream", r.Kind)
	}
}

func TestMemoryWaitAfterEachByte(t *testing.T) {
	m := NewMemory()
	m.Feed("A")
	m.WaitAfterEachByte = true

	if r := m.GetInputChar(); r.Kind != engine.InputWaiting {
		t.Fatalf("first GetInputChar() = %v, want InputWaiting", r.Kind)
	}
	r := m.GetInputChar()
	if r.Kind != engine.InputValue || r.Value != 'A' {
		t.Fatalf("second GetInputChar() = %v, want value A", r)
	}
}

func TestMemoryOutputAndErrorsAccumulate(t *testing.T) {
	m := NewMemory()
	m.PutOutputChar('H')
	m.PutOutputChar('I')
	m.ShowErrorMessage("boom")
	m.ShowDebugTraceMessage("[10]")
	m.Bye()

	if got := m.OutputString(); got != "HI" {
		t.Errorf("OutputString() = %q, want %q", got, "HI")
	}
	if len(m.Errors) != 1 || m.Errors[0] != "boom" {
		t.Errorf("Errors = %v, want [boom]", m.Errors)
	}
	if len(m.Traces) != 1 || m.Traces[0] != "[10]" {
		t.Errorf("Traces = %v, want [[10]]", m.Traces)
	}
	if !m.ByeCalled {
		t.Error("ByeCalled = false, want true after Bye()")
	}
}

func TestMemoryClipboardRoundTrip(t *testing.T) {
	m := NewMemoryWithClipboard()
	if err := m.ClipboardWrite([]byte("10 PRINT 1")); err != nil {
		t.Fatalf("ClipboardWrite: %v", err)
	}
	data, err := m.ClipboardRead()
	if err != nil {
		t.Fatalf("ClipboardRead: %v", err)
	}
	if string(data) != "10 PRINT 1" {
		t.Errorf("ClipboardRead() = %q, want %q", data, "10 PRINT 1")
	}
}
