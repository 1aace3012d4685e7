package engine_test

import (
	"strings"
	"testing"

	"github.com/nmiell/tinybasic/internal/adapter"
	"github.com/nmiell/tinybasic/internal/config"
	"github.com/nmiell/tinybasic/internal/engine"
)

func run(t *testing.T, program string) *adapter.Memory {
	t.Helper()
	m := adapter.NewMemory()
	m.Feed(program)
	m.FeedEOF()
	eng := engine.New(m, nil, 1)
	eng.RunUntilEndOfInput()
	return m
}

func TestHelloWorld(t *testing.T) {
	m := run(t, "10 PRINT \"HELLO\"\nRUN\n")
	if !strings.Contains(m.OutputString(), "HELLO") {
		t.Fatalf("output = %q, want it to contain HELLO", m.OutputString())
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	m := run(t, "PRINT 2 + 3 * 4\n")
	if !strings.Contains(m.OutputString(), "14") {
		t.Fatalf("output = %q, want it to contain 14", m.OutputString())
	}
}

func TestGosubReturn(t *testing.T) {
	prog := "10 GOSUB 100\n20 PRINT \"DONE\"\n30 END\n100 PRINT \"SUB\"\n110 RETURN\nRUN\n"
	m := run(t, prog)
	out := m.OutputString()
	if !strings.Contains(out, "SUB") || !strings.Contains(out, "DONE") {
		t.Fatalf("output = %q, want it to contain SUB then DONE", out)
	}
	if strings.Index(out, "SUB") > strings.Index(out, "DONE") {
		t.Fatalf("output = %q, want SUB before DONE", out)
	}
}

func TestReturnWithoutGosubAborts(t *testing.T) {
	m := run(t, "10 RETURN\nRUN\n")
	if len(m.Errors) == 0 {
		t.Fatal("expected a runtime-abort error to be reported")
	}
}

func TestArraySubscriptOutOfRangeAborts(t *testing.T) {
	m := run(t, "10 DIM @(3)\n20 LET @(10) = 1\nRUN\n")
	if len(m.Errors) == 0 {
		t.Fatal("expected a subscript-out-of-range error to be reported")
	}
}

func TestDivisionByZeroAborts(t *testing.T) {
	m := run(t, "10 PRINT 1/0\nRUN\n")
	if len(m.Errors) == 0 {
		t.Fatal("expected a division-by-zero error to be reported")
	}
}

func TestGotoUnknownLineAborts(t *testing.T) {
	m := run(t, "10 GOTO 999\nRUN\n")
	if len(m.Errors) == 0 {
		t.Fatal("expected a no-such-line error to be reported")
	}
}

func TestInputAssignsTypedValue(t *testing.T) {
	m := adapter.NewMemory()
	m.Feed("10 INPUT A\n20 PRINT A + 1\nRUN\n")
	m.Feed("41\n")
	m.FeedEOF()
	eng := engine.New(m, nil, 1)
	eng.RunUntilEndOfInput()
	if !strings.Contains(m.OutputString(), "42") {
		t.Fatalf("output = %q, want it to contain 42", m.OutputString())
	}
}

func TestInputAcceptsCommaSeparatedValues(t *testing.T) {
	m := adapter.NewMemory()
	m.Feed("10 INPUT A,B\n20 PRINT A+B\nRUN\n")
	m.Feed("3,4\n")
	m.FeedEOF()
	eng := engine.New(m, nil, 1)
	eng.RunUntilEndOfInput()
	if !strings.Contains(m.OutputString(), "7") {
		t.Fatalf("output = %q, want it to contain 7", m.OutputString())
	}
}

func TestProgramTableStaysSorted(t *testing.T) {
	prog := "30 PRINT \"C\"\n10 PRINT \"A\"\n20 PRINT \"B\"\nLIST\n"
	m := run(t, prog)
	out := m.OutputString()
	ia, ib, ic := strings.Index(out, "A"), strings.Index(out, "B"), strings.Index(out, "C")
	if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
		t.Fatalf("LIST output not in ascending line-number order: %q", out)
	}
}

func TestLineReplacementAndDeletion(t *testing.T) {
	prog := "10 PRINT \"ONE\"\n10 PRINT \"TWO\"\n20 PRINT \"THREE\"\n20\nRUN\n"
	m := run(t, prog)
	out := m.OutputString()
	if strings.Contains(out, "ONE") || strings.Contains(out, "THREE") {
		t.Fatalf("output = %q, replaced/deleted lines should not have run", out)
	}
	if !strings.Contains(out, "TWO") {
		t.Fatalf("output = %q, want it to contain TWO", out)
	}
}

func TestRndRejectsNonPositiveBound(t *testing.T) {
	m := run(t, "10 PRINT RND(0)\nRUN\n")
	if len(m.Errors) == 0 {
		t.Fatal("expected an RND-argument error to be reported")
	}
}

func TestOverlongLineIsRejectedNotAccumulated(t *testing.T) {
	tooLong := strings.Repeat("9", config.MaxLineLength+10)
	m := run(t, "PRINT "+tooLong+"\nPRINT 1\n")
	if !strings.Contains(m.OutputString(), "1") {
		t.Fatalf("output = %q, want the well-formed PRINT 1 to still run", m.OutputString())
	}
	if len(m.Errors) == 0 {
		t.Fatal("expected an over-long-line error to be reported")
	}
}

func TestHelpAndTraceDoNotAbort(t *testing.T) {
	m := run(t, "HELP\nTRON\n10 PRINT 1\nRUN\n")
	if len(m.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", m.Errors)
	}
	if len(m.Traces) == 0 {
		t.Fatal("expected a trace message with TRON active")
	}
}
