package lang

import "testing"

type fakeCtx struct {
	vars map[VariableName]Number
	arr  []Number
}

func (f *fakeCtx) Variable(name VariableName) Number { return f.vars[name] }
func (f *fakeCtx) ArrayElement(i Number) (Number, error) {
	if i < 0 || int(i) >= len(f.arr) {
		return 0, ErrSubscriptOutOfRange
	}
	return f.arr[i], nil
}
func (f *fakeCtx) Random(n Number) (Number, error) {
	if n <= 0 {
		return 0, ErrRandomNonPositive
	}
	return 0, nil
}

func evalExpr(t *testing.T, src string, ctx EvalContext) (Number, error) {
	t.Helper()
	r := ParseExpression(NewPosition([]byte(src)))
	if !r.WasParsed() {
		t.Fatalf("ParseExpression(%q): did not parse", src)
	}
	if !r.NextPos().IsRemainingLineEmpty() {
		t.Fatalf("ParseExpression(%q): trailing input at %d", src, r.NextPos().Index())
	}
	return r.Value().Evaluate(ctx)
}

func TestExpressionPrecedenceAndAssociativity(t *testing.T) {
	ctx := &fakeCtx{vars: map[VariableName]Number{'A': 3, 'B': 4}}

	tests := []struct {
		name string
		expr string
		want Number
	}{
		{"addition", "2 + 3", 5},
		{"mul before add", "2 + 3 * 4", 14},
		{"parens override precedence", "(2 + 3) * 4", 20},
		{"left assoc division", "8 / 4 / 2", 1}, // (8/4)/2, not 8/(4/2)=4
		{"left assoc subtraction", "10 - 3 - 2", 5},
		{"unary minus binds first term only", "-A+B", 1},
		{"unary minus over compound", "-(A+B)", -7},
		{"variables", "A * B", 12},
		{"truncating division", "7 / 2", 3},
		{"truncating division negative", "-7 / 2", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalExpr(t, tt.expr, ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s = %d, want %d", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExpressionDivisionByZero(t *testing.T) {
	ctx := &fakeCtx{}
	_, err := evalExpr(t, "1 / 0", ctx)
	if err != ErrDivisionByZero {
		t.Fatalf("got %v, want ErrDivisionByZero", err)
	}
}

func TestExpressionArraySubscriptOutOfRange(t *testing.T) {
	ctx := &fakeCtx{arr: []Number{10, 20}}
	_, err := evalExpr(t, "@(5)", ctx)
	if err != ErrSubscriptOutOfRange {
		t.Fatalf("got %v, want ErrSubscriptOutOfRange", err)
	}
}

func TestExpressionRndNonPositive(t *testing.T) {
	ctx := &fakeCtx{}
	_, err := evalExpr(t, "RND(0)", ctx)
	if err != ErrRandomNonPositive {
		t.Fatalf("got %v, want ErrRandomNonPositive", err)
	}
}

func TestNumberLiteralSaturatesOnOverflow(t *testing.T) {
	r := NumberLiteral(NewPosition([]byte("99999999999999999999")))
	if !r.WasParsed() {
		t.Fatal("expected a parse")
	}
	if r.Value() != 2147483647 {
		t.Errorf("got %d, want math.MaxInt32", r.Value())
	}
}

// TestListTextStableAcrossRepeatedParseCycles guards against the
// left-fold accumulator re-wrapping itself in ParenFactor on every
// operator: that bug makes ListText grow a pair of parentheses each time
// the rendered text is re-parsed, instead of settling after one cycle.
func TestListTextStableAcrossRepeatedParseCycles(t *testing.T) {
	src := "A = 1 + 2 + 3 + 4"
	for i := 0; i < 3; i++ {
		line := ParseLine(InputLine(src))
		if line.Kind != LineImmediate {
			t.Fatalf("round %d: ParseLine(%q): got kind %v, want LineImmediate", i, src, line.Kind)
		}
		got := line.Statement.ListText()
		if got != "A = 1 + 2 + 3 + 4" {
			t.Fatalf("round %d: ListText() = %q, want no parentheses to appear", i, got)
		}
		src = got
	}
}

func TestListTextRoundTrip(t *testing.T) {
	tests := []string{
		"A = 1 + 2",
		"A = -B + C",
		"PRINT A,B;C",
		"IF A < B THEN PRINT A",
		"GOTO 100",
	}
	for _, src := range tests {
		line := ParseLine(InputLine(src))
		if line.Kind != LineImmediate {
			t.Fatalf("ParseLine(%q): got kind %v, want LineImmediate", src, line.Kind)
		}
		if got := line.Statement.ListText(); got != src {
			t.Errorf("ListText round trip: got %q, want %q", got, src)
		}
	}
}
