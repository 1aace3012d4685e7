package lang

import "strconv"

// Lvalue is a storable location: a variable or an array element.
type Lvalue interface {
	Get(ctx EvalContext) (Number, error)
	Set(eng Engine, value Number) error
	ListText() string
}

// VarLvalue addresses a scalar variable.
type VarLvalue struct{ Name VariableName }

func (l VarLvalue) Get(ctx EvalContext) (Number, error) { return ctx.Variable(l.Name), nil }
func (l VarLvalue) Set(eng Engine, value Number) error  { eng.SetVariable(l.Name, value); return nil }
func (l VarLvalue) ListText() string                    { return string(l.Name) }

// ArrayLvalue addresses "@(expr)".
type ArrayLvalue struct{ Index Expression }

func (l ArrayLvalue) Get(ctx EvalContext) (Number, error) {
	i, err := l.Index.Evaluate(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.ArrayElement(i)
}

func (l ArrayLvalue) Set(eng Engine, value Number) error {
	i, err := l.Index.Evaluate(eng)
	if err != nil {
		return err
	}
	return eng.SetArrayElement(i, value)
}

func (l ArrayLvalue) ListText() string { return "@(" + l.Index.ListText() + ")" }

// Separator follows a PrintItem in a PrintList.
type Separator int

const (
	// SepNewline ends the PRINT statement's output with a newline.
	SepNewline Separator = iota
	// SepTab corresponds to a "," separator between print items.
	SepTab
	// SepEmpty corresponds to a ";" separator, suppressing any
	// following or trailing newline.
	SepEmpty
)

func (s Separator) listText() string {
	switch s {
	case SepTab:
		return ","
	case SepEmpty:
		return ";"
	default:
		return ""
	}
}

// PrintItem is one value to be written by PRINT: either an expression or a
// string literal.
type PrintItem interface {
	// Text renders the item's run-time value: the expression's value as
	// decimal text, or the string literal's contents unquoted.
	Text(ctx EvalContext) (string, error)
	ListText() string
}

// ExprItem prints the value of an expression.
type ExprItem struct{ Expr Expression }

func (i ExprItem) Text(ctx EvalContext) (string, error) {
	v, err := i.Expr.Evaluate(ctx)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(int(v)), nil
}
func (i ExprItem) ListText() string { return i.Expr.ListText() }

// StringItem prints a literal string.
type StringItem struct{ Text_ string }

func (i StringItem) Text(ctx EvalContext) (string, error) { return i.Text_, nil }
func (i StringItem) ListText() string                     { return "\"" + i.Text_ + "\"" }

// PrintEntry pairs a PrintItem with the separator that followed it in
// source.
type PrintEntry struct {
	Item PrintItem
	Sep  Separator
}

// PrintList is a non-empty, ordered list of PrintEntry. The separator of
// the final entry determines whether PRINT ends with a newline.
type PrintList []PrintEntry

// ListText renders the canonical PRINT argument text.
func (items PrintList) ListText() string {
	var out string
	for i, e := range items {
		out += e.Item.ListText()
		switch e.Sep {
		case SepTab:
			out += ","
		case SepEmpty:
			out += ";"
		default:
			if i != len(items)-1 {
				out += ";"
			}
		}
	}
	return out
}
