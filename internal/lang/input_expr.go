package lang

// ParseInputValue parses one value typed in response to an INPUT prompt:
// an optionally-signed decimal literal, or a variable reference whose
// current value is substituted. ctx supplies the variable's value; it may
// be nil if the caller already knows no variable form will be accepted.
func ParseInputValue(pos Position, ctx EvalContext) ParseResult[Number] {
	cur := pos.AfterSpaces()
	if !cur.AtEndOfLine() && (cur.At() == '+' || cur.At() == '-') {
		neg := cur.At() == '-'
		numR := NumberLiteral(cur.Next())
		if !numR.WasParsed() {
			return NotParsed[Number]()
		}
		v := numR.Value()
		if neg {
			v = -v
		}
		return ParsedAt(v, numR.NextPos())
	}
	if numR := NumberLiteral(cur); numR.WasParsed() {
		return ParsedAt(numR.Value(), numR.NextPos())
	}
	if varR := ParseVariableName(cur); varR.WasParsed() {
		v := ctx.Variable(varR.Value())
		return ParsedAt(v, varR.NextPos())
	}
	return NotParsed[Number]()
}
