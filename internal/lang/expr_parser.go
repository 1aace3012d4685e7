package lang

// ParseExpression parses an Expression: an optional leading "+"/"-" sign
// followed by an UnsignedExpression.
func ParseExpression(pos Position) ParseResult[Expression] {
	cur := pos.AfterSpaces()
	if !cur.AtEndOfLine() && cur.At() == '+' {
		if r := ParseUnsignedExpression(cur.Next()); r.WasParsed() {
			return ParsedAt[Expression](PlusExpr{r.Value()}, r.NextPos())
		}
		return NotParsed[Expression]()
	}
	if !cur.AtEndOfLine() && cur.At() == '-' {
		if r := ParseUnsignedExpression(cur.Next()); r.WasParsed() {
			return ParsedAt[Expression](MinusExpr{r.Value()}, r.NextPos())
		}
		return NotParsed[Expression]()
	}
	if r := ParseUnsignedExpression(pos); r.WasParsed() {
		return ParsedAt[Expression](PlainExpr{r.Value()}, r.NextPos())
	}
	return NotParsed[Expression]()
}

// ParseUnsignedExpression parses "term" or "term (+|-) unsignedExpression".
// Successive additive operators are folded left-associatively by wrapping
// everything parsed so far in a foldedTerm before combining it with the
// next term (see CompoundExpr's doc comment); foldedTerm, unlike
// ParenFactor, never adds parentheses to ListText.
func ParseUnsignedExpression(pos Position) ParseResult[UnsignedExpression] {
	rt := ParseTerm(pos)
	if !rt.WasParsed() {
		return NotParsed[UnsignedExpression]()
	}

	var acc UnsignedExpression = TermExpr{rt.Value()}
	cur := rt.NextPos()

	for {
		opCur := cur.AfterSpaces()
		var op ArithOp
		var afterOp Position
		switch {
		case !opCur.AtEndOfLine() && opCur.At() == '+':
			op, afterOp = OpAdd, opCur.Next()
		case !opCur.AtEndOfLine() && opCur.At() == '-':
			op, afterOp = OpSub, opCur.Next()
		default:
			return ParsedAt(acc, cur)
		}

		rt2 := ParseTerm(afterOp)
		if !rt2.WasParsed() {
			return NotParsed[UnsignedExpression]()
		}

		acc = CompoundExpr{Term: foldedTerm{acc}, Op: op, Tail: TermExpr{rt2.Value()}}
		cur = rt2.NextPos()
	}
}

// ParseTerm parses "factor" or "factor (*|/) term", folded the same way as
// ParseUnsignedExpression (via foldedFactor rather than foldedTerm).
func ParseTerm(pos Position) ParseResult[Term] {
	rf := ParseFactor(pos)
	if !rf.WasParsed() {
		return NotParsed[Term]()
	}

	var acc Term = FactorTerm{rf.Value()}
	cur := rf.NextPos()

	for {
		opCur := cur.AfterSpaces()
		var op ArithOp
		var afterOp Position
		switch {
		case !opCur.AtEndOfLine() && opCur.At() == '*':
			op, afterOp = OpMul, opCur.Next()
		case !opCur.AtEndOfLine() && opCur.At() == '/':
			op, afterOp = OpDiv, opCur.Next()
		default:
			return ParsedAt(acc, cur)
		}

		rf2 := ParseFactor(afterOp)
		if !rf2.WasParsed() {
			return NotParsed[Term]()
		}

		acc = CompoundTerm{Factor: foldedFactor{acc}, Op: op, Tail: FactorTerm{rf2.Value()}}
		cur = rf2.NextPos()
	}
}

// ParseFactor parses a number, "RND(" expr ")", "@(" expr ")",
// "(" expr ")", or a variable reference, in that order -- number first
// because it cannot be confused with anything else, RND and "@" before a
// bare "(" so neither is mistaken for a parenthesised expression, and
// variable last since a bare letter would otherwise swallow the first
// letter of RND.
func ParseFactor(pos Position) ParseResult[Factor] {
	if r := NumberLiteral(pos); r.WasParsed() {
		return ParsedAt[Factor](NumberFactor{r.Value()}, r.NextPos())
	}
	if r := parseRndFactor(pos); r.WasParsed() {
		return r
	}
	if r := parseArrayFactor(pos); r.WasParsed() {
		return r
	}
	if r := parseParenFactor(pos); r.WasParsed() {
		return r
	}
	if r := ParseVariableName(pos); r.WasParsed() {
		return ParsedAt[Factor](VarFactor{r.Value()}, r.NextPos())
	}
	return NotParsed[Factor]()
}

func parseRndFactor(pos Position) ParseResult[Factor] {
	r := Seq3(pos, Literal("RND"), Literal("("), ParseExpression)
	if !r.WasParsed() {
		return NotParsed[Factor]()
	}
	closeR := Literal(")")(r.NextPos())
	if !closeR.WasParsed() {
		return NotParsed[Factor]()
	}
	return ParsedAt[Factor](RndFactor{r.Value().C}, closeR.NextPos())
}

func parseArrayFactor(pos Position) ParseResult[Factor] {
	r := Seq3(pos, Literal("@"), Literal("("), ParseExpression)
	if !r.WasParsed() {
		return NotParsed[Factor]()
	}
	closeR := Literal(")")(r.NextPos())
	if !closeR.WasParsed() {
		return NotParsed[Factor]()
	}
	return ParsedAt[Factor](ArrayFactor{r.Value().C}, closeR.NextPos())
}

func parseParenFactor(pos Position) ParseResult[Factor] {
	r := Seq2(pos, Literal("("), ParseExpression)
	if !r.WasParsed() {
		return NotParsed[Factor]()
	}
	closeR := Literal(")")(r.NextPos())
	if !closeR.WasParsed() {
		return NotParsed[Factor]()
	}
	return ParsedAt[Factor](ParenFactor{r.Value().B}, closeR.NextPos())
}
