package lang

// keyword tries each spelling in turn, returning the first that matches.
// Callers should list longer/more specific spellings before shorter ones
// that are textual prefixes of them (e.g. "PRINT" before "PR") so that an
// abbreviation never eats the first letters of the full keyword.
func keyword(spellings ...string) Parser[string] {
	parsers := make([]Parser[string], len(spellings))
	for i, s := range spellings {
		parsers[i] = Literal(s)
	}
	return OrAny(parsers...)
}

// ParseRelOp parses a relational operator, trying two-character spellings
// before their single-character prefixes.
func ParseRelOp(pos Position) ParseResult[RelOp] {
	type candidate struct {
		text string
		op   RelOp
	}
	for _, c := range []candidate{
		{"<=", RelLessOrEqual},
		{">=", RelGreaterOrEqual},
		{"<>", RelNotEqual},
		{"><", RelNotEqual},
		{"<", RelLess},
		{">", RelGreater},
		{"=", RelEqual},
	} {
		if r := Literal(c.text)(pos); r.WasParsed() {
			return ParsedAt(c.op, r.NextPos())
		}
	}
	return NotParsed[RelOp]()
}

// ParseLvalue parses a variable or an array element reference.
func ParseLvalue(pos Position) ParseResult[Lvalue] {
	if r := parseArrayLvalue(pos); r.WasParsed() {
		return r
	}
	if r := ParseVariableName(pos); r.WasParsed() {
		return ParsedAt[Lvalue](VarLvalue{r.Value()}, r.NextPos())
	}
	return NotParsed[Lvalue]()
}

func parseArrayLvalue(pos Position) ParseResult[Lvalue] {
	r := Seq3(pos, Literal("@"), Literal("("), ParseExpression)
	if !r.WasParsed() {
		return NotParsed[Lvalue]()
	}
	closeR := Literal(")")(r.NextPos())
	if !closeR.WasParsed() {
		return NotParsed[Lvalue]()
	}
	return ParsedAt[Lvalue](ArrayLvalue{r.Value().C}, closeR.NextPos())
}

func parseLvalueList(pos Position) ParseResult[[]Lvalue] {
	first := ParseLvalue(pos)
	if !first.WasParsed() {
		return NotParsed[[]Lvalue]()
	}
	lvs := []Lvalue{first.Value()}
	cur := first.NextPos()
	for {
		commaR := Literal(",")(cur)
		if !commaR.WasParsed() {
			break
		}
		nextR := ParseLvalue(commaR.NextPos())
		if !nextR.WasParsed() {
			return NotParsed[[]Lvalue]()
		}
		lvs = append(lvs, nextR.Value())
		cur = nextR.NextPos()
	}
	return ParsedAt(lvs, cur)
}

func parsePrintItem(pos Position) ParseResult[PrintItem] {
	if r := StringLiteral(pos); r.WasParsed() {
		return ParsedAt[PrintItem](StringItem{r.Value()}, r.NextPos())
	}
	if r := ParseExpression(pos); r.WasParsed() {
		return ParsedAt[PrintItem](ExprItem{r.Value()}, r.NextPos())
	}
	return NotParsed[PrintItem]()
}

// ParsePrintList parses a non-empty comma/semicolon-separated list of
// print items. The separator following each item is retained; the final
// entry's separator defaults to SepNewline if nothing follows it.
func ParsePrintList(pos Position) ParseResult[PrintList] {
	first := parsePrintItem(pos)
	if !first.WasParsed() {
		return NotParsed[PrintList]()
	}

	var items PrintList
	item := first.Value()
	cur := first.NextPos()

	for {
		if r := Literal(",")(cur); r.WasParsed() {
			items = append(items, PrintEntry{item, SepTab})
			cur = r.NextPos()
			next := parsePrintItem(cur)
			if !next.WasParsed() {
				return ParsedAt(items, cur)
			}
			item, cur = next.Value(), next.NextPos()
			continue
		}
		if r := Literal(";")(cur); r.WasParsed() {
			items = append(items, PrintEntry{item, SepEmpty})
			cur = r.NextPos()
			next := parsePrintItem(cur)
			if !next.WasParsed() {
				return ParsedAt(items, cur)
			}
			item, cur = next.Value(), next.NextPos()
			continue
		}
		items = append(items, PrintEntry{item, SepNewline})
		return ParsedAt(items, cur)
	}
}

// ParseStatement parses one BASIC statement. It returns NotParsed if no
// keyword matches, or if a keyword matched but its arguments were
// malformed.
func ParseStatement(pos Position) ParseResult[Statement] {
	parsers := []Parser[Statement]{
		parsePrintStmt,
		parseInputStmt,
		parseIfStmt,
		parseGosubStmt,
		parseGotoStmt,
		parseReturnStmt,
		parseRunStmt,
		parseEndStmt,
		parseListStmt,
		parseClearStmt,
		parseRemStmt,
		parseDimStmt,
		parseSaveStmt,
		parseLoadStmt,
		parseFilesStmt,
		parseClipSaveStmt,
		parseClipLoadStmt,
		parseTroffStmt,
		parseTronStmt,
		parseByeStmt,
		parseHelpStmt,
		parseLetStmt,
		parseImplicitLetStmt,
	}
	return OrAny(parsers...)(pos)
}

func parsePrintStmt(pos Position) ParseResult[Statement] {
	r := keyword("PRINT", "PR", "?")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	if r.NextPos().IsRemainingLineEmpty() {
		return ParsedAt[Statement](PrintStmt{}, r.NextPos())
	}
	listR := ParsePrintList(r.NextPos())
	if !listR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](PrintStmt{listR.Value()}, listR.NextPos())
}

func parseLetBody(pos Position, hasKeyword bool) ParseResult[Statement] {
	lr := ParseLvalue(pos)
	if !lr.WasParsed() {
		return NotParsed[Statement]()
	}
	eqR := Literal("=")(lr.NextPos())
	if !eqR.WasParsed() {
		return NotParsed[Statement]()
	}
	exprR := ParseExpression(eqR.NextPos())
	if !exprR.WasParsed() {
		return NotParsed[Statement]()
	}
	stmt := LetStmt{Target: lr.Value(), Value: exprR.Value(), Keyword: hasKeyword}
	return ParsedAt[Statement](stmt, exprR.NextPos())
}

func parseLetStmt(pos Position) ParseResult[Statement] {
	r := Literal("LET")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return parseLetBody(r.NextPos(), true)
}

func parseImplicitLetStmt(pos Position) ParseResult[Statement] {
	return parseLetBody(pos, false)
}

func parseInputStmt(pos Position) ParseResult[Statement] {
	r := keyword("INPUT", "IN")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	lvs := parseLvalueList(r.NextPos())
	if !lvs.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](InputStmt{lvs.Value()}, lvs.NextPos())
}

func parseIfStmt(pos Position) ParseResult[Statement] {
	r := Literal("IF")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	lhsR := ParseExpression(r.NextPos())
	if !lhsR.WasParsed() {
		return NotParsed[Statement]()
	}
	opR := ParseRelOp(lhsR.NextPos())
	if !opR.WasParsed() {
		return NotParsed[Statement]()
	}
	rhsR := ParseExpression(opR.NextPos())
	if !rhsR.WasParsed() {
		return NotParsed[Statement]()
	}
	cur := rhsR.NextPos()
	if thenR := Literal("THEN")(cur); thenR.WasParsed() {
		cur = thenR.NextPos()
	}
	stmtR := ParseStatement(cur)
	if !stmtR.WasParsed() {
		return NotParsed[Statement]()
	}
	stmt := IfStmt{Lhs: lhsR.Value(), Op: opR.Value(), Rhs: rhsR.Value(), Consequent: stmtR.Value()}
	return ParsedAt[Statement](stmt, stmtR.NextPos())
}

func parseGotoStmt(pos Position) ParseResult[Statement] {
	r := Literal("GOTO")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	exprR := ParseExpression(r.NextPos())
	if !exprR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](GotoStmt{exprR.Value()}, exprR.NextPos())
}

func parseGosubStmt(pos Position) ParseResult[Statement] {
	r := Literal("GOSUB")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	exprR := ParseExpression(r.NextPos())
	if !exprR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](GosubStmt{exprR.Value()}, exprR.NextPos())
}

func parseReturnStmt(pos Position) ParseResult[Statement] {
	r := Literal("RETURN")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](ReturnStmt{}, r.NextPos())
}

func parseRunStmt(pos Position) ParseResult[Statement] {
	r := Literal("RUN")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](RunStmt{}, r.NextPos())
}

func parseEndStmt(pos Position) ParseResult[Statement] {
	r := Literal("END")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](EndStmt{}, r.NextPos())
}

func parseListStmt(pos Position) ParseResult[Statement] {
	r := Literal("LIST")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	cur := r.NextPos()
	if cur.IsRemainingLineEmpty() {
		return ParsedAt[Statement](ListStmt{}, cur)
	}
	lowR := NumberLiteral(cur)
	if !lowR.WasParsed() {
		return NotParsed[Statement]()
	}
	low := lowR.Value()
	cur = lowR.NextPos()
	if commaR := Literal(",")(cur); commaR.WasParsed() {
		highR := NumberLiteral(commaR.NextPos())
		if !highR.WasParsed() {
			return NotParsed[Statement]()
		}
		high := highR.Value()
		return ParsedAt[Statement](ListStmt{Low: &low, High: &high}, highR.NextPos())
	}
	return ParsedAt[Statement](ListStmt{Low: &low}, cur)
}

func parseClearStmt(pos Position) ParseResult[Statement] {
	r := Literal("CLEAR")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](ClearStmt{}, r.NextPos())
}

func parseRemStmt(pos Position) ParseResult[Statement] {
	r := Literal("REM")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	cur := r.NextPos().AfterSpaces()
	text := string(cur.RemainingChars())
	return ParsedAt[Statement](RemStmt{text}, cur.EndOfLine())
}

func parseDimStmt(pos Position) ParseResult[Statement] {
	r := Literal("DIM")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	body := Seq3(r.NextPos(), Literal("@"), Literal("("), ParseExpression)
	if !body.WasParsed() {
		return NotParsed[Statement]()
	}
	closeR := Literal(")")(body.NextPos())
	if !closeR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](DimStmt{body.Value().C}, closeR.NextPos())
}

func parseSaveStmt(pos Position) ParseResult[Statement] {
	r := keyword("SAVE")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	nameR := StringLiteral(r.NextPos())
	if !nameR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](SaveStmt{nameR.Value()}, nameR.NextPos())
}

func parseLoadStmt(pos Position) ParseResult[Statement] {
	r := keyword("LOAD")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	nameR := StringLiteral(r.NextPos())
	if !nameR.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](LoadStmt{nameR.Value()}, nameR.NextPos())
}

func parseFilesStmt(pos Position) ParseResult[Statement] {
	r := Literal("FILES")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](FilesStmt{}, r.NextPos())
}

func parseClipSaveStmt(pos Position) ParseResult[Statement] {
	r := Literal("CLIPSAVE")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](ClipSaveStmt{}, r.NextPos())
}

func parseClipLoadStmt(pos Position) ParseResult[Statement] {
	r := Literal("CLIPLOAD")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](ClipLoadStmt{}, r.NextPos())
}

func parseTronStmt(pos Position) ParseResult[Statement] {
	r := Literal("TRON")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](TronStmt{}, r.NextPos())
}

func parseTroffStmt(pos Position) ParseResult[Statement] {
	r := Literal("TROFF")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](TroffStmt{}, r.NextPos())
}

func parseByeStmt(pos Position) ParseResult[Statement] {
	r := Literal("BYE")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](ByeStmt{}, r.NextPos())
}

func parseHelpStmt(pos Position) ParseResult[Statement] {
	r := Literal("HELP")(pos)
	if !r.WasParsed() {
		return NotParsed[Statement]()
	}
	return ParsedAt[Statement](HelpStmt{}, r.NextPos())
}
