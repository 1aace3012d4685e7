package engine

import (
	"github.com/danswartzendruber/avl"

	"github.com/nmiell/tinybasic/internal/lang"
)

// lineNode is one entry in the program table: a stored line number paired
// with its parsed statement. The AVL node is embedded directly, following
// the teacher's stmtNode layout, so the table stays sorted ascending by
// line number with no separate bookkeeping.
type lineNode struct {
	avl        avl.AvlNode
	lineNumber lang.Number
	statement  lang.Statement
}

// Program is the sorted, duplicate-free table of stored program lines
// (spec.md §3 "Program table"). It is implemented as an AVL tree keyed by
// line number, mirroring the teacher's stmtNode/AVL program storage.
type Program struct {
	root *avl.AvlNode
}

// NewProgram returns an empty program table.
func NewProgram() *Program {
	return &Program{root: nil}
}

func cmpLineNumbers(a, b lang.Number) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpNodeKey(key any, node any) int {
	return cmpLineNumbers(key.(lang.Number), node.(*lineNode).lineNumber)
}

func cmpNodeNode(a, b any) int {
	return cmpLineNumbers(a.(*lineNode).lineNumber, b.(*lineNode).lineNumber)
}

// Lookup returns the statement stored at lineNumber, or nil if there is
// none.
func (p *Program) Lookup(lineNumber lang.Number) lang.Statement {
	n := p.lookupNode(lineNumber)
	if n == nil {
		return nil
	}
	return n.statement
}

func (p *Program) lookupNode(lineNumber lang.Number) *lineNode {
	r := avl.AvlTreeLookup(p.root, lineNumber, cmpNodeKey)
	if r == nil {
		return nil
	}
	return r.(*lineNode)
}

// Insert stores statement at lineNumber, replacing any existing statement
// with that number. Inserting a nil statement deletes the line instead
// (spec.md §3: "Inserting a statement with an existing number replaces.
// Inserting with an empty statement deletes.").
func (p *Program) Insert(lineNumber lang.Number, statement lang.Statement) {
	if statement == nil {
		p.Delete(lineNumber)
		return
	}
	if existing := p.lookupNode(lineNumber); existing != nil {
		p.Delete(lineNumber)
	}
	node := &lineNode{lineNumber: lineNumber, statement: statement}
	avl.AvlTreeInsert(&p.root, &node.avl, node, cmpNodeNode)
}

// Delete removes the line with the given number, if any. No effect if
// there is no such line.
func (p *Program) Delete(lineNumber lang.Number) {
	n := p.lookupNode(lineNumber)
	if n == nil {
		return
	}
	avl.AvlTreeRemove(&p.root, &n.avl)
}

// Clear removes every stored line.
func (p *Program) Clear() {
	p.root = nil
}

// Empty reports whether the program table holds no lines.
func (p *Program) Empty() bool {
	return p.root == nil
}

// ProgramLine is one entry returned by a program-table walk.
type ProgramLine struct {
	LineNumber lang.Number
	Statement  lang.Statement
}

// Lines returns every stored line in ascending order.
func (p *Program) Lines() []ProgramLine {
	var out []ProgramLine
	n := avl.AvlTreeFirstInOrder(p.root)
	for n != nil {
		ln := n.(*lineNode)
		out = append(out, ProgramLine{ln.lineNumber, ln.statement})
		n = avl.AvlTreeNextInOrder(&ln.avl)
	}
	return out
}

// LinesInRange returns every stored line with low <= lineNumber <= high,
// in ascending order.
func (p *Program) LinesInRange(low, high lang.Number) []ProgramLine {
	var out []ProgramLine
	for _, ln := range p.Lines() {
		if ln.LineNumber >= low && ln.LineNumber <= high {
			out = append(out, ln)
		}
	}
	return out
}

// First returns the first line number in the table and true, or (0,
// false) if the table is empty.
func (p *Program) First() (lang.Number, bool) {
	n := avl.AvlTreeFirstInOrder(p.root)
	if n == nil {
		return 0, false
	}
	return n.(*lineNode).lineNumber, true
}

// Last returns the last line number in the table and true, or (0, false)
// if the table is empty.
func (p *Program) Last() (lang.Number, bool) {
	n := avl.AvlTreeLastInOrder(p.root)
	if n == nil {
		return 0, false
	}
	return n.(*lineNode).lineNumber, true
}

// Next returns the line number following lineNumber in program order, and
// true, or (0, false) if lineNumber is the last line or is not present.
func (p *Program) Next(lineNumber lang.Number) (lang.Number, bool) {
	n := p.lookupNode(lineNumber)
	if n == nil {
		return 0, false
	}
	next := avl.AvlTreeNextInOrder(&n.avl)
	if next == nil {
		return 0, false
	}
	return next.(*lineNode).lineNumber, true
}
