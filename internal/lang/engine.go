package lang

// Engine is the set of operations a Statement needs from the surrounding
// execution engine in order to run. It is declared on the consumer side
// (package lang) rather than the implementer side (package engine) so that
// this package never imports engine -- engine.Engine satisfies this
// interface structurally, avoiding an import cycle between the AST and the
// thing that walks it.
type Engine interface {
	EvalContext

	SetVariable(name VariableName, value Number)
	SetArrayElement(index Number, value Number) error
	Dim(size Number) error

	Print(items PrintList) error
	Input(lvalues []Lvalue) error

	Goto(lineNumber Number) error
	Gosub(lineNumber Number) error
	Return() error

	Run()
	End()
	List(low, high *Number) error
	Clear()

	Save(filename string) error
	Load(filename string) error
	Files() error
	ClipSave() error
	ClipLoad() error

	Tron()
	Troff()

	Bye()
	Help()

	// ExecuteNested runs a Statement in the current context, used by IF's
	// THEN clause so that a jump performed by the nested statement (GOTO,
	// GOSUB, RETURN) takes effect in the caller.
	ExecuteNested(s Statement) error
}

// Statement is one parsed BASIC statement: PRINT, LET, IF, GOTO, and so
// on. Each concrete type owns its sub-ASTs by value and is immutable after
// construction.
type Statement interface {
	Execute(eng Engine) error
	ListText() string
}
