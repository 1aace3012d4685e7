package engine

// helpText is printed by HELP: one line per supported command, in the
// same terse "command / one-line description" register the teacher's own
// help table uses.
var helpText = []string{
	"PRINT expr{,expr|;expr}   write values, , tabs and ; joins",
	"LET lvalue = expr         assign a variable or @(i)",
	"INPUT lvalue{,lvalue}     read values from the terminal",
	"IF expr relop expr THEN stmt   conditional execution",
	"GOTO expr                 jump to a line number",
	"GOSUB expr / RETURN       call and return from a subroutine",
	"RUN                       start the stored program at its first line",
	"END                       stop a running program",
	"LIST [low[,high]]         print stored lines",
	"CLEAR                     erase the stored program and variables",
	"REM text                  a comment",
	"DIM @(expr)                size the @() array",
	"SAVE \"name\" / LOAD \"name\"  store or retrieve a listing",
	"FILES                     list saved programs",
	"CLIPSAVE / CLIPLOAD        copy a listing to or from the clipboard",
	"TRON / TROFF               toggle execution tracing",
	"BYE                        exit",
	"HELP                       show this text",
}
