// Package config holds the interpreter's tunable constants: the sort of
// thing the teacher wires up as package-level vars read once at startup
// rather than threading a config struct through every call.
package config

// DefaultArrayLength is the number of elements in the @() array when a
// program has not yet executed a DIM statement, per spec.md §3.
const DefaultArrayLength = 1024

// MaxLineLength is the longest input line the driver will assemble before
// treating the line as an error, per SPEC_FULL.md §6.
const MaxLineLength = 256

// CommandPrompt is printed before reading a line while Idle or
// ReadingStatement.
const CommandPrompt = "> "

// InputPrompt is printed before reading a line of INPUT data.
const InputPrompt = "? "
