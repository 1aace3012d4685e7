package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/nmiell/tinybasic/internal/lang"
)

// listing renders the stored program as SAVE/LOAD would serialize it: one
// line per stored statement, each "<number> <statement text>", in
// ascending line-number order (spec.md §6).
func (e *Engine) listing() []string {
	lines := e.program.Lines()
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = listingText(ln)
	}
	return out
}

// loadListing replaces the current program with the lines in text,
// rejecting the whole listing if any line fails to parse as a numbered
// line. This mirrors LOAD's all-or-nothing contract: a partially-loaded
// program would leave the user debugging a listing they never typed.
func (e *Engine) loadListing(text []string) error {
	fresh := NewProgram()
	for _, raw := range text {
		parsed := lang.ParseLine(lang.InputLine(raw))
		switch parsed.Kind {
		case lang.LineEmpty:
			continue
		case lang.LineNumbered:
			fresh.Insert(parsed.LineNumber, parsed.Statement)
		default:
			return fmt.Errorf("malformed stored line: %q", raw)
		}
	}
	e.program = fresh
	e.returnStack = nil
	return nil
}

// Save writes the current listing under name.
func (e *Engine) Save(filename string) error {
	if e.saved == nil {
		return ErrUnsupported
	}
	return e.saved.Save(filename, e.listing())
}

// Load replaces the current program with the listing stored under name.
func (e *Engine) Load(filename string) error {
	if e.saved == nil {
		return ErrUnsupported
	}
	text, err := e.saved.Load(filename)
	if err != nil {
		return err
	}
	return e.loadListing(text)
}

// Files prints every saved program's name and size, human-readable
// (spec.md §4.7 "Catalog").
func (e *Engine) Files() error {
	if e.saved == nil {
		return ErrUnsupported
	}
	infos, err := e.saved.List()
	if err != nil {
		return err
	}
	for _, info := range infos {
		e.writeLine(fmt.Sprintf("%-24s %s", info.Name, humanize.Bytes(uint64(info.Size))))
	}
	return nil
}

// ClipSave copies the current listing to the host clipboard, when the
// adapter supports one.
func (e *Engine) ClipSave() error {
	clip, ok := e.io.(ClipboardAdapter)
	if !ok {
		return ErrUnsupported
	}
	var data []byte
	for _, line := range e.listing() {
		data = append(data, line...)
		data = append(data, '\n')
	}
	return clip.ClipboardWrite(data)
}

// ClipLoad replaces the current program with the listing on the host
// clipboard, when the adapter supports one.
func (e *Engine) ClipLoad() error {
	clip, ok := e.io.(ClipboardAdapter)
	if !ok {
		return ErrUnsupported
	}
	data, err := clip.ClipboardRead()
	if err != nil {
		return err
	}
	return e.loadListing(splitLines(data))
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
