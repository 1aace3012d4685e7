// Command tinybasic is the local interactive host: a thin shell around
// package engine that only ever calls Next/RunUntilEndOfInput and never
// touches program, variable, or array state directly, per spec.md's
// embedding-shell boundary.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/nmiell/tinybasic/internal/adapter"
	"github.com/nmiell/tinybasic/internal/diag"
	"github.com/nmiell/tinybasic/internal/engine"
	"github.com/nmiell/tinybasic/internal/storage"
)

const version = "0.1.0"

func main() {
	startTime := time.Now()

	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tinybasic: unable to open program store:", err)
		os.Exit(1)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		runInteractive(store, startTime)
		return
	}
	runBatch(store)
}

func openStore() (*storage.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".tinybasic", "programs")

	text, err := storage.NewTextStore(dir)
	if err != nil {
		return nil, err
	}

	catalog, err := storage.OpenCatalog(filepath.Join(dir, "catalog.db"))
	if err != nil {
		// FILES falls back to a directory scan; a missing catalog is
		// not fatal.
		catalog = nil
	}

	return &storage.Store{Text: text, Catalog: catalog}, nil
}

// runInteractive drives a TTY session, handling the first command-line
// argument (if any) as a program to LOAD before handing control to the
// user, and installing the teacher's SIGINT/SIGWINCH handling.
func runInteractive(store *storage.Store, startTime time.Time) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "tinybasic: standard input must be a terminal")
		os.Exit(1)
	}

	tty := adapter.NewTTY()
	defer tty.Close()

	diag.PrintBanner(os.Stdout, version, startTime)

	eng := engine.New(tty, store, startTime.UnixNano())

	if len(os.Args) > 1 {
		args, err := shellquote.Split(joinArgs(os.Args[1:]))
		if err == nil && len(args) > 0 {
			if err := eng.Load(args[0]); err != nil {
				fmt.Fprintln(os.Stdout, "tinybasic:", err)
			}
		}
	}

	go handleSignals(eng)

	eng.RunUntilEndOfInput()
}

// runBatch drives a redirected-input session (`tinybasic < script.bas`)
// straight through to end of input, per spec.md §4.6's
// runUntilEndOfInput contract for adapters that never return Waiting.
func runBatch(store *storage.Store) {
	b := adapter.NewBatch(os.Stdin, os.Stdout)
	eng := engine.New(b, store, time.Now().UnixNano())
	eng.RunUntilEndOfInput()
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += a
	}
	return s
}

// handleSignals mirrors the teacher's sigHdlr goroutine: SIGINT aborts a
// running program, SIGWINCH is observed but otherwise ignored since this
// host has no fixed-width output zones to re-flow.
func handleSignals(eng *engine.Engine) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGWINCH)
	for sig := range ch {
		switch sig {
		case syscall.SIGINT:
			eng.Interrupt()
		case syscall.SIGWINCH:
			_, _, _ = term.GetSize(int(os.Stdout.Fd()))
		}
	}
}
