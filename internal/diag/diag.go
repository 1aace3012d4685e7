// Package diag holds the interpreter's ambient diagnostics: a
// godump-backed structural dump gated behind TINYBASIC_DEBUG, CPU-time
// reporting built from go-sysconf, and a version/uptime banner, mirroring
// the teacher's g.traceDump-gated godump.Dump calls and its sysconf-based
// CPU reporting.
package diag

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goforj/godump"
	"github.com/tklauser/go-sysconf"
)

// Debug reports whether TINYBASIC_DEBUG is set, the same on/off switch the
// teacher keys its godump.Dump calls off of (there, a runtime trace flag;
// here, an env var, since this module has no interactive "trace parser
// nodes" command of its own).
func Debug() bool {
	return os.Getenv("TINYBASIC_DEBUG") != ""
}

// Dump structurally prints v via godump when Debug is set; a no-op
// otherwise. Intended for AST nodes and statements during development,
// never part of normal program output.
func Dump(v any) {
	if Debug() {
		godump.Dump(v)
	}
}

// clockTicksPerSecond reads SC_CLK_TCK once; go-sysconf's value never
// changes for the life of the process.
var clockTicksPerSecond = readClockTicks()

func readClockTicks() int64 {
	v, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 100 // the near-universal Linux default
	}
	return v
}

// CPUTimes returns the process's user and system CPU time, read from
// /proc/self/stat the same way the teacher's getCPUInfo does, converted
// from clock ticks to a time.Duration via SC_CLK_TCK.
func CPUTimes() (user, system time.Duration, err error) {
	data, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}
	fields := splitFields(string(data))
	if len(fields) < 15 {
		return 0, 0, fmt.Errorf("diag: unexpected /proc/self/stat format")
	}
	utime := parseTicks(fields[13])
	stime := parseTicks(fields[14])
	scale := time.Second / time.Duration(clockTicksPerSecond)
	return time.Duration(utime) * scale, time.Duration(stime) * scale, nil
}

func parseTicks(s string) int64 {
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i, c := range s {
		if c == ' ' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// PrintBanner writes a one-line version/uptime banner to w, in the
// register of the teacher's printVersionInfo.
func PrintBanner(w io.Writer, version string, started time.Time) {
	fmt.Fprintf(w, "tinybasic %s -- uptime %s\n", version, time.Since(started).Round(time.Second))
}
