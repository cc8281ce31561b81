package main

import (
	"fmt"
	"os"
	"strings"
)

// stderrLogger writes structured log lines to stderr. Debug output is
// gated behind the --verbose flag.
type stderrLogger struct {
	verbose bool
}

func (l *stderrLogger) Debug(msg string, keysAndValues ...interface{}) {
	if l.verbose {
		l.write("debug", msg, keysAndValues)
	}
}

func (l *stderrLogger) Info(msg string, keysAndValues ...interface{}) {
	l.write("info", msg, keysAndValues)
}

func (l *stderrLogger) write(level, msg string, keysAndValues []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(": ")
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(os.Stderr, b.String())
}
