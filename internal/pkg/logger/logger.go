package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// StdLogger writes debug diagnostics to stderr. Nothing is printed unless
// verbose is set, so user-facing output is never mixed with log lines.
type StdLogger struct {
	verbose bool
	out     io.Writer
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: os.Stderr}
}

// NewWithWriter creates a StdLogger writing to out.
func NewWithWriter(verbose bool, out io.Writer) *StdLogger {
	return &StdLogger{verbose: verbose, out: out}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.write("DEBUG", msg, nil, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.write("INFO", msg, nil, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.write("WARN", msg, nil, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.write("ERROR", msg, err, fields)
}

func (l *StdLogger) write(level, msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	fmt.Fprintln(l.out, b.String())
}
