package util

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	lock   sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects debug and warning messages to w.
func SetOutput(w io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	output = w
}

// Debugging enables or disables debug logging.
func Debugging(ok bool) {
	if ok {
		Debug = enabledDebug
	} else {
		Debug = noopDebug
	}
}

type DebugFunction func(format string, args ...interface{})

// Debug writes a debug message to stderr if Debugging(true).
var Debug DebugFunction = noopDebug

func enabledDebug(format string, args ...interface{}) {
	write("DEBUG: ", format, args...)
}

func noopDebug(format string, args ...interface{}) {}

// NamespacedDebug returns a DebugFunction that prefixes every message with prefix.
func NamespacedDebug(prefix string) DebugFunction {
	return func(format string, args ...interface{}) {
		Debug(prefix+format, args...)
	}
}

// Warning writes a warning message to stderr.
func Warning(format string, args ...interface{}) {
	write("WARNING: ", format, args...)
}

func write(level, format string, args ...interface{}) {
	lock.Lock()
	defer lock.Unlock()
	fmt.Fprintf(output, level+format+"\n", args...)
}
