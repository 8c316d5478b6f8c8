// Package trace is the checker's progress logger: a thin wrapper around the
// standard library's log.Logger that keeps the teacher's "::"-banner
// texture (symexec/symexec.go, graph/ssa.go's fmt.Println("::", ...) calls)
// instead of adopting a structured-logging library the retrieval pack never
// uses anywhere.
package trace

import (
	"io"
	"log"
	"os"
)

// Tracer emits "::"-prefixed progress lines, gated by Enabled.
type Tracer struct {
	Enabled bool
	log     *log.Logger
}

// New creates a Tracer writing to w with the given enabled state. Passing a
// nil w defaults to os.Stderr.
func New(enabled bool, w io.Writer) *Tracer {
	if w == nil {
		w = os.Stderr
	}
	return &Tracer{Enabled: enabled, log: log.New(w, "", 0)}
}

// Printf logs a single "::"-banner line when tracing is enabled.
func (t *Tracer) Printf(format string, args ...any) {
	if t == nil || !t.Enabled {
		return
	}
	t.log.Printf(":: "+format, args...)
}
