// Package diagnostics is the Reporter role from spec.md §6: a sink for
// warnings the checker core surfaces but does not itself format or route
// anywhere. Grounded on the teacher's own ad hoc reporting in
// symexec/symexec.go's staticFunction recover block (fmt.Println("[ERROR]", r)),
// generalized into a typed, location-carrying warning instead of a bare string.
package diagnostics

import "fmt"

// Location is the minimal source-position information a warning carries.
// The AST provider is expected to hand back nodes whose identity can be
// turned into one of these by the host embedding the checker; the checker
// core itself never interprets the fields.
type Location struct {
	NodeID int64
	Note   string // human-readable description, e.g. a function/contract name
}

func (l Location) String() string {
	if l.Note == "" {
		return fmt.Sprintf("node %d", l.NodeID)
	}
	return fmt.Sprintf("%s (node %d)", l.Note, l.NodeID)
}

// Kind discriminates the warning categories spec.md §7/§8 distinguishes.
type Kind int

const (
	// KindUnproven marks an assertion query that returned SAT or UNKNOWN:
	// the target was not proven safe, but no unsoundness was detected.
	KindUnproven Kind = iota
	// KindConflicting marks a CONFLICTING result from a solver portfolio.
	KindConflicting
	// KindSolverError marks a solver invocation failure.
	KindSolverError
)

func (k Kind) String() string {
	switch k {
	case KindUnproven:
		return "unproven"
	case KindConflicting:
		return "conflicting"
	case KindSolverError:
		return "solver-error"
	default:
		return "unknown"
	}
}

// Warning is one diagnostic emitted by the checker core.
type Warning struct {
	Kind     Kind
	Location Location
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Location, w.Message)
}

// Reporter collects warnings. The host decides what to do with them
// (print, aggregate, turn into exit codes) — the checker core never exits
// or panics on a Warning (spec.md §6: "No exit codes; the host decides.").
type Reporter struct {
	warnings []Warning
}

// New creates an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Warning records w.
func (r *Reporter) Warning(w Warning) {
	r.warnings = append(r.warnings, w)
}

// Warnings returns every warning recorded so far, in emission order.
func (r *Reporter) Warnings() []Warning {
	return r.warnings
}
