// Package session holds the state behind an interactive calculator: the
// current parameters and their result, an activity log, the project
// workflow and the compliance checklist.
//
// A Session is owned by one loop and is not safe for concurrent use.
package session

import (
	"fmt"
	"time"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/report"
)

// MaxLogEntries caps the activity log
const MaxLogEntries = 5

// TimeLayout prefixes each log entry
const TimeLayout = "15:04:05"

// Session is the calculator state. Every successful parameter change
// recomputes the full result.
type Session struct {
	params analysis.Parameters
	result analysis.Result

	log       []string
	phases    []Phase
	checklist []CheckItem

	now func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used for log timestamps and dossiers
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithParameters starts the session from p instead of the defaults. New
// validates p; invalid parameters are logged and the defaults kept.
func WithParameters(p analysis.Parameters) Option {
	return func(s *Session) {
		s.params = p
	}
}

// New returns a session seeded with the default parameters, the initial
// log lines, the seeded workflow and the compliance checklist
func New(opts ...Option) *Session {
	s := &Session{
		params: analysis.DefaultParameters(),
		log: []string{
			"[SYSTEM] Structura Professional Engine Initialized.",
			"[MODE] Local Execution / Zero Latency Relay.",
		},
		phases:    DefaultPhases(),
		checklist: DefaultChecklist(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.params.Validate(); err != nil {
		s.params = analysis.DefaultParameters()
		s.Logf("Starting parameters rejected: %v", err)
	}
	s.result = analysis.Evaluate(s.params)
	return s
}

// Parameters returns the current parameter set
func (s *Session) Parameters() analysis.Parameters {
	return s.params
}

// Result returns the result of the current parameter set
func (s *Session) Result() analysis.Result {
	return s.result
}

// Apply runs update on a copy of the parameters. The copy replaces the
// current set only if it validates; otherwise the previous values stay and
// the validation error is returned.
func (s *Session) Apply(update func(*analysis.Parameters)) error {
	next := s.params
	update(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.params = next
	s.result = analysis.Evaluate(next)
	return nil
}

// Set updates one field from its text form
func (s *Session) Set(field, value string) error {
	var parseErr error
	err := s.Apply(func(p *analysis.Parameters) {
		parseErr = p.SetField(field, value)
	})
	if parseErr != nil {
		return parseErr
	}
	return err
}

// Reset restores the default parameters
func (s *Session) Reset() {
	s.params = analysis.DefaultParameters()
	s.result = analysis.Evaluate(s.params)
}

// Log returns the activity log, newest first
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Logf prepends a timestamped entry and drops the oldest beyond
// MaxLogEntries
func (s *Session) Logf(format string, args ...any) {
	entry := fmt.Sprintf("[%s] %s", s.now().Format(TimeLayout), fmt.Sprintf(format, args...))
	s.log = append([]string{entry}, s.log...)
	if len(s.log) > MaxLogEntries {
		s.log = s.log[:MaxLogEntries]
	}
}

// ExportDossier builds a dossier of the current state and logs the export
func (s *Session) ExportDossier(title string) report.Dossier {
	d := report.New(title, s.params, s.now())
	s.Logf("Dossier Exported: %s", d.Title)
	return d
}

// SyncSensors records a field sensor synchronization
func (s *Session) SyncSensors() {
	s.Logf("Initiating local hardware parity check...")
	s.Logf("Hardware Nodes Synchronized.")
}
