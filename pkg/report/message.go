// Package report collects validation findings.
//
// Two shapes live here. Message/Report is the flat, severity-tagged
// stream the CLI renders. Buckets is the keyed, deduplicated mapping
// the validation entry points return: error key to the set of
// offending values (whole fragments or tag names).
package report

import "fmt"

// Severity levels for validation messages.
type Severity string

const (
	Fatal   Severity = "FATAL"
	Error   Severity = "ERROR"
	Warning Severity = "WARNING"
	Info    Severity = "INFO"
)

// Message represents a single validation finding against a fragment.
type Message struct {
	Severity Severity `json:"severity"`
	CheckID  string   `json:"check_id"`
	Message  string   `json:"message"`
	Fragment string   `json:"fragment,omitempty"`
}

func (m Message) String() string {
	if m.Fragment != "" {
		return fmt.Sprintf("%s(%s): %s [%s]", m.Severity, m.CheckID, m.Message, m.Fragment)
	}
	return fmt.Sprintf("%s(%s): %s", m.Severity, m.CheckID, m.Message)
}

// Report collects all messages from a validation run.
type Report struct {
	Messages []Message `json:"messages"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a message to the report.
func (r *Report) Add(sev Severity, checkID string, msg string) {
	r.Messages = append(r.Messages, Message{
		Severity: sev,
		CheckID:  checkID,
		Message:  msg,
	})
}

// AddForFragment appends a message tied to a fragment.
func (r *Report) AddForFragment(sev Severity, checkID string, msg string, fragment string) {
	r.Messages = append(r.Messages, Message{
		Severity: sev,
		CheckID:  checkID,
		Message:  msg,
		Fragment: fragment,
	})
}

// Merge appends every message from other, keeping order.
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Messages = append(r.Messages, other.Messages...)
	}
}

func (r *Report) countBySeverity(s Severity) int {
	n := 0
	for _, m := range r.Messages {
		if m.Severity == s {
			n++
		}
	}
	return n
}

// FatalCount returns the number of FATAL messages.
func (r *Report) FatalCount() int { return r.countBySeverity(Fatal) }

// ErrorCount returns the number of ERROR messages.
func (r *Report) ErrorCount() int { return r.countBySeverity(Error) }

// WarningCount returns the number of WARNING messages.
func (r *Report) WarningCount() int { return r.countBySeverity(Warning) }

// IsValid returns true if there are no FATAL or ERROR messages.
// Warnings do not make content invalid.
func (r *Report) IsValid() bool {
	return r.FatalCount() == 0 && r.ErrorCount() == 0
}
