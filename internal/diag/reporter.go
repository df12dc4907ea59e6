package diag

import (
	"fmt"

	"github.com/simonzhangsm/capnproto/internal/source"
)

// Reporter is the error-reporter collaborator: every component that can
// detect a user-facing problem reports through it instead of returning a
// Go error, so translation can keep going.
type Reporter interface {
	Report(severity Severity, code Code, primary source.Span, msg string, notes ...Note)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(severity Severity, code Code, primary source.Span, msg string, notes ...Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// NopReporter discards every diagnostic. Useful for components (like
// layout-only unit tests) that don't care about error text.
type NopReporter struct{}

func (NopReporter) Report(Severity, Code, source.Span, string, ...Note) {}

// Errorf is a shorthand for reporting a SevError diagnostic.
func Errorf(r Reporter, code Code, primary source.Span, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(SevError, code, primary, fmt.Sprintf(format, args...))
}
