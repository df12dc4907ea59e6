package diag

import "github.com/simonzhangsm/capnproto/internal/source"

// Note is a secondary span+message attached to a Diagnostic, e.g. pointing
// at the earlier declaration a duplicate collides with.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single reported problem. Reporting a diagnostic never
// aborts translation: the caller degrades the affected value and
// continues.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with an additional note appended.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Span: span, Msg: msg})
	return d
}
