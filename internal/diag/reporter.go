package diag

// Reporter receives diagnostics. *Bag is the usual implementation.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates notes before handing the diagnostic over.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// ReportError starts an error diagnostic bound to r.
func ReportError(r Reporter, code Code, subject, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: NewError(code, subject, msg)}
}

// ReportWarning starts a warning diagnostic bound to r.
func ReportWarning(r Reporter, code Code, subject, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(SevWarning, code, subject, msg)}
}

func (b *ReportBuilder) WithNote(subject, msg string) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithNote(subject, msg)
	}
	return b
}

// Emit hands the diagnostic to the reporter once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
}
