package dxil

import (
	"fmt"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

// InternalError is the panic value for registry precondition violations:
// out-of-range opcodes, illegal overloads, missing shape rows. These are
// compiler defects, never user errors.
type InternalError struct {
	Code    diag.Code
	Subject string
	Msg     string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("dxil: %s: %s", e.Subject, e.Msg)
}

// Diagnostic converts the error into an internal-error diagnostic.
func (e *InternalError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Subject, e.Msg)
}

func internalf(code diag.Code, subject, format string, args ...any) *InternalError {
	return &InternalError{Code: code, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// CatchInternal runs fn and converts an *InternalError panic into a
// diagnostic. Any other panic propagates.
func CatchInternal(fn func()) (d diag.Diagnostic, caught bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*InternalError)
		if !ok {
			panic(r)
		}
		d, caught = ie.Diagnostic(), true
	}()
	fn()
	return diag.Diagnostic{}, false
}
