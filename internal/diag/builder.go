package diag

import "fmt"

func New(sev Severity, code Code, line int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Line:     line,
		Message:  msg,
	}
}

func NewError(code Code, line int, msg string) Diagnostic {
	return New(SevError, code, line, msg)
}

func (d Diagnostic) WithNote(line int, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Line: line, Msg: msg})
	return d
}

// Errorf emits an error diagnostic with a formatted message.
func Errorf(r Reporter, code Code, line int, format string, args ...any) {
	ReportError(r, code, line, fmt.Sprintf(format, args...)).Emit()
}
