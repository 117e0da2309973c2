package diag

// Note adds secondary context to a diagnostic.
type Note struct {
	Line int
	Msg  string
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Line     int
	Message  string
	Notes    []Note
}

// Category is shorthand for d.Code.Category().
func (d Diagnostic) Category() Category {
	return d.Code.Category()
}
