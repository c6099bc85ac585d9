package diag

import "github.com/hlslc/frontend/internal/source"

// Note attaches a follow-up message to a diagnostic, e.g. a pointer at a
// prior declaration for a redefinition error.
type Note struct {
	Loc source.Location
	Msg string
}

// Diagnostic is one reported message, tagged with severity and location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Loc      source.Location
	Notes    []Note
}
