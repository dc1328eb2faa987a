package syntax

// Diagnostics receives the advisory warnings of a compilation unit. Fatal
// errors are not reported here; they are returned as *Error values and end
// the unit.
type Diagnostics interface {
	Warning(msg string, tok Token)
}

// UsingHandler resolves using statements. It is called once per using
// statement with the dotted path (without a trailing .*). It reports
// whether anything new was added; false means the import is a duplicate.
type UsingHandler interface {
	Using(path string, native, wildcard bool, tok Token) (added bool, err error)
}

// nopDiagnostics discards warnings.
type nopDiagnostics struct{}

func (nopDiagnostics) Warning(string, Token) {}

// nopUsing accepts every import.
type nopUsing struct{}

func (nopUsing) Using(string, bool, bool, Token) (bool, error) { return true, nil }
