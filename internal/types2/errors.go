// Package types2 implements semantic analysis for the LSC language.
package types2

import (
	"fmt"

	"github.com/you-not-fish/lsc/internal/syntax"
)

// errorf returns a fatal error of the given kind located at n.
func (c *Checker) errorf(kind syntax.ErrorKind, n syntax.Node, format string, args ...interface{}) error {
	return syntax.Errorf(kind, n.Tok(), format, args...)
}

// internalf reports a broken invariant of the analyzer.
func (c *Checker) internalf(n syntax.Node, format string, args ...interface{}) error {
	return syntax.Internalf(n.Tok(), format, args...)
}

// warnf forwards an advisory diagnostic.
func (c *Checker) warnf(n syntax.Node, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.log.Debug("warning", "pos", n.Pos().String(), "msg", msg)
	c.diag.Warning(msg, n.Tok())
}

// later returns whichever of a and b appears later in the source. Duplicate
// declarations are reported at the second occurrence.
func later(a, b syntax.Node) syntax.Node {
	if a.Pos().Before(b.Pos()) {
		return b
	}
	return a
}
