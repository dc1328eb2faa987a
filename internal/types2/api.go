package types2

import (
	"log/slog"

	"github.com/you-not-fish/lsc/internal/log"
	"github.com/you-not-fish/lsc/internal/syntax"
)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Diagnostics receives warnings.
	// If nil, warnings are dropped.
	Diagnostics syntax.Diagnostics

	// Logger receives debug traces (phases, generic instantiations).
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// Info holds the results of semantic analysis beyond the annotated tree.
type Info struct {
	// Instances lists every generic instance created, in creation order.
	Instances []*syntax.Class
}

// Check analyzes every class of pkg in place: types are resolved,
// expressions annotated with their result types, implicit conversions
// inserted and generic instances generated. It returns the first error
// encountered, as a *syntax.Error.
func Check(pkg *syntax.Package, conf *Config, info *Info) error {
	return NewChecker(conf, info).Check(pkg)
}

// NewChecker returns a checker for the given configuration. info may be
// nil.
func NewChecker(conf *Config, info *Info) *Checker {
	if conf == nil {
		conf = &Config{}
	}
	c := &Checker{
		conf:       conf,
		info:       info,
		diag:       conf.Diagnostics,
		log:        conf.Logger,
		state:      make(map[*syntax.Class]classState),
		inheriting: make(map[*syntax.Class]bool),
	}
	if c.diag == nil {
		c.diag = nopDiagnostics{}
	}
	if c.log == nil {
		c.log = log.Discard()
	}
	return c
}

type nopDiagnostics struct{}

func (nopDiagnostics) Warning(string, syntax.Token) {}
