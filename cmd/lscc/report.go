package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/you-not-fish/lsc/internal/project"
	"github.com/you-not-fish/lsc/internal/syntax"
)

// printer writes diagnostics, optionally colored.
type printer struct {
	w     io.Writer
	err   *color.Color
	warn  *color.Color
	pos   *color.Color
	faint *color.Color
}

func newPrinter(w io.Writer, mode string) (*printer, error) {
	var enabled bool
	switch mode {
	case "", "auto":
		enabled = autoColor
	case "always":
		enabled = true
	case "never":
		enabled = false
	default:
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}
	p := &printer{
		w:     w,
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		pos:   color.New(color.Bold),
		faint: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.pos, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p, nil
}

// warning prints one warning.
func (p *printer) warning(w project.Warning) {
	if w.Pos.IsValid() {
		fmt.Fprintf(p.w, "%s: ", p.pos.Sprint(w.Pos))
	}
	fmt.Fprintf(p.w, "%s %s\n", p.warn.Sprint("warning:"), w.Msg)
}

// error prints a compile error with its kind. Internal errors carry the
// compiler call site.
func (p *printer) error(err error) {
	var e *syntax.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(p.w, "%s %v\n", p.err.Sprint("error:"), err)
		return
	}
	if e.Pos.IsValid() {
		fmt.Fprintf(p.w, "%s: ", p.pos.Sprint(e.Pos))
	}
	fmt.Fprintf(p.w, "%s %s %s\n", p.err.Sprint("error:"), e.Msg, p.faint.Sprintf("[%s]", e.Kind))
	if e.Site != "" {
		fmt.Fprintf(p.w, "\t%s\n", p.faint.Sprintf("(at %s)", e.Site))
	}
}

// results prints the diagnostics of every unit. It fails with
// exitCompile if any unit failed.
func (p *printer) results(results []project.Result) error {
	for _, r := range results {
		for _, w := range r.Unit.Warnings() {
			p.warning(w)
		}
		if r.Err != nil {
			p.error(r.Err)
		}
	}
	if project.Failed(results) {
		return exitCode(exitCompile)
	}
	return nil
}
