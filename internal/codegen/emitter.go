package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting indented C++ text.
type emitter struct {
	w      io.Writer
	err    error // first write error
	tmp    int   // counter for generated locals (_t0, _t1, ...)
	indent int
}

// emit writes a formatted line at the current indentation.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, strings.Repeat("\t", e.indent)+format+"\n", args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// emitLabel writes a label line one level left of the current block.
func (e *emitter) emitLabel(text string) {
	e.indent--
	e.emit("%s", text)
	e.indent++
}

// open writes line and indents the lines that follow.
func (e *emitter) open(format string, args ...interface{}) {
	e.emit(format, args...)
	e.indent++
}

// close dedents and writes line.
func (e *emitter) close(format string, args ...interface{}) {
	e.indent--
	e.emit(format, args...)
}

// nextTmp returns the next generated local name.
func (e *emitter) nextTmp() string {
	name := fmt.Sprintf("_t%d", e.tmp)
	e.tmp++
	return name
}
