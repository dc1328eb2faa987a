package types2

import (
	"log/slog"

	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// classState tracks how far a class has been analyzed.
type classState uint8

const (
	unchecked classState = iota
	inherited            // superclass, interfaces and box class bound
	signed               // member types resolved
	validated            // duplicates, overrides and conformance checked
	analyzed             // initializers and method bodies analyzed
)

// Checker is the semantic analyzer. It implements types.Env so that the
// type predicates can find the classes backing primitive and array types.
type Checker struct {
	conf *Config
	info *Info
	pkg  *syntax.Package
	diag syntax.Diagnostics
	log  *slog.Logger

	// Per-class progress. Stages are entered on demand, so a class
	// referenced before its declaration is analyzed far enough for the
	// reference to be resolved.
	state map[*syntax.Class]classState

	// Classes whose inheritance is being resolved, for cycle detection.
	inheriting map[*syntax.Class]bool

	// Generic instances whose validation and bodies are still pending.
	pending []*syntax.Class
}

var _ types.Env = (*Checker)(nil)

// Check analyzes pkg. The first error aborts the analysis.
func (c *Checker) Check(pkg *syntax.Package) error {
	c.pkg = pkg

	var classes []*syntax.Class
	for _, cls := range pkg.Classes() {
		// Classes analyzed by an earlier pass are complete.
		for _, inst := range cls.Instances() {
			if inst.Analyzed() {
				c.state[inst] = analyzed
			}
		}
		if cls.IsTemplate() {
			continue
		}
		if cls.Analyzed() {
			c.state[cls] = analyzed
		}
		classes = append(classes, cls)
	}
	c.log.Debug("analysis started", "classes", len(classes))

	// Stage 1: headers.
	for _, cls := range classes {
		if err := c.inherit(cls); err != nil {
			return err
		}
	}
	for _, cls := range classes {
		if err := c.signatures(cls); err != nil {
			return err
		}
	}
	for _, cls := range classes {
		if err := c.validate(cls); err != nil {
			return err
		}
	}

	// Stage 2: bodies.
	for _, cls := range classes {
		if err := c.body(cls); err != nil {
			return err
		}
	}

	// Generic instances created along the way, including those created
	// while draining the list.
	for len(c.pending) > 0 {
		inst := c.pending[0]
		c.pending = c.pending[1:]
		if err := c.validate(inst); err != nil {
			return err
		}
		if err := c.body(inst); err != nil {
			return err
		}
	}

	pkg.MarkAnalyzed()
	c.log.Debug("analysis finished", "instances", c.instanceCount())
	return nil
}

func (c *Checker) instanceCount() int {
	if c.info == nil {
		return 0
	}
	return len(c.info.Instances)
}

// lookupClass returns the top-level class named name, or nil.
func (c *Checker) lookupClass(name string) *syntax.Class {
	if c.pkg == nil {
		return nil
	}
	for _, cls := range c.pkg.Classes() {
		if cls.Ident == name {
			return cls
		}
	}
	return nil
}

// ClassOf implements types.Env.
func (c *Checker) ClassOf(t types.Type) types.Class {
	var cls *syntax.Class
	switch t := t.(type) {
	case *types.Basic:
		if name := rtabi.BackingClass(t.Kind()); name != "" {
			cls = c.lookupClass(name)
		}
	case *types.Array:
		if tmpl := c.lookupClass(rtabi.ArrayClass); tmpl != nil && tmpl.Generic {
			cls = tmpl.Instance([]types.Type{t.Elem()})
		}
	case *types.Object:
		return t.Class()
	case *types.ClassRef:
		return t.Class()
	}
	if cls == nil {
		return nil
	}
	return cls
}

// classOf returns the class whose members are reachable through a value of
// type t, instantiating the array class if needed. The class's member
// signatures are resolved.
func (c *Checker) classOf(t types.Type, at syntax.Node) (*syntax.Class, error) {
	var cls *syntax.Class
	switch t := t.(type) {
	case *types.Object:
		cls = t.Class().(*syntax.Class)
	case *types.ClassRef:
		cls = t.Class().(*syntax.Class)
	case *types.Basic:
		name := rtabi.BackingClass(t.Kind())
		if name == "" {
			return nil, c.errorf(syntax.TypeMismatchError, at, "Data type '%s' has no members.", t)
		}
		if cls = c.lookupClass(name); cls == nil {
			return nil, c.errorf(syntax.UnknownTypeError, at, "Data type '%s' requires runtime class '%s', which is not declared.", t, name)
		}
	case *types.Array:
		var err error
		if cls, err = c.arrayClass(t, at); err != nil {
			return nil, err
		}
	default:
		return nil, c.internalf(at, "Unexpected data type %v.", t)
	}
	if err := c.signatures(cls); err != nil {
		return nil, err
	}
	return cls, nil
}

// arrayClass returns the instance of the runtime array class for t.
func (c *Checker) arrayClass(t *types.Array, at syntax.Node) (*syntax.Class, error) {
	tmpl := c.lookupClass(rtabi.ArrayClass)
	if tmpl == nil || !tmpl.Generic {
		return nil, c.errorf(syntax.UnknownTypeError, at, "Data type '%s' requires generic runtime class '%s', which is not declared.", t, rtabi.ArrayClass)
	}
	return c.instantiate(tmpl, []types.Type{t.Elem()}, at)
}
