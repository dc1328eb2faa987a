package types2

import (
	"strings"

	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// ----------------------------------------------------------------------------
// Member lookup

// methods returns the methods named name declared in cls and its
// superclasses, nearest first, skipping constructors and ignore. With
// ifaces set, the methods of every implemented interface follow; an
// interface also sees the methods of the root class.
func (c *Checker) methods(cls *syntax.Class, name string, ignore syntax.Node, ifaces bool) ([]*syntax.ClassMember, error) {
	var list []*syntax.ClassMember
	collect := func(k *syntax.Class) error {
		if err := c.signatures(k); err != nil {
			return err
		}
		for _, m := range k.Members() {
			if m.IsMethod() && !m.Constructor && m.Ident == name && syntax.Node(m) != ignore {
				list = append(list, m)
			}
		}
		return nil
	}

	for k := cls; k != nil; k = k.Super {
		if err := collect(k); err != nil {
			return nil, err
		}
	}
	if !ifaces {
		return list, nil
	}
	for _, i := range allInterfaces(cls) {
		if err := collect(i); err != nil {
			return nil, err
		}
	}
	if cls.Interface {
		if root := c.lookupClass(rtabi.RootClass); root != nil {
			for k := root; k != nil; k = k.Super {
				if err := collect(k); err != nil {
					return nil, err
				}
			}
		}
	}
	return list, nil
}

// findMethod returns the method of cls named name that accepts args.
// An exact signature match wins; unless explicit is set, a method whose
// parameters the arguments implicitly cast to is accepted as well. It
// returns nil if nothing matches and an error if the match is ambiguous.
func (c *Checker) findMethod(cls *syntax.Class, name string, args []types.Type, explicit bool, ignore, at syntax.Node) (*syntax.ClassMember, error) {
	list, err := c.methods(cls, name, ignore, true)
	if err != nil {
		return nil, err
	}
	return c.selectMethod(list, name, args, explicit, at)
}

// classMethod returns the method of cls or its superclasses with exactly
// the signature name(args), or nil. Interfaces are not searched.
func (c *Checker) classMethod(cls *syntax.Class, name string, args []types.Type) *syntax.ClassMember {
	list, err := c.methods(cls, name, nil, false)
	if err != nil {
		return nil
	}
	for _, m := range list {
		if identicalArgs(m.ArgTypes(), args) {
			return m
		}
	}
	return nil
}

// selectMethod picks the method of cands to call with args. cands are
// ordered nearest class first, so an override hides the method it
// overrides.
func (c *Checker) selectMethod(cands []*syntax.ClassMember, name string, args []types.Type, explicit bool, at syntax.Node) (*syntax.ClassMember, error) {
	for _, m := range cands {
		if identicalArgs(m.ArgTypes(), args) {
			return m, nil
		}
	}
	if explicit {
		return nil, nil
	}

	var match []*syntax.ClassMember
next:
	for _, m := range cands {
		if len(args) < m.RequiredArgs() || len(args) > len(m.Args) {
			continue
		}
		for i, a := range args {
			if types.Classify(c, a, m.Args[i].Type, false) == types.InvalidCast {
				continue next
			}
		}
		for _, o := range match {
			if identicalArgs(o.ArgTypes(), m.ArgTypes()) {
				continue next
			}
		}
		match = append(match, m)
	}

	switch len(match) {
	case 0:
		return nil, nil
	case 1:
		return match[0], nil
	}
	sigs := make([]string, len(match))
	for i, m := range match {
		sigs[i] = m.Signature()
	}
	return nil, c.errorf(syntax.StructuralError, at, "Ambiguous call to method '%s(%s)', candidates are: %s.",
		name, types.TypeList(args), strings.Join(sigs, ", "))
}

// findField returns the field named name of cls or its superclasses.
func (c *Checker) findField(cls *syntax.Class, name string) (*syntax.ClassMember, error) {
	for k := cls; k != nil; k = k.Super {
		if err := c.signatures(k); err != nil {
			return nil, err
		}
		for _, m := range k.Members() {
			if m.IsField() && m.Ident == name {
				return m, nil
			}
		}
	}
	return nil, nil
}

// constructor returns the constructor of cls accepting args. ok is false
// when no constructor matches; a class that declares no constructor has
// an implicit one without arguments, reported as (nil, true).
func (c *Checker) constructor(cls *syntax.Class, args []types.Type, at syntax.Node) (m *syntax.ClassMember, ok bool, err error) {
	var ctors []*syntax.ClassMember
	for _, m := range cls.Members() {
		if m.Constructor {
			ctors = append(ctors, m)
		}
	}
	if len(ctors) == 0 {
		return nil, len(args) == 0, nil
	}
	m, err = c.selectMethod(ctors, cls.Ident, args, false, at)
	return m, m != nil, err
}

// ----------------------------------------------------------------------------
// Access

// sameClass reports whether x and y are the same class, treating a generic
// template and its instances as one.
func sameClass(x, y *syntax.Class) bool {
	if x == nil || y == nil {
		return false
	}
	tx, ty := x, y
	if x.Template != nil {
		tx = x.Template
	}
	if y.Template != nil {
		ty = y.Template
	}
	return tx == ty
}

// checkAccess reports an access violation if m is not visible from at.
func (c *Checker) checkAccess(m *syntax.ClassMember, at syntax.Node) error {
	owner := m.Class()
	ctx := syntax.FindClassScope(at)
	switch m.Access {
	case syntax.Private:
		if !sameClass(ctx, owner) {
			return c.errorf(syntax.AccessViolationError, at, "Cannot access private member '%s' of class '%s'.", m.Ident, owner.Name())
		}
	case syntax.Protected:
		if sameClass(ctx, owner) {
			return nil
		}
		for k := ctx; k != nil; k = k.Super {
			if sameClass(k, owner) {
				return nil
			}
		}
		return c.errorf(syntax.AccessViolationError, at, "Cannot access protected member '%s' of class '%s'.", m.Ident, owner.Name())
	}
	return nil
}
