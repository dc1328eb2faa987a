package types2

import (
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// ----------------------------------------------------------------------------
// Class headers

// inherit binds the superclass, interfaces and box class of cls.
func (c *Checker) inherit(cls *syntax.Class) error {
	if c.state[cls] >= inherited || c.inheriting[cls] {
		return nil
	}
	c.inheriting[cls] = true
	defer delete(c.inheriting, cls)

	for _, t := range cls.Inherited {
		id, ok := t.(*types.Identifier)
		if !ok {
			return c.internalf(cls, "Unexpected inherited data type %v.", t)
		}
		base, _, err := c.lookupType(id, cls)
		if err != nil {
			return err
		}
		if base == nil {
			return c.errorf(syntax.UnknownTypeError, cls, "Identifier '%s' does not reference a class or interface.", id)
		}
		if base == cls || c.inheriting[base] {
			return c.errorf(syntax.StructuralError, cls, "Class '%s' cannot inherit from itself.", cls.Name())
		}

		if base.Interface {
			for _, i := range cls.Interfaces {
				if i == base {
					return c.errorf(syntax.StructuralError, cls, "Class '%s' implements interface '%s' more than once.", cls.Name(), base.Name())
				}
			}
			cls.Interfaces = append(cls.Interfaces, base)
			continue
		}

		switch {
		case cls.Interface:
			return c.errorf(syntax.StructuralError, cls, "Interfaces can only inherit from other interfaces.")
		case cls.Super != nil:
			return c.errorf(syntax.StructuralError, cls, "Classes can only inherit from a single super class.")
		case base.Sealed:
			return c.errorf(syntax.StructuralError, cls, "Cannot inherit from sealed class '%s'.", base.Name())
		case base.Static:
			return c.errorf(syntax.StructuralError, cls, "Cannot inherit from static class '%s'.", base.Name())
		}
		cls.Super = base
	}

	if cls.Super == nil && !cls.InheritsNull && !cls.Interface && cls.Ident != rtabi.RootClass {
		if root := c.lookupClass(rtabi.RootClass); root != nil && root != cls {
			if err := c.inherit(root); err != nil {
				return err
			}
			cls.Super = root
		}
	}

	if cls.BoxIdent != "" {
		box, ok := syntax.FindDataTypeDeclaration(cls, cls.BoxIdent, nil).(*syntax.Class)
		if !ok {
			return c.errorf(syntax.UnknownTypeError, cls, "Unknown box class '%s'.", cls.BoxIdent)
		}
		if box.IsTemplate() || box.Interface {
			return c.errorf(syntax.StructuralError, cls, "Box class '%s' must be a concrete class.", cls.BoxIdent)
		}
		cls.BoxClass = box
		if err := c.bindClass(box, cls); err != nil {
			return err
		}
	}

	c.state[cls] = inherited
	return nil
}

// signatures resolves the field types, return types and parameter types of
// the members of cls.
func (c *Checker) signatures(cls *syntax.Class) error {
	if err := c.inherit(cls); err != nil {
		return err
	}
	if c.state[cls] >= signed {
		return nil
	}
	c.state[cls] = signed

	for _, m := range cls.Members() {
		t, err := c.resolveType(m.ReturnType, m)
		if err != nil {
			return err
		}
		m.ReturnType = t
		if m.IsField() && types.IsVoid(t) {
			return c.errorf(syntax.StructuralError, m, "Fields cannot be declared as void.")
		}
		for _, a := range m.Args {
			t, err := c.resolveType(a.Type, a)
			if err != nil {
				return err
			}
			if types.IsVoid(t) {
				return c.errorf(syntax.StructuralError, a, "Parameters cannot be declared as void.")
			}
			a.Type = t
		}
	}
	return nil
}

// validate checks the members of cls against each other and against the
// inherited members: duplicates, overrides, abstract methods and interface
// conformance. Parameter default values are analyzed here as well.
func (c *Checker) validate(cls *syntax.Class) error {
	if err := c.signatures(cls); err != nil {
		return err
	}
	if c.state[cls] >= validated {
		return nil
	}
	c.state[cls] = validated

	if cls.Super != nil {
		if err := c.validate(cls.Super); err != nil {
			return err
		}
	}
	for _, i := range cls.Interfaces {
		if err := c.validate(i); err != nil {
			return err
		}
	}

	for _, m := range cls.Members() {
		if err := c.checkMember(cls, m); err != nil {
			return err
		}
	}
	if !cls.Abstract && !cls.Interface {
		if err := c.checkAbstract(cls); err != nil {
			return err
		}
		if err := c.checkInterfaces(cls); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkMember(cls *syntax.Class, m *syntax.ClassMember) error {
	switch {
	case m.IsField():
		if err := c.checkDuplicate(m, m.Ident); err != nil {
			return err
		}
	case m.Constructor:
		for _, o := range cls.Members() {
			if o != m && o.Constructor && identicalArgs(o.ArgTypes(), m.ArgTypes()) {
				return c.errorf(syntax.DuplicateIdentifierError, later(o, m), "Encountered duplicate constructor '%s'.", m.Signature())
			}
		}
	default:
		if err := c.checkDuplicateMethod(cls, m); err != nil {
			return err
		}
		if m.Abstract && !cls.Abstract && !cls.Interface {
			return c.errorf(syntax.StructuralError, m, "Abstract method '%s' can only be declared in an abstract class.", m.Ident)
		}
		if m.Static && cls.Interface {
			return c.errorf(syntax.StructuralError, m, "Interface methods cannot be static.")
		}
	}
	if cls.Static && !m.Static {
		return c.errorf(syntax.StructuralError, m, "Static class '%s' can only contain static members.", cls.Name())
	}

	for _, a := range m.Args {
		if err := c.variable(a); err != nil {
			return err
		}
	}
	return nil
}

// checkDuplicate reports a declaration named name visible from d other
// than d itself.
func (c *Checker) checkDuplicate(d syntax.Decl, name string) error {
	if dup := syntax.FindDeclaration(d, name, d); dup != nil {
		return c.errorf(syntax.DuplicateIdentifierError, later(d, dup), "Encountered duplicate identifier '%s'.", name)
	}
	return nil
}

// checkDuplicateMethod looks for a method with the same signature as m in
// cls and its superclasses. A virtual method found in a different class
// body is not a duplicate when m is marked override; m then overrides it.
// An override without any such method is a structural error.
func (c *Checker) checkDuplicateMethod(cls *syntax.Class, m *syntax.ClassMember) error {
	if m == nil {
		return c.internalf(cls, "Internal error, no method specified when looking for duplicate identifier.")
	}
	list, err := c.methods(cls, m.Ident, m, false)
	if err != nil {
		return err
	}
	found, err := c.selectMethod(list, m.Ident, m.ArgTypes(), true, m)
	if err != nil {
		return err
	}
	// Overriding a method of an ancestor makes that method virtual.
	if found != nil && m.Override && !found.Virtual && found.Parent() != m.Parent() && !found.Static {
		found.Virtual = true
	}
	if m.Override && found == nil {
		return c.errorf(syntax.StructuralError, m, "Attempt to override unknown virtual method '%s'.", m.Ident)
	}
	if found != nil && found.Virtual && m.Virtual && found.Parent() != m.Parent() && m.Override {
		m.Overrides = found
		if !types.Identical(found.ReturnType, m.ReturnType) {
			return c.errorf(syntax.StructuralError, m, "Method '%s' overrides a method with return type '%s' but returns '%s'.",
				m.Ident, found.ReturnType, m.ReturnType)
		}
		found = nil
	}
	if found != nil {
		return c.errorf(syntax.DuplicateIdentifierError, later(found, m), "Encountered duplicate method '%s'.", m.Ident)
	}
	return nil
}

// checkAbstract reports abstract methods of the superclasses of the
// concrete class cls that it leaves unimplemented.
func (c *Checker) checkAbstract(cls *syntax.Class) error {
	for k := cls.Super; k != nil; k = k.Super {
		for _, m := range k.Members() {
			if !m.Abstract {
				continue
			}
			impl := c.classMethod(cls, m.Ident, m.ArgTypes())
			if impl == nil || impl.Abstract {
				return c.errorf(syntax.StructuralError, cls, "Class '%s' does not implement abstract method '%s' of class '%s'.",
					cls.Name(), m.Signature(), k.Name())
			}
		}
	}
	return nil
}

// checkInterfaces reports interface methods the concrete class cls does
// not implement.
func (c *Checker) checkInterfaces(cls *syntax.Class) error {
	for _, i := range allInterfaces(cls) {
		for _, m := range i.Members() {
			if !m.IsMethod() {
				continue
			}
			impl := c.classMethod(cls, m.Ident, m.ArgTypes())
			if impl == nil || impl.Abstract {
				return c.errorf(syntax.StructuralError, cls, "Class '%s' does not implement interface method '%s' of '%s'.",
					cls.Name(), m.Signature(), i.Name())
			}
			if !types.Identical(impl.ReturnType, m.ReturnType) {
				return c.errorf(syntax.StructuralError, impl, "Method '%s' implements interface method of '%s' with return type '%s' but returns '%s'.",
					impl.Ident, i.Name(), m.ReturnType, impl.ReturnType)
			}
		}
	}
	return nil
}

// allInterfaces returns the interfaces cls implements directly, through
// its superclasses, or through other interfaces, without repetition.
func allInterfaces(cls *syntax.Class) []*syntax.Class {
	var list []*syntax.Class
	seen := make(map[*syntax.Class]bool)
	var visit func(*syntax.Class)
	visit = func(i *syntax.Class) {
		if seen[i] {
			return
		}
		seen[i] = true
		list = append(list, i)
		for _, j := range i.Interfaces {
			visit(j)
		}
	}
	for k := cls; k != nil; k = k.Super {
		for _, i := range k.Interfaces {
			visit(i)
		}
	}
	return list
}

// ----------------------------------------------------------------------------
// Class bodies

// body analyzes the field initializers and method bodies of cls.
func (c *Checker) body(cls *syntax.Class) error {
	if err := c.validate(cls); err != nil {
		return err
	}
	if c.state[cls] >= analyzed {
		return nil
	}
	c.state[cls] = analyzed
	cls.MarkAnalyzed()
	if cls.Body != nil {
		cls.Body.MarkAnalyzed()
	}

	for _, m := range cls.Members() {
		m.MarkAnalyzed()
		if m.IsField() {
			if err := c.fieldInit(m); err != nil {
				return err
			}
			continue
		}
		if m.Body != nil {
			if err := c.funcBody(m); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldInit analyzes the initializer of the field m. Constant fields must
// fold.
func (c *Checker) fieldInit(m *syntax.ClassMember) error {
	if m.Init == nil || m.Init.Analyzed() {
		return nil
	}
	if _, err := c.expr(m.Init); err != nil {
		return err
	}
	_, err := c.castTo(m, m.Init, m.ReturnType, false)
	return err
}

func (c *Checker) funcBody(m *syntax.ClassMember) error {
	if m.Body.Analyzed() {
		return nil
	}
	m.Body.MarkAnalyzed()
	return c.stmtList(m.Body)
}

// variable analyzes a local variable or parameter: its type, a duplicate
// check against the locals and parameters in scope, and its initializer.
func (c *Checker) variable(v *syntax.Variable) error {
	if v.Analyzed() {
		return nil
	}
	v.MarkAnalyzed()

	if err := c.varType(v); err != nil {
		return err
	}
	if dup := syntax.FindLocalDeclaration(v, v.Ident, v); dup != nil {
		return c.errorf(syntax.DuplicateIdentifierError, later(v, dup), "Encountered duplicate identifier '%s'.", v.Ident)
	}
	if v.Init == nil {
		return nil
	}
	x, err := c.subexpr(v, v.Init)
	if err != nil {
		return err
	}
	v.Init, err = c.castTo(v, x, v.Type, false)
	return err
}

// varType resolves the declared type of v.
// Basic types arrive resolved from the parser, so void is checked on
// every path.
func (c *Checker) varType(v *syntax.Variable) error {
	if !types.IsResolved(v.Type) {
		t, err := c.resolveType(v.Type, v)
		if err != nil {
			return err
		}
		v.Type = t
	}
	if types.IsVoid(v.Type) {
		return c.errorf(syntax.StructuralError, v, "Variables cannot be declared as void.")
	}
	return nil
}

func identicalArgs(x, y []types.Type) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !types.Identical(x[i], y[i]) {
			return false
		}
	}
	return true
}
