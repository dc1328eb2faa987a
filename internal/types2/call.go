package types2

import (
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// basicNames maps the keyword type names usable as class references, as
// in int.Parse(s), to their kinds.
var basicNames = map[string]types.BasicKind{
	"bool":   types.Bool,
	"int":    types.Int,
	"float":  types.Float,
	"string": types.String,
}

// ident resolves a name to a variable, field, class or alias.
func (c *Checker) ident(e *syntax.IdentExpr) (syntax.Expr, error) {
	if len(e.GenericArgs) > 0 {
		cls, _, err := c.lookupType(types.NewIdentifier(e.Name, e.GenericArgs), e)
		if err != nil {
			return nil, err
		}
		if cls == nil {
			return nil, c.errorf(syntax.UnknownTypeError, e, "Identifier '%s' does not reference a class.", e.Name)
		}
		e.Decl = cls
		e.SetType(cls.RefType())
		return e, nil
	}

	if k, ok := basicNames[e.Name]; ok {
		name := rtabi.BackingClass(k)
		cls := c.lookupClass(name)
		if cls == nil {
			return nil, c.errorf(syntax.UnknownTypeError, e, "Data type '%s' requires runtime class '%s', which is not declared.", e.Name, name)
		}
		if err := c.bindClass(cls, e); err != nil {
			return nil, err
		}
		e.Decl = cls
		e.SetType(cls.RefType())
		return e, nil
	}

	switch d := syntax.FindDeclaration(e, e.Name, nil).(type) {
	case *syntax.Variable:
		if !d.Param && e.Pos().Filename() == d.Pos().Filename() && e.Pos().Before(d.Pos()) {
			break
		}
		if err := c.varType(d); err != nil {
			return nil, err
		}
		e.Decl = d
		e.SetType(d.Type)
		return e, nil

	case *syntax.ClassMember:
		if !d.IsField() {
			return nil, c.errorf(syntax.StructuralError, e, "Method '%s' cannot be used as a value.", d.Ident)
		}
		if !d.Static {
			if m := syntax.FindMemberScope(e); m == nil || m.Static {
				return nil, c.errorf(syntax.AccessViolationError, e, "Cannot access instance member '%s' from a static context.", d.Ident)
			}
		}
		if err := c.useField(d, e); err != nil {
			return nil, err
		}
		e.Decl = d
		e.SetType(d.ReturnType)
		return e, nil

	case *syntax.Class:
		cls, err := c.classFor(d, nil, e)
		if err != nil {
			return nil, err
		}
		e.Decl = cls
		e.SetType(cls.RefType())
		return e, nil

	case *syntax.Alias:
		var cls types.Class
		if d.Type != nil {
			cls = types.ClassOf(c, d.Type)
		}
		if cls == nil {
			return nil, c.errorf(syntax.UnknownIdentifierError, e, "Generic parameter '%s' bound to '%s' cannot be used as a value.", e.Name, d.Type)
		}
		e.Decl = d
		e.SetType(cls.RefType())
		return e, nil
	}
	return nil, c.errorf(syntax.UnknownIdentifierError, e, "Undefined identifier '%s'.", e.Name)
}

// useField checks that the field f may be used from at and prepares
// constant fields for folding.
func (c *Checker) useField(f *syntax.ClassMember, at syntax.Node) error {
	if err := c.signatures(f.Class()); err != nil {
		return err
	}
	if err := c.checkAccess(f, at); err != nil {
		return err
	}
	if f.Const {
		return c.fieldInit(f)
	}
	return nil
}

func (c *Checker) this(e *syntax.ThisExpr) (syntax.Expr, error) {
	m := syntax.FindMemberScope(e)
	if m == nil {
		return nil, c.errorf(syntax.StructuralError, e, "this keyword can only be used in class members.")
	}
	if m.Static {
		return nil, c.errorf(syntax.StructuralError, e, "this keyword cannot be used in static methods.")
	}
	e.SetType(m.Class().ObjectType())
	return e, nil
}

func (c *Checker) base(e *syntax.BaseExpr) (syntax.Expr, error) {
	m := syntax.FindMemberScope(e)
	if m == nil || !m.IsMethod() {
		return nil, c.errorf(syntax.StructuralError, e, "base keyword can only be used in class methods.")
	}
	if m.Static {
		return nil, c.errorf(syntax.StructuralError, e, "base keyword cannot be used in static methods.")
	}
	cls := m.Class()
	if cls.Super == nil {
		return nil, c.errorf(syntax.StructuralError, e, "base keyword cannot be used in class without super class.")
	}
	e.SetType(cls.Super.ObjectType())
	return e, nil
}

func (c *Checker) classRef(e *syntax.ClassRefExpr) (syntax.Expr, error) {
	if e.Class == nil {
		e.Class = syntax.FindClassScope(e)
	}
	if e.Class == nil {
		return nil, c.internalf(e, "Class reference outside of a class.")
	}
	e.SetType(e.Class.RefType())
	return e, nil
}

// isClassRef reports whether t refers to a class rather than an instance.
func isClassRef(t types.Type) bool {
	_, ok := t.(*types.ClassRef)
	return ok
}

func (c *Checker) fieldAccess(e *syntax.FieldAccessExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x

	cls, err := c.receiverClass(x, e)
	if err != nil {
		return nil, err
	}
	f, err := c.findField(cls, e.Name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, c.errorf(syntax.UnknownIdentifierError, e, "Class '%s' has no field named '%s'.", cls.Name(), e.Name)
	}
	if isClassRef(x.Type()) && !f.Static {
		return nil, c.errorf(syntax.AccessViolationError, e, "Cannot access instance field '%s' through class reference '%s'.", f.Ident, cls.Name())
	}
	if !isClassRef(x.Type()) && f.Static {
		return nil, c.errorf(syntax.AccessViolationError, e, "Cannot access static field '%s' through an instance, use '%s.%s' instead.", f.Ident, f.Class().Name(), f.Ident)
	}
	if err := c.useField(f, e); err != nil {
		return nil, err
	}
	e.Field = f
	e.SetType(f.ReturnType)
	return e, nil
}

// receiverClass returns the class whose members are selected by x.
func (c *Checker) receiverClass(x syntax.Expr, at syntax.Node) (*syntax.Class, error) {
	t := x.Type()
	if types.IsVoid(t) || types.IsNull(t) {
		return nil, c.errorf(syntax.TypeMismatchError, at, "Data type '%s' has no members.", t)
	}
	return c.classOf(t, at)
}

// args analyzes the arguments of a call and returns their types.
func (c *Checker) args(parent syntax.Node, list []syntax.Expr) ([]types.Type, error) {
	argTypes := make([]types.Type, len(list))
	for i, a := range list {
		r, err := c.subexpr(parent, a)
		if err != nil {
			return nil, err
		}
		list[i] = r
		argTypes[i] = r.Type()
	}
	return argTypes, nil
}

// bindArgs converts each argument to the type of its parameter.
func (c *Checker) bindArgs(parent syntax.Node, list []syntax.Expr, m *syntax.ClassMember) error {
	for i, a := range list {
		r, err := c.castTo(parent, a, m.Args[i].Type, false)
		if err != nil {
			return err
		}
		list[i] = r
	}
	return nil
}

func (c *Checker) methodCall(e *syntax.MethodCallExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	argTypes, err := c.args(e, e.Args)
	if err != nil {
		return nil, err
	}

	cls, err := c.receiverClass(x, e)
	if err != nil {
		return nil, err
	}
	m, err := c.findMethod(cls, e.Name, argTypes, false, nil, e)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, c.errorf(syntax.UnknownIdentifierError, e, "Class '%s' has no method '%s' accepting arguments (%s).",
			cls.Name(), e.Name, types.TypeList(argTypes))
	}

	switch recv := x.(type) {
	case *syntax.ThisExpr:
		if m.Static {
			ref := syntax.NewClassRefExpr(recv.Tok())
			ref.Class = syntax.FindClassScope(e)
			ref.SetType(ref.Class.RefType())
			ref.MarkAnalyzed()
			e.X = syntax.ReplaceChild(e, recv, ref).(syntax.Expr)
		}
	case *syntax.ClassRefExpr:
		if !m.Static {
			return nil, c.errorf(syntax.AccessViolationError, e, "Cannot call instance method '%s' from a static context.", m.Ident)
		}
	case *syntax.BaseExpr:
		if m.Abstract {
			return nil, c.errorf(syntax.StructuralError, e, "Cannot call abstract method '%s' of base class.", m.Ident)
		}
	}
	switch {
	case isClassRef(e.X.Type()) && !m.Static:
		return nil, c.errorf(syntax.AccessViolationError, e, "Cannot call instance method '%s' through class reference '%s'.", m.Ident, cls.Name())
	case !isClassRef(e.X.Type()) && m.Static:
		return nil, c.errorf(syntax.AccessViolationError, e, "Cannot call static method '%s' through an instance, use '%s.%s' instead.", m.Ident, m.Class().Name(), m.Ident)
	}
	if err := c.checkAccess(m, e); err != nil {
		return nil, err
	}
	if err := c.bindArgs(e, e.Args, m); err != nil {
		return nil, err
	}
	e.Method = m
	e.SetType(m.ReturnType)
	return e, nil
}

func (c *Checker) newExpr(e *syntax.NewExpr) (syntax.Expr, error) {
	t, err := c.resolveType(e.Target, e)
	if err != nil {
		return nil, err
	}
	e.Target = t

	if e.Array {
		if len(e.Args) != 1 {
			return nil, c.internalf(e, "Array allocation expects a single size expression.")
		}
		size, err := c.subexpr(e, e.Args[0])
		if err != nil {
			return nil, err
		}
		if e.Args[0], err = c.castTo(e, size, types.Typ[types.Int], false); err != nil {
			return nil, err
		}
		e.SetType(t)
		return e, nil
	}

	obj, ok := t.(*types.Object)
	if !ok {
		return nil, c.errorf(syntax.StructuralError, e, "Cannot instantiate data type '%s', only classes can be created with new.", t)
	}
	cls := obj.Class().(*syntax.Class)
	switch {
	case cls.Interface:
		return nil, c.errorf(syntax.StructuralError, e, "Cannot instantiate interface '%s'.", cls.Name())
	case cls.Abstract:
		return nil, c.errorf(syntax.StructuralError, e, "Cannot instantiate abstract class '%s'.", cls.Name())
	case cls.Static:
		return nil, c.errorf(syntax.StructuralError, e, "Cannot instantiate static class '%s'.", cls.Name())
	}
	if err := c.signatures(cls); err != nil {
		return nil, err
	}

	argTypes, err := c.args(e, e.Args)
	if err != nil {
		return nil, err
	}
	ctor, ok, err := c.constructor(cls, argTypes, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, c.errorf(syntax.UnknownIdentifierError, e, "Class '%s' has no constructor accepting arguments (%s).", cls.Name(), types.TypeList(argTypes))
	}
	if ctor != nil {
		if err := c.checkAccess(ctor, e); err != nil {
			return nil, err
		}
		if err := c.bindArgs(e, e.Args, ctor); err != nil {
			return nil, err
		}
	}
	e.Ctor = ctor
	e.SetType(obj)
	return e, nil
}
