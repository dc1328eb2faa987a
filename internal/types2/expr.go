package types2

import (
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// expr analyzes e and returns the expression that takes its place in the
// tree. The result differs from e when e is rewritten, for example when a
// cast turns out to be a no-op or becomes a boxing constructor. Analysis
// is one-shot: an analyzed expression is returned as is.
func (c *Checker) expr(e syntax.Expr) (syntax.Expr, error) {
	if e.Analyzed() {
		return e, nil
	}
	e.MarkAnalyzed()

	switch e := e.(type) {
	case *syntax.ExprStmt:
		return c.root(e)
	case *syntax.LiteralExpr:
		return c.literal(e)
	case *syntax.IdentExpr:
		return c.ident(e)
	case *syntax.ThisExpr:
		return c.this(e)
	case *syntax.BaseExpr:
		return c.base(e)
	case *syntax.ClassRefExpr:
		return c.classRef(e)
	case *syntax.FieldAccessExpr:
		return c.fieldAccess(e)
	case *syntax.MethodCallExpr:
		return c.methodCall(e)
	case *syntax.NewExpr:
		return c.newExpr(e)
	case *syntax.CastExpr:
		return c.cast(e)
	case *syntax.AssignmentExpr:
		return c.assignment(e)
	case *syntax.BinaryMathExpr:
		return c.binary(e)
	case *syntax.ComparisonExpr:
		return c.comparison(e)
	case *syntax.LogicalExpr:
		return c.logical(e)
	case *syntax.TernaryExpr:
		return c.ternary(e)
	case *syntax.TypeTestExpr:
		return c.typeTest(e)
	case *syntax.PrefixExpr:
		return c.prefix(e)
	case *syntax.PostfixExpr:
		return c.postfix(e)
	case *syntax.IndexExpr:
		return c.index(e)
	case *syntax.SliceExpr:
		return c.slice(e)
	case *syntax.CommaExpr:
		return c.comma(e)
	}
	return nil, c.internalf(e, "Unexpected expression %T.", e)
}

// subexpr analyzes the operand x of parent and puts the result in x's
// slot. The caller stores the returned expression in its typed field.
func (c *Checker) subexpr(parent syntax.Node, x syntax.Expr) (syntax.Expr, error) {
	r, err := c.expr(x)
	if err != nil {
		return nil, err
	}
	if r != x {
		syntax.ReplaceChild(parent, x, r)
	}
	return r, nil
}

// root analyzes an expression root. Roots marked constant must fold.
func (c *Checker) root(s *syntax.ExprStmt) (syntax.Expr, error) {
	x, err := c.subexpr(s, s.X)
	if err != nil {
		return nil, err
	}
	s.X = x
	s.SetType(x.Type())
	if s.Const {
		if _, err := syntax.Evaluate(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *Checker) literal(e *syntax.LiteralExpr) (syntax.Expr, error) {
	switch e.Kind {
	case syntax.IntLit:
		if _, err := syntax.Evaluate(e); err != nil {
			return nil, err
		}
		e.SetType(types.Typ[types.Int])
	case syntax.FloatLit:
		if _, err := syntax.Evaluate(e); err != nil {
			return nil, err
		}
		e.SetType(types.Typ[types.Float])
	case syntax.StringLit:
		e.SetType(types.Typ[types.String])
	case syntax.True, syntax.False:
		e.SetType(types.Typ[types.Bool])
	case syntax.Null:
		e.SetType(types.Typ[types.Null])
	default:
		return nil, c.internalf(e, "Unexpected literal kind %s.", e.Kind)
	}
	return e, nil
}

func (c *Checker) comma(e *syntax.CommaExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	if e.Y, err = c.subexpr(e, e.Y); err != nil {
		return nil, err
	}
	e.SetType(e.Y.Type())
	return e, nil
}

// ----------------------------------------------------------------------------
// Casts

// castTo converts the analyzed operand x of parent to type to, inserting a
// cast node in x's slot when needed. It returns the expression now in the
// slot. An expression root is converted in place.
func (c *Checker) castTo(parent syntax.Node, x syntax.Expr, to types.Type, explicit bool) (syntax.Expr, error) {
	if s, ok := x.(*syntax.ExprStmt); ok {
		inner, err := c.castTo(s, s.X, to, explicit)
		if err != nil {
			return nil, err
		}
		s.X = inner
		s.SetType(inner.Type())
		return s, nil
	}
	if types.Identical(x.Type(), to) {
		return x, nil
	}
	cast := syntax.NewCastExpr(x.Tok(), to, x, explicit)
	syntax.ReplaceChild(parent, x, cast)
	r, err := c.expr(cast)
	if err != nil {
		return nil, err
	}
	return syntax.ReplaceChild(parent, cast, r).(syntax.Expr), nil
}

// cast resolves an explicit or inserted cast. Boxing replaces the cast with
// a constructor call on the box class; unboxing narrows the operand to the
// box class and calls its value accessor.
func (c *Checker) cast(e *syntax.CastExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	if e.Target, err = c.resolveType(e.Target, e); err != nil {
		return nil, err
	}

	from, to := x.Type(), e.Target
	switch types.Classify(c, from, to, e.Explicit) {
	case types.IdentityCast:
		return x, nil

	case types.BoxCast:
		box, _ := types.BoxClassOf(c, from).(*syntax.Class)
		if box == nil {
			return nil, c.internalf(e, "Data type '%s' has no box class.", from)
		}
		n := syntax.NewNewExpr(e.Tok(), box.ObjectType(), []syntax.Expr{x}, false)
		syntax.ReplaceChild(e.Parent(), e, n)
		return c.expr(n)

	case types.UnboxCast:
		box, _ := types.BoxClassOf(c, to).(*syntax.Class)
		if box == nil {
			return nil, c.internalf(e, "Data type '%s' has no box class.", to)
		}
		parent := e.Parent()
		recv := syntax.Expr(e)
		if types.Identical(from, box.ObjectType()) {
			recv = x
		} else {
			e.Target = box.ObjectType()
			e.SetType(e.Target)
		}
		call := syntax.NewMethodCallExpr(e.Tok(), recv, rtabi.MethodGetValue, nil)
		syntax.ReplaceChild(parent, e, call)
		r, err := c.expr(call)
		if err != nil {
			return nil, err
		}
		return c.castTo(parent, r, to, true)

	case types.ConvertCast:
		if !e.Explicit && types.IsFloat(from) && types.IsInt(to) {
			c.warnf(e, "Implicit conversion from '%s' to '%s' may lose precision.", from, to)
		}
		e.SetType(to)
		return e, nil
	}

	if e.Explicit {
		return nil, c.errorf(syntax.InvalidCastError, e, "Cannot cast value from '%s' to '%s'.", from, to)
	}
	return nil, c.errorf(syntax.ImplicitCastError, e, "Cannot implicitly cast value from '%s' to '%s'.", from, to)
}

// balance casts the operands of a binary operator to a common type:
// float if either is a float, otherwise the type the other implicitly
// casts to.
func (c *Checker) balance(parent syntax.Node, x, y syntax.Expr) (syntax.Expr, syntax.Expr, error) {
	xt, yt := x.Type(), y.Type()
	var t types.Type
	switch {
	case types.Identical(xt, yt):
		return x, y, nil
	case types.IsNumeric(xt) && types.IsNumeric(yt):
		t = types.Typ[types.Int]
		if types.IsFloat(xt) || types.IsFloat(yt) {
			t = types.Typ[types.Float]
		}
	case types.Classify(c, yt, xt, false) != types.InvalidCast:
		t = xt
	default:
		t = yt
	}
	x, err := c.castTo(parent, x, t, false)
	if err != nil {
		return nil, nil, err
	}
	y, err = c.castTo(parent, y, t, false)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// ----------------------------------------------------------------------------
// Operators

// lvalue checks that x can be assigned to. Index expressions bind their
// SetIndex method.
func (c *Checker) lvalue(x syntax.Expr, ignoreConst bool) error {
	var field *syntax.ClassMember
	switch x := syntax.Unwrap(x).(type) {
	case *syntax.IdentExpr:
		switch d := x.Decl.(type) {
		case *syntax.Variable:
			return nil
		case *syntax.ClassMember:
			field = d
		}
	case *syntax.FieldAccessExpr:
		field = x.Field
	case *syntax.IndexExpr:
		cls, err := c.classOf(x.X.Type(), x)
		if err != nil {
			return err
		}
		setter, err := c.findMethod(cls, rtabi.MethodSetIndex, []types.Type{x.Index.Type(), x.Type()}, false, nil, x)
		if err != nil {
			return err
		}
		if setter == nil || setter.Static {
			return c.errorf(syntax.StructuralError, x, "Illegal l-value for assignment expression.")
		}
		if err := c.checkAccess(setter, x); err != nil {
			return err
		}
		x.Setter = setter
		return nil
	}
	if field == nil || !field.IsField() {
		return c.errorf(syntax.StructuralError, x, "Illegal l-value for assignment expression.")
	}
	if field.Const && !ignoreConst {
		return c.errorf(syntax.StructuralError, x, "Illegal l-value for assignment expression, l-value was declared constant.")
	}
	return nil
}

func (c *Checker) assignment(e *syntax.AssignmentExpr) (syntax.Expr, error) {
	lhs, err := c.subexpr(e, e.LHS)
	if err != nil {
		return nil, err
	}
	e.LHS = lhs
	rhs, err := c.subexpr(e, e.RHS)
	if err != nil {
		return nil, err
	}
	e.RHS = rhs
	if err := c.lvalue(lhs, e.IgnoreConst); err != nil {
		return nil, err
	}

	lt, rt := lhs.Type(), rhs.Type()
	mismatch := func() error {
		return c.errorf(syntax.TypeMismatchError, e, "Assignment operator '%s' cannot be used on types '%s' and '%s'.", e.Op, lt, rt)
	}
	switch e.Op {
	case syntax.Assign:
	case syntax.RemAssign, syntax.AndAssign, syntax.OrAssign, syntax.XorAssign, syntax.ShlAssign, syntax.ShrAssign:
		if !types.IsInt(lt) {
			return nil, mismatch()
		}
	case syntax.AddAssign:
		if !types.IsString(lt) && !types.IsNumeric(lt) {
			return nil, mismatch()
		}
	case syntax.SubAssign, syntax.MulAssign, syntax.DivAssign:
		if types.IsString(lt) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Invalid operator, strings only supports concatination.")
		}
		if !types.IsNumeric(lt) {
			return nil, mismatch()
		}
	default:
		return nil, c.internalf(e, "Unexpected assignment operator %s.", e.Op)
	}

	if e.RHS, err = c.castTo(e, rhs, lt, false); err != nil {
		return nil, err
	}
	e.SetType(lt)
	return e, nil
}

func (c *Checker) binary(e *syntax.BinaryMathExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	y, err := c.subexpr(e, e.Y)
	if err != nil {
		return nil, err
	}
	e.Y = y

	xt, yt := x.Type(), y.Type()
	switch e.Op {
	case syntax.Add:
		if types.IsString(xt) || types.IsString(yt) {
			str := types.Typ[types.String]
			if e.X, err = c.castTo(e, x, str, false); err != nil {
				return nil, err
			}
			if e.Y, err = c.castTo(e, y, str, false); err != nil {
				return nil, err
			}
			e.SetType(str)
			return e, nil
		}
		fallthrough

	case syntax.Sub, syntax.Mul, syntax.Div:
		if types.IsString(xt) || types.IsString(yt) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Invalid operator, strings only supports concatination.")
		}
		if !types.IsNumeric(xt) || !types.IsNumeric(yt) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' cannot be used on types '%s' and '%s'.", e.Op, xt, yt)
		}
		if e.X, e.Y, err = c.balance(e, x, y); err != nil {
			return nil, err
		}

	case syntax.Rem, syntax.And, syntax.Or, syntax.Xor, syntax.Shl, syntax.Shr:
		if !types.IsInt(xt) || !types.IsInt(yt) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' can only be used on integer operands, got '%s' and '%s'.", e.Op, xt, yt)
		}

	default:
		return nil, c.internalf(e, "Unexpected binary operator %s.", e.Op)
	}
	e.SetType(e.X.Type())
	return e, nil
}

// isReference reports whether values of t are object references.
func isReference(t types.Type) bool {
	switch t.(type) {
	case *types.Object, *types.Array:
		return true
	}
	return types.IsNull(t)
}

func (c *Checker) comparison(e *syntax.ComparisonExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	y, err := c.subexpr(e, e.Y)
	if err != nil {
		return nil, err
	}
	e.Y = y

	xt, yt := x.Type(), y.Type()
	equality := e.Op == syntax.Eql || e.Op == syntax.Neq
	switch {
	case types.IsNumeric(xt) && types.IsNumeric(yt):
	case types.IsString(xt) && types.IsString(yt):
	case equality && types.IsBool(xt) && types.IsBool(yt):
	case equality && types.IsString(xt) && types.IsNull(yt), equality && types.IsNull(xt) && types.IsString(yt):
	case equality && isReference(xt) && isReference(yt):
		if !types.CanCast(c, xt, yt) && !types.CanCast(c, yt, xt) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Cannot compare unrelated types '%s' and '%s'.", xt, yt)
		}
		e.SetType(types.Typ[types.Bool])
		return e, nil
	default:
		return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' cannot be used on types '%s' and '%s'.", e.Op, xt, yt)
	}
	if e.X, e.Y, err = c.balance(e, x, y); err != nil {
		return nil, err
	}
	e.SetType(types.Typ[types.Bool])
	return e, nil
}

func (c *Checker) logical(e *syntax.LogicalExpr) (syntax.Expr, error) {
	var err error
	if e.X, err = c.condition(e, e.X); err != nil {
		return nil, err
	}
	if e.Y, err = c.condition(e, e.Y); err != nil {
		return nil, err
	}
	e.SetType(types.Typ[types.Bool])
	return e, nil
}

// condition analyzes x and converts it to bool.
func (c *Checker) condition(parent syntax.Node, x syntax.Expr) (syntax.Expr, error) {
	x, err := c.subexpr(parent, x)
	if err != nil {
		return nil, err
	}
	return c.castTo(parent, x, types.Typ[types.Bool], false)
}

func (c *Checker) ternary(e *syntax.TernaryExpr) (syntax.Expr, error) {
	var err error
	if e.Cond, err = c.condition(e, e.Cond); err != nil {
		return nil, err
	}
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	y, err := c.subexpr(e, e.Y)
	if err != nil {
		return nil, err
	}
	if e.X, e.Y, err = c.balance(e, x, y); err != nil {
		return nil, err
	}
	e.SetType(e.X.Type())
	return e, nil
}

func (c *Checker) typeTest(e *syntax.TypeTestExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	if e.Target, err = c.resolveType(e.Target, e); err != nil {
		return nil, err
	}
	if _, ok := x.Type().(*types.Object); !ok {
		return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' can only be used on object types, got '%s'.", e.Op, x.Type())
	}
	if _, ok := e.Target.(*types.Object); !ok {
		return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' can only test for object types, got '%s'.", e.Op, e.Target)
	}
	if e.Op == syntax.Is {
		e.SetType(types.Typ[types.Bool])
	} else {
		e.SetType(e.Target)
	}
	return e, nil
}

func (c *Checker) prefix(e *syntax.PrefixExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	t := x.Type()

	switch e.Op {
	case syntax.Inc, syntax.Dec:
		if !types.IsNumeric(t) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' cannot be used on type '%s'.", e.Op, t)
		}
		if err := c.lvalue(x, false); err != nil {
			return nil, err
		}
	case syntax.Add, syntax.Sub:
		if !types.IsNumeric(t) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' cannot be used on type '%s'.", e.Op, t)
		}
	case syntax.Tilde:
		if !types.IsInt(t) {
			return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' can only be used on integer operands, got '%s'.", e.Op, t)
		}
	case syntax.Not, syntax.NotNot:
		if e.X, err = c.castTo(e, x, types.Typ[types.Bool], false); err != nil {
			return nil, err
		}
	default:
		return nil, c.internalf(e, "Unexpected prefix operator %s.", e.Op)
	}
	e.SetType(e.X.Type())
	return e, nil
}

func (c *Checker) postfix(e *syntax.PostfixExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	if !types.IsNumeric(x.Type()) {
		return nil, c.errorf(syntax.TypeMismatchError, e, "Operator '%s' cannot be used on type '%s'.", e.Op, x.Type())
	}
	if err := c.lvalue(x, false); err != nil {
		return nil, err
	}
	e.SetType(x.Type())
	return e, nil
}

// ----------------------------------------------------------------------------
// Indexing

func (c *Checker) index(e *syntax.IndexExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x
	idx, err := c.subexpr(e, e.Index)
	if err != nil {
		return nil, err
	}
	e.Index = idx

	cls, err := c.classOf(x.Type(), e)
	if err != nil {
		return nil, err
	}
	getter, err := c.findMethod(cls, rtabi.MethodGetIndex, []types.Type{idx.Type()}, false, nil, e)
	if err != nil {
		return nil, err
	}
	if getter == nil || getter.Static {
		return nil, c.errorf(syntax.StructuralError, e, "Data type does not support indexing, no GetIndex method defined.")
	}
	if err := c.checkAccess(getter, e); err != nil {
		return nil, err
	}
	if e.Index, err = c.castTo(e, idx, getter.Args[0].Type, false); err != nil {
		return nil, err
	}
	e.Getter = getter
	e.SetType(getter.ReturnType)
	return e, nil
}

func (c *Checker) slice(e *syntax.SliceExpr) (syntax.Expr, error) {
	x, err := c.subexpr(e, e.X)
	if err != nil {
		return nil, err
	}
	e.X = x

	cls, err := c.classOf(x.Type(), e)
	if err != nil {
		return nil, err
	}
	intType := types.Typ[types.Int]
	m, err := c.findMethod(cls, rtabi.MethodGetSlice, []types.Type{intType, intType}, true, nil, e)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Static {
		return nil, c.errorf(syntax.StructuralError, e, "Data type does not support slicing, no GetSlice method defined.")
	}
	if err := c.checkAccess(m, e); err != nil {
		return nil, err
	}

	for _, p := range []*syntax.Expr{&e.Start, &e.End} {
		if *p == nil {
			continue
		}
		r, err := c.subexpr(e, *p)
		if err != nil {
			return nil, err
		}
		if *p, err = c.castTo(e, r, intType, false); err != nil {
			return nil, err
		}
	}
	e.Method = m
	e.SetType(m.ReturnType)
	return e, nil
}
