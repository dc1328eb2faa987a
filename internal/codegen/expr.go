package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// valueCode formats a folded constant.
func valueCode(v syntax.Value) string {
	switch v.Kind {
	case syntax.BoolValue:
		return strconv.FormatBool(v.Bool)
	case syntax.IntValue:
		switch {
		case v.Int == math.MinInt32:
			return "(-2147483647 - 1)"
		case v.Int < 0:
			return "(" + strconv.Itoa(int(v.Int)) + ")"
		}
		return strconv.Itoa(int(v.Int))
	case syntax.FloatValue:
		f := float64(v.Float)
		switch {
		case math.IsInf(f, 1):
			return "INFINITY"
		case math.IsInf(f, -1):
			return "(-INFINITY)"
		case math.IsNaN(f):
			return "NAN"
		}
		s := strconv.FormatFloat(f, 'g', -1, 32)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		if f < 0 {
			return "(" + s + "f)"
		}
		return s + "f"
	}
	return rtabi.NativeString + "(u8" + strconv.Quote(v.Str) + ")"
}

// convert returns code, of type from, converted to type to.
func (g *Generator) convert(code string, from, to types.Type, explicit bool) (string, error) {
	switch {
	case types.Identical(from, to), types.IsNull(from):
		return code, nil
	case types.IsBool(to):
		return rtabi.FnToBool + "(" + code + ")", nil
	case types.IsString(to):
		return rtabi.FnToString + "(" + code + ")", nil
	}

	fb, fromBasic := from.(*types.Basic)
	_, toBasic := to.(*types.Basic)
	switch {
	case fromBasic && toBasic:
		return "static_cast<" + g.cppType(to) + ">(" + code + ")", nil

	case fromBasic && isObjectType(to):
		box := g.boxClass(fb)
		if box == nil {
			return "", syntax.Internalf(syntax.Token{}, "Data type '%s' has no box class.", from)
		}
		boxed := rtabi.FnNew + "<" + g.className(box) + ">(" + code + ")"
		return g.convert(boxed, box.ObjectType(), to, explicit)

	case toBasic && isObjectType(from):
		box := g.boxClass(to.(*types.Basic))
		if box == nil {
			return "", syntax.Internalf(syntax.Token{}, "Data type '%s' has no box class.", to)
		}
		unboxed := rtabi.FnCast + "<" + g.cppType(box.ObjectType()) + ">(" + code + ")->" + rtabi.MethodGetValue + "()"
		return "static_cast<" + g.cppType(to) + ">(" + unboxed + ")", nil
	}

	if f, ok := from.(*types.Object); ok {
		if t, ok := to.(*types.Object); ok && f.Class().Inherits(t.Class()) {
			return code, nil
		}
	}
	return rtabi.FnCast + "<" + g.cppType(to) + ">(" + code + ")", nil
}

// boxClass returns the class boxing values of t, or nil.
func (g *Generator) boxClass(t *types.Basic) types.Class {
	if g.env == nil {
		return nil
	}
	return types.BoxClassOf(g.env, t)
}

// operands translates a list of expressions.
func (g *Generator) operands(list ...syntax.Expr) ([]string, error) {
	codes := make([]string, len(list))
	for i, x := range list {
		code, err := syntax.TranslateExpr(g, x)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// args translates call arguments. Only comma expressions keep their
// enclosing parentheses.
func (g *Generator) args(list []syntax.Expr) ([]string, error) {
	codes, err := g.operands(list...)
	if err != nil {
		return nil, err
	}
	for i, x := range list {
		if _, ok := syntax.Unwrap(x).(*syntax.CommaExpr); !ok {
			codes[i] = stripParens(codes[i])
		}
	}
	return codes, nil
}

// receiver returns the code selecting members through x, including the
// selector.
func (g *Generator) receiver(x syntax.Expr) (string, error) {
	code, err := syntax.TranslateExpr(g, x)
	if err != nil {
		return "", err
	}
	return code + selector(x.Type()), nil
}

func (g *Generator) TranslateAssignmentExpr(e *syntax.AssignmentExpr) (string, error) {
	rhs, err := syntax.TranslateExpr(g, e.RHS)
	if err != nil {
		return "", err
	}
	if ix, ok := syntax.Unwrap(e.LHS).(*syntax.IndexExpr); ok && ix.Setter != nil {
		op := ""
		if e.Op != syntax.Assign {
			s := e.Op.String()
			op = s[:len(s)-1]
		}
		return g.store(ix, op, rhs)
	}
	lhs, err := syntax.TranslateExpr(g, e.LHS)
	if err != nil {
		return "", err
	}
	return "(" + lhs + " " + e.Op.String() + " " + rhs + ")", nil
}

// store writes v through the SetIndex method of ix. A non-empty op
// combines the current element with v first.
func (g *Generator) store(ix *syntax.IndexExpr, op, v string) (string, error) {
	recv, err := g.receiver(ix.X)
	if err != nil {
		return "", err
	}
	idx, err := syntax.TranslateExpr(g, ix.Index)
	if err != nil {
		return "", err
	}
	if op != "" {
		if ix.Getter == nil {
			return "", syntax.Internalf(ix.Tok(), "Index expression has no getter.")
		}
		v = "(" + recv + memberName(ix.Getter) + "(" + idx + ") " + op + " " + v + ")"
	}
	return recv + memberName(ix.Setter) + "(" + idx + ", " + v + ")", nil
}

func (g *Generator) binary(op syntax.Kind, x, y syntax.Expr) (string, error) {
	codes, err := g.operands(x, y)
	if err != nil {
		return "", err
	}
	return "(" + codes[0] + " " + op.String() + " " + codes[1] + ")", nil
}

func (g *Generator) TranslateBinaryMathExpr(e *syntax.BinaryMathExpr) (string, error) {
	return g.binary(e.Op, e.X, e.Y)
}

func (g *Generator) TranslateComparisonExpr(e *syntax.ComparisonExpr) (string, error) {
	return g.binary(e.Op, e.X, e.Y)
}

func (g *Generator) TranslateLogicalExpr(e *syntax.LogicalExpr) (string, error) {
	return g.binary(e.Op, e.X, e.Y)
}

func (g *Generator) TranslateTernaryExpr(e *syntax.TernaryExpr) (string, error) {
	codes, err := g.operands(e.Cond, e.X, e.Y)
	if err != nil {
		return "", err
	}
	return "(" + codes[0] + " ? " + codes[1] + " : " + codes[2] + ")", nil
}

func (g *Generator) TranslateTypeTestExpr(e *syntax.TypeTestExpr) (string, error) {
	x, err := syntax.TranslateExpr(g, e.X)
	if err != nil {
		return "", err
	}
	fn := rtabi.FnAsInstance
	if e.Op == syntax.Is {
		fn = rtabi.FnIsInstance
	}
	return fn + "<" + g.cppType(e.Target) + ">(" + x + ")", nil
}

func (g *Generator) TranslateCastExpr(e *syntax.CastExpr) (string, error) {
	x, err := syntax.TranslateExpr(g, e.X)
	if err != nil {
		return "", err
	}
	return g.convert(x, e.X.Type(), e.Target, e.Explicit)
}

// step translates ++ and -- applied to an indexed element.
func (g *Generator) step(op syntax.Kind, x syntax.Expr) (string, bool, error) {
	ix, ok := syntax.Unwrap(x).(*syntax.IndexExpr)
	if !ok || ix.Setter == nil {
		return "", false, nil
	}
	bin := "+"
	if op == syntax.Dec {
		bin = "-"
	}
	code, err := g.store(ix, bin, "1")
	return code, true, err
}

func (g *Generator) TranslatePrefixExpr(e *syntax.PrefixExpr) (string, error) {
	if e.Op == syntax.Inc || e.Op == syntax.Dec {
		if code, ok, err := g.step(e.Op, e.X); ok || err != nil {
			return code, err
		}
	}
	x, err := syntax.TranslateExpr(g, e.X)
	if err != nil {
		return "", err
	}
	return "(" + e.Op.String() + x + ")", nil
}

func (g *Generator) TranslatePostfixExpr(e *syntax.PostfixExpr) (string, error) {
	if code, ok, err := g.step(e.Op, e.X); ok || err != nil {
		return code, err
	}
	x, err := syntax.TranslateExpr(g, e.X)
	if err != nil {
		return "", err
	}
	return "(" + x + e.Op.String() + ")", nil
}

func (g *Generator) TranslateIndexExpr(e *syntax.IndexExpr) (string, error) {
	if e.Getter == nil {
		return "", syntax.Internalf(e.Tok(), "Index expression has no getter.")
	}
	recv, err := g.receiver(e.X)
	if err != nil {
		return "", err
	}
	idx, err := syntax.TranslateExpr(g, e.Index)
	if err != nil {
		return "", err
	}
	return recv + memberName(e.Getter) + "(" + idx + ")", nil
}

// TranslateSliceExpr calls GetSlice. A missing start is 0; a missing end
// uses the method's default, or the length of the receiver.
func (g *Generator) TranslateSliceExpr(e *syntax.SliceExpr) (string, error) {
	m := e.Method
	if m == nil {
		return "", syntax.Internalf(e.Tok(), "Slice expression has no method.")
	}
	recv, err := g.receiver(e.X)
	if err != nil {
		return "", err
	}
	start := "0"
	if e.Start != nil {
		if start, err = syntax.TranslateExpr(g, e.Start); err != nil {
			return "", err
		}
	}
	args := []string{start}
	switch {
	case e.End != nil:
		end, err := syntax.TranslateExpr(g, e.End)
		if err != nil {
			return "", err
		}
		args = append(args, end)
	case len(m.Args) < 2 || m.Args[1].Init == nil:
		args = append(args, recv+rtabi.MethodLength+"()")
	}
	return recv + memberName(m) + "(" + strings.Join(args, ", ") + ")", nil
}

func (g *Generator) TranslateMethodCallExpr(e *syntax.MethodCallExpr) (string, error) {
	m := e.Method
	if m == nil {
		return "", syntax.Internalf(e.Tok(), "Method call '%s' is not bound.", e.Name)
	}
	args, err := g.args(e.Args)
	if err != nil {
		return "", err
	}
	call := memberName(m) + "(" + strings.Join(args, ", ") + ")"

	switch x := syntax.Unwrap(e.X).(type) {
	case *syntax.BaseExpr:
		// Qualified calls bypass virtual dispatch.
		return g.className(m.Class()) + "::" + call, nil
	case *syntax.ClassRefExpr:
		return g.className(x.Class) + "::" + call, nil
	}
	if m.Static {
		return g.className(m.Class()) + "::" + call, nil
	}
	recv, err := g.receiver(e.X)
	if err != nil {
		return "", err
	}
	return recv + call, nil
}

func (g *Generator) TranslateFieldAccessExpr(e *syntax.FieldAccessExpr) (string, error) {
	f := e.Field
	if f == nil {
		return "", syntax.Internalf(e.Tok(), "Field access '%s' is not bound.", e.Name)
	}
	if f.Static {
		return g.className(f.Class()) + "::" + memberName(f), nil
	}
	recv, err := g.receiver(e.X)
	if err != nil {
		return "", err
	}
	return recv + memberName(f), nil
}

func (g *Generator) TranslateIdentExpr(e *syntax.IdentExpr) (string, error) {
	if ref, ok := e.Type().(*types.ClassRef); ok {
		return g.className(ref.Class()), nil
	}
	switch d := e.Decl.(type) {
	case *syntax.Variable:
		return d.Ident, nil
	case *syntax.ClassMember:
		if d.Static {
			return g.className(d.Class()) + "::" + memberName(d), nil
		}
		return "this->" + memberName(d), nil
	}
	return "", syntax.Internalf(e.Tok(), "Identifier '%s' is not bound.", e.Name)
}

func (g *Generator) TranslateLiteralExpr(e *syntax.LiteralExpr) (string, error) {
	if e.Kind == syntax.Null {
		return rtabi.NativeNull, nil
	}
	v, err := syntax.Evaluate(e)
	if err != nil {
		return "", err
	}
	return valueCode(v), nil
}

func (g *Generator) TranslateNewExpr(e *syntax.NewExpr) (string, error) {
	args, err := g.args(e.Args)
	if err != nil {
		return "", err
	}
	if e.Array {
		return rtabi.FnNewArray + "<" + g.cppType(e.Target) + ">(" + strings.Join(args, ", ") + ")", nil
	}
	obj, ok := e.Target.(*types.Object)
	if !ok {
		return "", syntax.Internalf(e.Tok(), "Cannot instantiate data type '%s'.", e.Target)
	}
	return rtabi.FnNew + "<" + g.className(obj.Class()) + ">(" + strings.Join(args, ", ") + ")", nil
}

func (g *Generator) TranslateThisExpr(*syntax.ThisExpr) (string, error) {
	return "this", nil
}

func (g *Generator) TranslateBaseExpr(*syntax.BaseExpr) (string, error) {
	return "this", nil
}

func (g *Generator) TranslateClassRefExpr(e *syntax.ClassRefExpr) (string, error) {
	if e.Class == nil {
		return "", syntax.Internalf(e.Tok(), "Class reference is not bound.")
	}
	return g.className(e.Class), nil
}

func (g *Generator) TranslateCommaExpr(e *syntax.CommaExpr) (string, error) {
	codes, err := g.operands(e.X, e.Y)
	if err != nil {
		return "", err
	}
	return "(" + codes[0] + ", " + codes[1] + ")", nil
}
