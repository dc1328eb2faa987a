package types2

import (
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// stmtList checks the statements below n in order.
func (c *Checker) stmtList(n syntax.Node) error {
	// The list may be rewritten while it is checked.
	list := append([]syntax.Node(nil), n.Children()...)
	for _, s := range list {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Node) error {
	if s == nil || s.Analyzed() {
		return nil
	}
	switch s := s.(type) {
	case *syntax.ExprStmt:
		_, err := c.expr(s)
		return err
	case *syntax.Variable:
		return c.variable(s)
	}
	s.MarkAnalyzed()

	switch s := s.(type) {
	case *syntax.Block:
		return c.stmtList(s)

	case *syntax.MethodBody:
		return c.stmtList(s)

	case *syntax.IfStmt:
		return c.ifStmt(s)

	case *syntax.WhileStmt:
		var err error
		if s.Cond, err = c.condition(s, s.Cond); err != nil {
			return err
		}
		return c.stmt(s.Body)

	case *syntax.DoStmt:
		if err := c.stmt(s.Body); err != nil {
			return err
		}
		if s.Cond == nil {
			return nil
		}
		var err error
		s.Cond, err = c.condition(s, s.Cond)
		return err

	case *syntax.ForStmt:
		return c.forStmt(s)

	case *syntax.ForEachStmt:
		return c.forEachStmt(s)

	case *syntax.SwitchStmt:
		return c.switchStmt(s)

	case *syntax.BreakStmt:
		for l := s.FindLoopScope(); l != nil; l = outerLoop(l) {
			if l.AcceptsBreak() {
				return nil
			}
		}
		return c.errorf(syntax.StructuralError, s, "break statement must be inside a loop or switch statement.")

	case *syntax.ContinueStmt:
		for l := s.FindLoopScope(); l != nil; l = outerLoop(l) {
			if l.AcceptsContinue() {
				return nil
			}
		}
		return c.errorf(syntax.StructuralError, s, "continue statement must be inside a loop.")

	case *syntax.ReturnStmt:
		return c.returnStmt(s)

	case *syntax.TryStmt:
		return c.tryStmt(s)

	case *syntax.ThrowStmt:
		x, err := c.subexpr(s, s.X)
		if err != nil {
			return err
		}
		s.X = x
		if _, ok := x.Type().(*types.Object); !ok {
			return c.errorf(syntax.TypeMismatchError, s, "Only objects can be thrown, got '%s'.", x.Type())
		}
		return nil
	}
	return c.internalf(s, "Unexpected statement %T.", s)
}

// outerLoop returns the loop scope enclosing the loop scope l.
func outerLoop(l syntax.Node) syntax.Node {
	if l.Parent() == nil {
		return nil
	}
	return l.Parent().FindLoopScope()
}

func (c *Checker) ifStmt(s *syntax.IfStmt) error {
	var err error
	if s.Cond, err = c.condition(s, s.Cond); err != nil {
		return err
	}
	if err := c.stmt(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return c.stmt(s.Else)
	}
	return nil
}

func (c *Checker) forStmt(s *syntax.ForStmt) error {
	if s.Init != nil {
		if err := c.stmt(s.Init); err != nil {
			return err
		}
	}
	var err error
	if s.Cond != nil {
		if s.Cond, err = c.condition(s, s.Cond); err != nil {
			return err
		}
	}
	if s.Incr != nil {
		if s.Incr, err = c.subexpr(s, s.Incr); err != nil {
			return err
		}
	}
	return c.stmt(s.Body)
}

// forEachStmt checks that the source can be enumerated by index and that
// its elements can be assigned to the loop variable.
func (c *Checker) forEachStmt(s *syntax.ForEachStmt) error {
	var varType types.Type
	switch v := s.Var.(type) {
	case *syntax.Variable:
		if err := c.variable(v); err != nil {
			return err
		}
		varType = v.Type
	case syntax.Expr:
		x, err := c.subexpr(s, v)
		if err != nil {
			return err
		}
		s.Var = x
		if err := c.lvalue(x, false); err != nil {
			return err
		}
		varType = x.Type()
	default:
		return c.internalf(s, "Unexpected foreach variable %T.", s.Var)
	}

	x, err := c.subexpr(s, s.X)
	if err != nil {
		return err
	}
	s.X = x
	cls, err := c.receiverClass(x, s)
	if err != nil {
		return err
	}
	indexer, err := c.findMethod(cls, rtabi.MethodGetIndex, []types.Type{types.Typ[types.Int]}, false, nil, s)
	if err != nil {
		return err
	}
	if indexer == nil || indexer.Static {
		return c.errorf(syntax.StructuralError, s, "Data type '%s' does not support enumeration, no GetIndex method defined.", x.Type())
	}
	if err := c.checkAccess(indexer, s); err != nil {
		return err
	}
	elem := indexer.ReturnType
	if types.Classify(c, elem, varType, false) == types.InvalidCast {
		return c.errorf(syntax.ImplicitCastError, s, "Cannot implicitly cast value from '%s' to '%s'.", elem, varType)
	}
	s.Indexer = indexer
	return c.stmt(s.Body)
}

func (c *Checker) switchStmt(s *syntax.SwitchStmt) error {
	x, err := c.subexpr(s, s.X)
	if err != nil {
		return err
	}
	s.X = x
	if types.IsVoid(x.Type()) {
		return c.errorf(syntax.TypeMismatchError, s, "Cannot switch on a void expression.")
	}

	for _, clause := range s.Clauses() {
		clause.MarkAnalyzed()
		switch cl := clause.(type) {
		case *syntax.CaseStmt:
			for i, v := range cl.Values {
				r, err := c.subexpr(cl, v)
				if err != nil {
					return err
				}
				if cl.Values[i], err = c.castTo(cl, r, x.Type(), false); err != nil {
					return err
				}
			}
			if err := c.stmt(cl.Body); err != nil {
				return err
			}
		case *syntax.DefaultStmt:
			if err := c.stmt(cl.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Checker) returnStmt(s *syntax.ReturnStmt) error {
	m := syntax.FindMemberScope(s)
	if m == nil || !m.IsMethod() {
		return c.internalf(s, "Return statement outside of a method.")
	}
	want := m.ReturnType
	if s.Result == nil {
		if !types.IsVoid(want) {
			return c.errorf(syntax.StructuralError, s, "Method '%s' must return a value of type '%s'.", m.Ident, want)
		}
		return nil
	}
	if types.IsVoid(want) {
		return c.errorf(syntax.StructuralError, s, "Method '%s' does not return a value.", m.Ident)
	}
	x, err := c.subexpr(s, s.Result)
	if err != nil {
		return err
	}
	s.Result, err = c.castTo(s, x, want, false)
	return err
}

func (c *Checker) tryStmt(s *syntax.TryStmt) error {
	if err := c.stmt(s.Body); err != nil {
		return err
	}
	for _, cs := range s.Catches {
		cs.MarkAnalyzed()
		if err := c.variable(cs.Var); err != nil {
			return err
		}
		if _, ok := cs.Var.Type.(*types.Object); !ok {
			return c.errorf(syntax.TypeMismatchError, cs.Var, "Catch variable must be of an object type, got '%s'.", cs.Var.Type)
		}
		if err := c.stmt(cs.Body); err != nil {
			return err
		}
	}
	return nil
}
