package codegen

import (
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
)

// stmtList translates the children of n in order.
func (g *Generator) stmtList(n syntax.Node) error {
	for _, s := range n.Children() {
		if err := syntax.Translate(g, s); err != nil {
			return err
		}
	}
	return g.e.err
}

// body translates a nested statement inside braces the caller has
// already opened. Blocks are flattened into the braces.
func (g *Generator) body(s syntax.Stmt) error {
	if b, ok := s.(*syntax.Block); ok {
		return g.stmtList(b)
	}
	return syntax.Translate(g, s)
}

// stripParens removes one pair of parentheses enclosing all of code.
func stripParens(code string) string {
	if len(code) < 2 || code[0] != '(' {
		return code
	}
	depth := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '"':
			// Skip string literals.
			for i++; i < len(code) && code[i] != '"'; i++ {
				if code[i] == '\\' {
					i++
				}
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if i != len(code)-1 {
					return code
				}
				return code[1:i]
			}
		}
	}
	return code
}

// top translates a complete expression used outside of any operator.
func (g *Generator) top(x syntax.Expr) (string, error) {
	code, err := syntax.TranslateExpr(g, x)
	if err != nil {
		return "", err
	}
	return stripParens(code), nil
}

// cond translates a condition expression.
func (g *Generator) cond(x syntax.Expr) (string, error) {
	if x == nil {
		return "true", nil
	}
	return g.top(x)
}

func (g *Generator) TranslateBlock(b *syntax.Block) error {
	// The scope block around a loop adds nothing in C++.
	if list := b.Children(); len(list) == 1 {
		switch list[0].(type) {
		case *syntax.ForStmt, *syntax.ForEachStmt:
			return syntax.Translate(g, list[0])
		}
	}
	g.e.open("{")
	if err := g.stmtList(b); err != nil {
		return err
	}
	g.e.close("}")
	return g.e.err
}

// declare formats a local variable declaration without the semicolon.
func (g *Generator) declare(v *syntax.Variable) (string, error) {
	decl := g.cppType(v.Type) + " " + v.Ident
	if v.Init == nil {
		return decl + "{}", nil
	}
	init, err := g.top(v.Init)
	if err != nil {
		return "", err
	}
	return decl + " = " + init, nil
}

func (g *Generator) TranslateVariable(v *syntax.Variable) error {
	decl, err := g.declare(v)
	if err != nil {
		return err
	}
	g.e.emit("%s;", decl)
	return g.e.err
}

func (g *Generator) TranslateExprStmt(s *syntax.ExprStmt) error {
	code, err := g.top(s)
	if err != nil {
		return err
	}
	g.e.emit("%s;", code)
	return g.e.err
}

func (g *Generator) TranslateIf(s *syntax.IfStmt) error {
	cond, err := g.cond(s.Cond)
	if err != nil {
		return err
	}
	g.e.open("if (%s) {", cond)
	for {
		if err := g.body(s.Then); err != nil {
			return err
		}
		if s.Else == nil {
			break
		}
		elif, ok := s.Else.(*syntax.IfStmt)
		if !ok {
			g.e.close("} else {")
			g.e.indent++
			if err := g.body(s.Else); err != nil {
				return err
			}
			break
		}
		// Else-if chains stay flat.
		if !elif.Analyzed() {
			return syntax.Internalf(elif.Tok(), "Attempted to translate unanalyzed node %T.", elif)
		}
		s = elif
		if cond, err = g.cond(s.Cond); err != nil {
			return err
		}
		g.e.close("} else if (%s) {", cond)
		g.e.indent++
	}
	g.e.close("}")
	return g.e.err
}

func (g *Generator) TranslateWhile(s *syntax.WhileStmt) error {
	cond, err := g.cond(s.Cond)
	if err != nil {
		return err
	}
	g.e.open("while (%s) {", cond)
	if err := g.body(s.Body); err != nil {
		return err
	}
	g.e.close("}")
	return g.e.err
}

func (g *Generator) TranslateDo(s *syntax.DoStmt) error {
	g.e.open("do {")
	if err := g.body(s.Body); err != nil {
		return err
	}
	cond, err := g.cond(s.Cond)
	if err != nil {
		return err
	}
	g.e.close("} while (%s);", cond)
	return g.e.err
}

func (g *Generator) TranslateFor(s *syntax.ForStmt) error {
	var init string
	switch n := s.Init.(type) {
	case nil:
	case *syntax.Variable:
		decl, err := g.declare(n)
		if err != nil {
			return err
		}
		init = decl
	case syntax.Expr:
		code, err := g.top(n)
		if err != nil {
			return err
		}
		init = code
	default:
		return syntax.Internalf(s.Tok(), "Unexpected for initializer %T.", s.Init)
	}

	var cond, incr string
	if s.Cond != nil {
		code, err := g.top(s.Cond)
		if err != nil {
			return err
		}
		cond = code
	}
	if s.Incr != nil {
		code, err := g.top(s.Incr)
		if err != nil {
			return err
		}
		incr = code
	}
	g.e.open("for (%s; %s; %s) {", init, cond, incr)
	if err := g.body(s.Body); err != nil {
		return err
	}
	g.e.close("}")
	return g.e.err
}

// TranslateForEach enumerates the source by index:
//
//	for (int32_t i = 0; i < src->Length(); i++) { v = src->GetIndex(i); ... }
func (g *Generator) TranslateForEach(s *syntax.ForEachStmt) error {
	if s.Indexer == nil {
		return syntax.Internalf(s.Tok(), "Foreach statement has no indexer.")
	}
	src, err := g.top(s.X)
	if err != nil {
		return err
	}
	srcVar, idx := g.e.nextTmp(), g.e.nextTmp()
	sel := selector(s.X.Type())

	g.e.open("{")
	g.e.emit("%s %s = %s;", g.cppType(s.X.Type()), srcVar, src)
	g.e.open("for (%s %s = 0; %s < %s%s%s(); %s++) {",
		rtabi.NativeInt, idx, idx, srcVar, sel, rtabi.MethodLength, idx)

	elem := srcVar + sel + memberName(s.Indexer) + "(" + idx + ")"
	switch v := s.Var.(type) {
	case *syntax.Variable:
		elem, err = g.convert(elem, s.Indexer.ReturnType, v.Type, false)
		if err != nil {
			return err
		}
		g.e.emit("%s %s = %s;", g.cppType(v.Type), v.Ident, elem)
	case syntax.Expr:
		lhs, err := syntax.TranslateExpr(g, v)
		if err != nil {
			return err
		}
		if elem, err = g.convert(elem, s.Indexer.ReturnType, v.Type(), false); err != nil {
			return err
		}
		g.e.emit("%s = %s;", lhs, elem)
	default:
		return syntax.Internalf(s.Tok(), "Unexpected foreach variable %T.", s.Var)
	}

	if err := g.body(s.Body); err != nil {
		return err
	}
	g.e.close("}")
	g.e.close("}")
	return g.e.err
}

// TranslateSwitch lowers the switch to an if chain over a saved value.
// Cases do not fall through; break leaves the switch through its end
// label.
func (g *Generator) TranslateSwitch(s *syntax.SwitchStmt) error {
	x, err := g.top(s.X)
	if err != nil {
		return err
	}
	val := g.e.nextTmp()
	g.e.open("{")
	g.e.emit("%s %s = %s;", g.cppType(s.X.Type()), val, x)

	var def *syntax.DefaultStmt
	first := true
	for _, clause := range s.Clauses() {
		switch cl := clause.(type) {
		case *syntax.CaseStmt:
			cond := ""
			for i, v := range cl.Values {
				code, err := syntax.TranslateExpr(g, v)
				if err != nil {
					return err
				}
				if i > 0 {
					cond += " || "
				}
				cond += val + " == " + code
			}
			if first {
				g.e.open("if (%s) {", cond)
				first = false
			} else {
				g.e.close("} else if (%s) {", cond)
				g.e.indent++
			}
			if err := g.stmtList(cl.Body); err != nil {
				return err
			}
		case *syntax.DefaultStmt:
			def = cl
		}
	}
	if def != nil {
		if first {
			g.e.open("{")
		} else {
			g.e.close("} else {")
			g.e.indent++
		}
		if err := g.stmtList(def.Body); err != nil {
			return err
		}
		first = false
	}
	if !first {
		g.e.close("}")
	}
	if label, ok := g.labels[s]; ok {
		g.e.emit("%s:;", label)
	}
	g.e.close("}")
	return g.e.err
}

// outerLoop returns the loop scope enclosing the loop scope l.
func outerLoop(l syntax.Node) syntax.Node {
	if l.Parent() == nil {
		return nil
	}
	return l.Parent().FindLoopScope()
}

func (g *Generator) TranslateBreak(s *syntax.BreakStmt) error {
	for l := s.FindLoopScope(); l != nil; l = outerLoop(l) {
		if !l.AcceptsBreak() {
			continue
		}
		switch l.(type) {
		case *syntax.CaseStmt, *syntax.DefaultStmt:
			sw, ok := l.Parent().(*syntax.SwitchStmt)
			if !ok {
				return syntax.Internalf(s.Tok(), "Switch clause outside of a switch statement.")
			}
			label, ok := g.labels[sw]
			if !ok {
				label = g.e.nextTmp() + "_end"
				g.labels[sw] = label
			}
			g.e.emit("goto %s;", label)
		default:
			g.e.emit("break;")
		}
		return g.e.err
	}
	return syntax.Internalf(s.Tok(), "break statement outside of a loop or switch.")
}

func (g *Generator) TranslateContinue(s *syntax.ContinueStmt) error {
	g.e.emit("continue;")
	return g.e.err
}

func (g *Generator) TranslateReturn(s *syntax.ReturnStmt) error {
	if s.Result == nil {
		g.e.emit("return;")
		return g.e.err
	}
	code, err := g.top(s.Result)
	if err != nil {
		return err
	}
	g.e.emit("return %s;", code)
	return g.e.err
}

func (g *Generator) TranslateTry(s *syntax.TryStmt) error {
	g.e.open("try {")
	if err := g.stmtList(s.Body); err != nil {
		return err
	}
	for _, c := range s.Catches {
		g.e.close("} catch (%s %s) {", g.cppType(c.Var.Type), c.Var.Ident)
		g.e.indent++
		if err := g.stmtList(c.Body); err != nil {
			return err
		}
	}
	g.e.close("}")
	return g.e.err
}

func (g *Generator) TranslateThrow(s *syntax.ThrowStmt) error {
	x, err := g.top(s.X)
	if err != nil {
		return err
	}
	g.e.emit("%s(%s);", rtabi.FnThrow, x)
	return g.e.err
}
