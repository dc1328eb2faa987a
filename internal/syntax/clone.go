package syntax

import "github.com/you-not-fish/lsc/internal/types"

// Clone returns a deep copy of the subtree rooted at n with fresh node
// identities. The copy is detached and unanalyzed; analysis results
// (resolved declarations, result types, generic instances) are not
// copied. Types are shared, since they are immutable. A node kind Clone
// does not know is an InternalError.
func Clone(n Node) (Node, error) {
	if isNil(n) {
		return nil, nil
	}
	return cloneNode(n, make(map[Node]Node))
}

func cloneNode(n Node, m map[Node]Node) (Node, error) {
	c := shallowCopy(n)
	if c == nil {
		return nil, Internalf(n.Tok(), "Cannot clone node of type %T.", n)
	}
	m[n] = c
	for _, child := range n.Children() {
		cc, err := cloneNode(child, m)
		if err != nil {
			return nil, err
		}
		AddChild(c, cc)
	}
	relink(c, m)
	return c, nil
}

// shallowCopy copies the syntactic fields of n into a fresh node, or
// returns nil for an unknown kind. Typed child fields still point into the
// original tree until relink runs.
func shallowCopy(n Node) Node {
	fresh := node{tok: n.Tok()}
	switch n := n.(type) {
	// declarations
	case *Package:
		return &Package{node: fresh}
	case *Class:
		return &Class{
			node:          fresh,
			Ident:         n.Ident,
			Access:        n.Access,
			Static:        n.Static,
			Abstract:      n.Abstract,
			Sealed:        n.Sealed,
			Native:        n.Native,
			Interface:     n.Interface,
			Generic:       n.Generic,
			MangledIdent:  n.MangledIdent,
			BoxIdent:      n.BoxIdent,
			InheritsNull:  n.InheritsNull,
			GenericParams: append([]Token(nil), n.GenericParams...),
			Inherited:     append([]types.Type(nil), n.Inherited...),
			Body:          n.Body,
		}
	case *ClassBody:
		return &ClassBody{node: fresh}
	case *ClassMember:
		return &ClassMember{
			node:         fresh,
			Ident:        n.Ident,
			Kind:         n.Kind,
			Access:       n.Access,
			Static:       n.Static,
			Abstract:     n.Abstract,
			Virtual:      n.Virtual,
			Override:     n.Override,
			Const:        n.Const,
			Native:       n.Native,
			Constructor:  n.Constructor,
			MangledIdent: n.MangledIdent,
			ReturnType:   n.ReturnType,
			Args:         append([]*Variable(nil), n.Args...),
			Body:         n.Body,
			Init:         n.Init,
		}
	case *MethodBody:
		return &MethodBody{node: fresh}
	case *Variable:
		return &Variable{node: fresh, Ident: n.Ident, Type: n.Type, Init: n.Init, Param: n.Param}
	case *Alias:
		return &Alias{node: fresh, Ident: n.Ident, Decl: n.Decl, Type: n.Type}

	// statements
	case *Block:
		return &Block{stmt{fresh}}
	case *IfStmt:
		return &IfStmt{stmt: stmt{fresh}, Cond: n.Cond, Then: n.Then, Else: n.Else}
	case *WhileStmt:
		return &WhileStmt{stmt: stmt{fresh}, Cond: n.Cond, Body: n.Body}
	case *DoStmt:
		return &DoStmt{stmt: stmt{fresh}, Body: n.Body, Cond: n.Cond}
	case *ForStmt:
		return &ForStmt{stmt: stmt{fresh}, Init: n.Init, Cond: n.Cond, Incr: n.Incr, Body: n.Body}
	case *ForEachStmt:
		return &ForEachStmt{stmt: stmt{fresh}, Var: n.Var, X: n.X, Body: n.Body}
	case *SwitchStmt:
		return &SwitchStmt{stmt: stmt{fresh}, X: n.X}
	case *CaseStmt:
		return &CaseStmt{stmt: stmt{fresh}, Values: append([]Expr(nil), n.Values...), Body: n.Body}
	case *DefaultStmt:
		return &DefaultStmt{stmt: stmt{fresh}, Body: n.Body}
	case *BreakStmt:
		return &BreakStmt{stmt{fresh}}
	case *ContinueStmt:
		return &ContinueStmt{stmt{fresh}}
	case *ReturnStmt:
		return &ReturnStmt{stmt: stmt{fresh}, Result: n.Result}
	case *TryStmt:
		return &TryStmt{stmt: stmt{fresh}, Body: n.Body, Catches: append([]*CatchStmt(nil), n.Catches...)}
	case *CatchStmt:
		return &CatchStmt{stmt: stmt{fresh}, Var: n.Var, Body: n.Body}
	case *ThrowStmt:
		return &ThrowStmt{stmt: stmt{fresh}, X: n.X}
	case *ExprStmt:
		return &ExprStmt{expr: expr{node: fresh}, X: n.X, Const: n.Const}

	// expressions
	case *AssignmentExpr:
		return &AssignmentExpr{expr: expr{node: fresh}, Op: n.Op, LHS: n.LHS, RHS: n.RHS, IgnoreConst: n.IgnoreConst}
	case *BinaryMathExpr:
		return &BinaryMathExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X, Y: n.Y}
	case *ComparisonExpr:
		return &ComparisonExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X, Y: n.Y}
	case *LogicalExpr:
		return &LogicalExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X, Y: n.Y}
	case *TernaryExpr:
		return &TernaryExpr{expr: expr{node: fresh}, Cond: n.Cond, X: n.X, Y: n.Y}
	case *TypeTestExpr:
		return &TypeTestExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X, Target: n.Target}
	case *CastExpr:
		return &CastExpr{expr: expr{node: fresh}, X: n.X, Target: n.Target, Explicit: n.Explicit}
	case *PrefixExpr:
		return &PrefixExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X}
	case *PostfixExpr:
		return &PostfixExpr{expr: expr{node: fresh}, Op: n.Op, X: n.X}
	case *IndexExpr:
		return &IndexExpr{expr: expr{node: fresh}, X: n.X, Index: n.Index}
	case *SliceExpr:
		return &SliceExpr{expr: expr{node: fresh}, X: n.X, Start: n.Start, End: n.End}
	case *MethodCallExpr:
		return &MethodCallExpr{expr: expr{node: fresh}, X: n.X, Name: n.Name, Args: append([]Expr(nil), n.Args...)}
	case *FieldAccessExpr:
		return &FieldAccessExpr{expr: expr{node: fresh}, X: n.X, Name: n.Name}
	case *IdentExpr:
		return &IdentExpr{expr: expr{node: fresh}, Name: n.Name, GenericArgs: append([]types.Type(nil), n.GenericArgs...)}
	case *LiteralExpr:
		return &LiteralExpr{expr: expr{node: fresh}, Kind: n.Kind, Lit: n.Lit}
	case *NewExpr:
		return &NewExpr{expr: expr{node: fresh}, Target: n.Target, Args: append([]Expr(nil), n.Args...), Array: n.Array}
	case *ThisExpr:
		return &ThisExpr{expr{node: fresh}}
	case *BaseExpr:
		return &BaseExpr{expr{node: fresh}}
	case *ClassRefExpr:
		return &ClassRefExpr{expr: expr{node: fresh}}
	case *CommaExpr:
		return &CommaExpr{expr: expr{node: fresh}, X: n.X, Y: n.Y}
	}
	return nil
}

// relink points the typed child fields of c at the copies recorded in m.
func relink(c Node, m map[Node]Node) {
	switch c := c.(type) {
	case *Class:
		c.Body = mapNode(m, c.Body)
	case *ClassMember:
		for i, a := range c.Args {
			c.Args[i] = mapNode(m, a)
		}
		c.Body = mapNode(m, c.Body)
		c.Init = mapNode(m, c.Init)
	case *Variable:
		c.Init = mapNode(m, c.Init)
	case *IfStmt:
		c.Cond = mapNode(m, c.Cond)
		c.Then = mapNode(m, c.Then)
		c.Else = mapNode(m, c.Else)
	case *WhileStmt:
		c.Cond = mapNode(m, c.Cond)
		c.Body = mapNode(m, c.Body)
	case *DoStmt:
		c.Body = mapNode(m, c.Body)
		c.Cond = mapNode(m, c.Cond)
	case *ForStmt:
		c.Init = mapNode(m, c.Init)
		c.Cond = mapNode(m, c.Cond)
		c.Incr = mapNode(m, c.Incr)
		c.Body = mapNode(m, c.Body)
	case *ForEachStmt:
		c.Var = mapNode(m, c.Var)
		c.X = mapNode(m, c.X)
		c.Body = mapNode(m, c.Body)
	case *SwitchStmt:
		c.X = mapNode(m, c.X)
	case *CaseStmt:
		mapExprs(m, c.Values)
		c.Body = mapNode(m, c.Body)
	case *DefaultStmt:
		c.Body = mapNode(m, c.Body)
	case *ReturnStmt:
		c.Result = mapNode(m, c.Result)
	case *TryStmt:
		c.Body = mapNode(m, c.Body)
		for i, k := range c.Catches {
			c.Catches[i] = mapNode(m, k)
		}
	case *CatchStmt:
		c.Var = mapNode(m, c.Var)
		c.Body = mapNode(m, c.Body)
	case *ThrowStmt:
		c.X = mapNode(m, c.X)
	case *ExprStmt:
		c.X = mapNode(m, c.X)
	case *AssignmentExpr:
		c.LHS = mapNode(m, c.LHS)
		c.RHS = mapNode(m, c.RHS)
	case *BinaryMathExpr:
		c.X, c.Y = mapNode(m, c.X), mapNode(m, c.Y)
	case *ComparisonExpr:
		c.X, c.Y = mapNode(m, c.X), mapNode(m, c.Y)
	case *LogicalExpr:
		c.X, c.Y = mapNode(m, c.X), mapNode(m, c.Y)
	case *TernaryExpr:
		c.Cond, c.X, c.Y = mapNode(m, c.Cond), mapNode(m, c.X), mapNode(m, c.Y)
	case *TypeTestExpr:
		c.X = mapNode(m, c.X)
	case *CastExpr:
		c.X = mapNode(m, c.X)
	case *PrefixExpr:
		c.X = mapNode(m, c.X)
	case *PostfixExpr:
		c.X = mapNode(m, c.X)
	case *IndexExpr:
		c.X, c.Index = mapNode(m, c.X), mapNode(m, c.Index)
	case *SliceExpr:
		c.X, c.Start, c.End = mapNode(m, c.X), mapNode(m, c.Start), mapNode(m, c.End)
	case *MethodCallExpr:
		c.X = mapNode(m, c.X)
		mapExprs(m, c.Args)
	case *FieldAccessExpr:
		c.X = mapNode(m, c.X)
	case *NewExpr:
		mapExprs(m, c.Args)
	case *CommaExpr:
		c.X, c.Y = mapNode(m, c.X), mapNode(m, c.Y)
	}
}

// mapNode returns the copy of x recorded in m, or x if it was not copied
// (including nil).
func mapNode[T Node](m map[Node]Node, x T) T {
	if isNil(x) {
		return x
	}
	if c, ok := m[x]; ok {
		return c.(T)
	}
	return x
}

func mapExprs(m map[Node]Node, list []Expr) {
	for i, e := range list {
		list[i] = mapNode(m, e)
	}
}
