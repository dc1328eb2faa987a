package syntax

// ----------------------------------------------------------------------------
// Statements

// Block is a braced statement list, and the implicit scope around for and
// foreach statements.
type Block struct {
	stmt
}

// IfStmt: if (Cond) Then else Else
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt: while (Cond) Body
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

func (s *WhileStmt) FindLoopScope() Node   { return s }
func (s *WhileStmt) AcceptsBreak() bool    { return true }
func (s *WhileStmt) AcceptsContinue() bool { return true }

// DoStmt: do Body [while (Cond);]. A nil Cond loops until break.
type DoStmt struct {
	stmt
	Body Stmt
	Cond Expr
}

func (s *DoStmt) FindLoopScope() Node   { return s }
func (s *DoStmt) AcceptsBreak() bool    { return true }
func (s *DoStmt) AcceptsContinue() bool { return true }

// ForStmt: for (Init; Cond; Incr) Body
type ForStmt struct {
	stmt
	Init Node // *Variable, *ExprStmt or nil
	Cond Expr // nil loops until break
	Incr Expr
	Body Stmt
}

func (s *ForStmt) FindLoopScope() Node   { return s }
func (s *ForStmt) AcceptsBreak() bool    { return true }
func (s *ForStmt) AcceptsContinue() bool { return true }

// ForEachStmt: foreach (Var in X) Body. Var is a *Variable declaration or
// an assignable expression.
type ForEachStmt struct {
	stmt
	Var  Node
	X    Expr
	Body Stmt

	Indexer *ClassMember // GetIndex method of X's class, set by the checker
}

func (s *ForEachStmt) FindLoopScope() Node   { return s }
func (s *ForEachStmt) AcceptsBreak() bool    { return true }
func (s *ForEachStmt) AcceptsContinue() bool { return true }

// SwitchStmt: switch (X) { case ...: ... default: ... }
// The children after X are *CaseStmt and at most one trailing *DefaultStmt.
type SwitchStmt struct {
	stmt
	X Expr
}

// Clauses returns the case and default clauses in order.
func (s *SwitchStmt) Clauses() []Stmt {
	var list []Stmt
	for _, c := range s.children {
		switch c := c.(type) {
		case *CaseStmt:
			list = append(list, c)
		case *DefaultStmt:
			list = append(list, c)
		}
	}
	return list
}

// CaseStmt: case v1, v2: Body. Cases do not fall through.
type CaseStmt struct {
	stmt
	Values []Expr
	Body   *Block
}

func (s *CaseStmt) FindLoopScope() Node { return s }
func (s *CaseStmt) AcceptsBreak() bool  { return true }

// DefaultStmt: default: Body
type DefaultStmt struct {
	stmt
	Body *Block
}

func (s *DefaultStmt) FindLoopScope() Node { return s }
func (s *DefaultStmt) AcceptsBreak() bool  { return true }

// BreakStmt: break;
type BreakStmt struct {
	stmt
}

// ContinueStmt: continue;
type ContinueStmt struct {
	stmt
}

// ReturnStmt: return [Result];
type ReturnStmt struct {
	stmt
	Result Expr // nil for bare return
}

// TryStmt: try Body catch (...) {...} ...
type TryStmt struct {
	stmt
	Body    *Block
	Catches []*CatchStmt
}

// CatchStmt: catch (Var) Body
type CatchStmt struct {
	stmt
	Var  *Variable
	Body *Block
}

// ThrowStmt: throw X;
type ThrowStmt struct {
	stmt
	X Expr
}

// ExprStmt wraps a complete expression. It is both the expression
// statement and the root of every parsed expression tree; Const marks
// expressions that must fold at analysis time.
type ExprStmt struct {
	expr
	X     Expr
	Const bool
}

func (*ExprStmt) aStmt() {}

// NewExprStmt returns a root wrapping x.
func NewExprStmt(x Expr) *ExprStmt {
	s := &ExprStmt{X: x}
	s.tok = x.Tok()
	AddChild(s, x)
	return s
}

// Unwrap returns the innermost expression below any ExprStmt roots.
func Unwrap(e Expr) Expr {
	for {
		s, ok := e.(*ExprStmt)
		if !ok {
			return e
		}
		e = s.X
	}
}
