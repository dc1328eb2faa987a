package syntax

import "github.com/you-not-fish/lsc/internal/types"

// ----------------------------------------------------------------------------
// Expressions

// AssignmentExpr: LHS Op RHS, where Op is = or a compound assignment.
type AssignmentExpr struct {
	expr
	Op          Kind
	LHS, RHS    Expr
	IgnoreConst bool // compiler-internal initialization of const fields
}

// BinaryMathExpr: X Op Y for + - * / % & | ^ << >>.
type BinaryMathExpr struct {
	expr
	Op   Kind
	X, Y Expr
}

// ComparisonExpr: X Op Y for == != < <= > >=.
type ComparisonExpr struct {
	expr
	Op   Kind
	X, Y Expr
}

// LogicalExpr: X Op Y for && ||.
type LogicalExpr struct {
	expr
	Op   Kind
	X, Y Expr
}

// TernaryExpr: Cond ? X : Y
type TernaryExpr struct {
	expr
	Cond, X, Y Expr
}

// TypeTestExpr: X is Target, X as Target.
type TypeTestExpr struct {
	expr
	Op     Kind
	X      Expr
	Target types.Type
}

// CastExpr: <Target>X, or a conversion inserted by the checker.
type CastExpr struct {
	expr
	X        Expr
	Target   types.Type
	Explicit bool
}

// PrefixExpr: Op X for ++ -- + - ~ ! !!.
type PrefixExpr struct {
	expr
	Op Kind
	X  Expr
}

// PostfixExpr: X Op for ++ --.
type PostfixExpr struct {
	expr
	Op Kind
	X  Expr
}

// IndexExpr: X[Index]
type IndexExpr struct {
	expr
	X, Index Expr

	Getter *ClassMember // GetIndex, set by the checker
	Setter *ClassMember // SetIndex, set when used as an l-value
}

// SliceExpr: X[Start:End]; Start and End may be nil.
type SliceExpr struct {
	expr
	X, Start, End Expr

	Method *ClassMember // GetSlice, set by the checker
}

// MethodCallExpr: X.Name(Args)
type MethodCallExpr struct {
	expr
	X    Expr
	Name string
	Args []Expr

	Method *ClassMember // set by the checker
}

// FieldAccessExpr: X.Name
type FieldAccessExpr struct {
	expr
	X    Expr
	Name string

	Field *ClassMember // set by the checker
}

// IdentExpr is a name, optionally with generic arguments when it names a
// generic class (List<int>.Create()).
type IdentExpr struct {
	expr
	Name        string
	GenericArgs []types.Type

	Decl Decl // set by the checker
}

// LiteralExpr is an int, float, string, bool or null literal.
type LiteralExpr struct {
	expr
	Kind Kind // _IntLit, _FloatLit, _StringLit, _True, _False, _Null
	Lit  string
}

// NewExpr: new Target(Args) or new T[Args[0]][]...
type NewExpr struct {
	expr
	Target types.Type
	Args   []Expr
	Array  bool

	Ctor *ClassMember // set by the checker; nil for the implicit constructor
}

// ThisExpr: this
type ThisExpr struct {
	expr
}

// BaseExpr: base
type BaseExpr struct {
	expr
}

// ClassRefExpr refers to the enclosing class in a receiverless call to a
// static method.
type ClassRefExpr struct {
	expr
	Class *Class // set by the checker
}

// CommaExpr: X, Y
type CommaExpr struct {
	expr
	X, Y Expr
}

// ----------------------------------------------------------------------------
// Constructors
//
// Constructors attach operands as children in evaluation order; Clone
// relies on that order.

func NewAssignmentExpr(tok Token, op Kind, lhs, rhs Expr) *AssignmentExpr {
	e := &AssignmentExpr{Op: op, LHS: lhs, RHS: rhs}
	e.tok = tok
	AddChild(e, lhs)
	AddChild(e, rhs)
	return e
}

func NewBinaryMathExpr(tok Token, op Kind, x, y Expr) *BinaryMathExpr {
	e := &BinaryMathExpr{Op: op, X: x, Y: y}
	e.tok = tok
	AddChild(e, x)
	AddChild(e, y)
	return e
}

func NewComparisonExpr(tok Token, op Kind, x, y Expr) *ComparisonExpr {
	e := &ComparisonExpr{Op: op, X: x, Y: y}
	e.tok = tok
	AddChild(e, x)
	AddChild(e, y)
	return e
}

func NewLogicalExpr(tok Token, op Kind, x, y Expr) *LogicalExpr {
	e := &LogicalExpr{Op: op, X: x, Y: y}
	e.tok = tok
	AddChild(e, x)
	AddChild(e, y)
	return e
}

func NewTernaryExpr(tok Token, cond, x, y Expr) *TernaryExpr {
	e := &TernaryExpr{Cond: cond, X: x, Y: y}
	e.tok = tok
	AddChild(e, cond)
	AddChild(e, x)
	AddChild(e, y)
	return e
}

func NewTypeTestExpr(tok Token, op Kind, x Expr, target types.Type) *TypeTestExpr {
	e := &TypeTestExpr{Op: op, X: x, Target: target}
	e.tok = tok
	AddChild(e, x)
	return e
}

// NewCastExpr returns a cast of x to target. The cast adopts x; the caller
// must ReplaceChild x's previous slot with the analyzed result.
func NewCastExpr(tok Token, target types.Type, x Expr, explicit bool) *CastExpr {
	e := &CastExpr{X: x, Target: target, Explicit: explicit}
	e.tok = tok
	AddChild(e, x)
	return e
}

func NewPrefixExpr(tok Token, op Kind, x Expr) *PrefixExpr {
	e := &PrefixExpr{Op: op, X: x}
	e.tok = tok
	AddChild(e, x)
	return e
}

func NewPostfixExpr(tok Token, op Kind, x Expr) *PostfixExpr {
	e := &PostfixExpr{Op: op, X: x}
	e.tok = tok
	AddChild(e, x)
	return e
}

func NewIndexExpr(tok Token, x, index Expr) *IndexExpr {
	e := &IndexExpr{X: x, Index: index}
	e.tok = tok
	AddChild(e, x)
	AddChild(e, index)
	return e
}

func NewSliceExpr(tok Token, x, start, end Expr) *SliceExpr {
	e := &SliceExpr{X: x, Start: start, End: end}
	e.tok = tok
	AddChild(e, x)
	if start != nil {
		AddChild(e, start)
	}
	if end != nil {
		AddChild(e, end)
	}
	return e
}

func NewMethodCallExpr(tok Token, x Expr, name string, args []Expr) *MethodCallExpr {
	e := &MethodCallExpr{X: x, Name: name, Args: args}
	e.tok = tok
	AddChild(e, x)
	for _, a := range args {
		AddChild(e, a)
	}
	return e
}

func NewFieldAccessExpr(tok Token, x Expr, name string) *FieldAccessExpr {
	e := &FieldAccessExpr{X: x, Name: name}
	e.tok = tok
	AddChild(e, x)
	return e
}

func NewIdentExpr(tok Token, name string, args []types.Type) *IdentExpr {
	e := &IdentExpr{Name: name, GenericArgs: args}
	e.tok = tok
	return e
}

func NewLiteralExpr(tok Token) *LiteralExpr {
	e := &LiteralExpr{Kind: tok.Kind, Lit: tok.Lit}
	e.tok = tok
	return e
}

func NewNewExpr(tok Token, target types.Type, args []Expr, array bool) *NewExpr {
	e := &NewExpr{Target: target, Args: args, Array: array}
	e.tok = tok
	for _, a := range args {
		AddChild(e, a)
	}
	return e
}

func NewThisExpr(tok Token) *ThisExpr {
	e := &ThisExpr{}
	e.tok = tok
	return e
}

func NewBaseExpr(tok Token) *BaseExpr {
	e := &BaseExpr{}
	e.tok = tok
	return e
}

func NewClassRefExpr(tok Token) *ClassRefExpr {
	e := &ClassRefExpr{}
	e.tok = tok
	return e
}

func NewCommaExpr(tok Token, x, y Expr) *CommaExpr {
	e := &CommaExpr{X: x, Y: y}
	e.tok = tok
	AddChild(e, x)
	AddChild(e, y)
	return e
}
