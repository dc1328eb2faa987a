package syntax

import "github.com/you-not-fish/lsc/internal/types"

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence, loosest first:
//
//	,
//	?:
//	= += -= ...      (right operand parsed at is/as level)
//	is as
//	&& ||
//	& | ^ << >>
//	< <= > >= == !=
//	+ -
//	* / %
//	prefix ++ -- + - ~ ! !!
//	<Type> cast
//	postfix ++ -- [] . call
//
// Expression nodes are built bottom up; the returned root is an ExprStmt
// that the caller attaches to its scope.

// expr parses a complete expression. With noComma set the comma operator
// is not consumed, so the expression can appear in a comma separated list.
func (p *parser) expr(noComma bool) (*ExprStmt, error) {
	var (
		x   Expr
		err error
	)
	if noComma {
		x, err = p.ternary()
	} else {
		x, err = p.comma()
	}
	if err != nil {
		return nil, err
	}
	return NewExprStmt(x), nil
}

// constExpr is like expr but marks the root as constant.
func (p *parser) constExpr(noComma bool) (*ExprStmt, error) {
	x, err := p.expr(noComma)
	if err != nil {
		return nil, err
	}
	x.Const = true
	return x, nil
}

func (p *parser) comma() (Expr, error) {
	x, err := p.ternary()
	if err != nil {
		return nil, err
	}
	for p.tok().Kind == _Comma {
		t := p.next()
		y, err := p.ternary()
		if err != nil {
			return nil, err
		}
		x = NewCommaExpr(t, x, y)
	}
	return x, nil
}

func (p *parser) ternary() (Expr, error) {
	cond, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if p.tok().Kind != _Question {
		return cond, nil
	}
	t := p.next()
	x, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(_Colon); err != nil {
		return nil, err
	}
	y, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return NewTernaryExpr(t, cond, x, y), nil
}

func (p *parser) assignment() (Expr, error) {
	lhs, err := p.isAs()
	if err != nil {
		return nil, err
	}
	if !p.tok().Kind.IsAssignOp() {
		return lhs, nil
	}
	t := p.next()
	rhs, err := p.isAs()
	if err != nil {
		return nil, err
	}
	if next := p.tok(); next.Kind.IsAssignOp() {
		return nil, p.errorf(next, "Chained assignments are not supported, use the comma operator instead.")
	}
	return NewAssignmentExpr(t, t.Kind, lhs, rhs), nil
}

func (p *parser) isAs() (Expr, error) {
	x, err := p.logical()
	if err != nil {
		return nil, err
	}
	if k := p.tok().Kind; k != _Is && k != _As {
		return x, nil
	}
	t := p.next()
	typ, err := p.dataType()
	if err != nil {
		return nil, err
	}
	return NewTypeTestExpr(t, t.Kind, x, typ), nil
}

func (p *parser) logical() (Expr, error) {
	x, err := p.bitwise()
	if err != nil {
		return nil, err
	}
	for k := p.tok().Kind; k == _AndAnd || k == _OrOr; k = p.tok().Kind {
		t := p.next()
		y, err := p.bitwise()
		if err != nil {
			return nil, err
		}
		x = NewLogicalExpr(t, k, x, y)
	}
	return x, nil
}

func (p *parser) bitwise() (Expr, error) {
	x, err := p.compare()
	if err != nil {
		return nil, err
	}
	for {
		switch k := p.tok().Kind; k {
		case _And, _Or, _Xor, _Shl, _Shr:
			t := p.next()
			y, err := p.compare()
			if err != nil {
				return nil, err
			}
			x = NewBinaryMathExpr(t, k, x, y)
		default:
			return x, nil
		}
	}
}

func (p *parser) compare() (Expr, error) {
	x, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		switch k := p.tok().Kind; k {
		case _Lss, _Leq, _Gtr, _Geq, _Eql, _Neq:
			t := p.next()
			y, err := p.additive()
			if err != nil {
				return nil, err
			}
			x = NewComparisonExpr(t, k, x, y)
		default:
			return x, nil
		}
	}
}

func (p *parser) additive() (Expr, error) {
	x, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for k := p.tok().Kind; k == _Add || k == _Sub; k = p.tok().Kind {
		t := p.next()
		y, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		x = NewBinaryMathExpr(t, k, x, y)
	}
	return x, nil
}

func (p *parser) multiplicative() (Expr, error) {
	x, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for k := p.tok().Kind; k == _Mul || k == _Div || k == _Rem; k = p.tok().Kind {
		t := p.next()
		y, err := p.prefix()
		if err != nil {
			return nil, err
		}
		x = NewBinaryMathExpr(t, k, x, y)
	}
	return x, nil
}

func (p *parser) prefix() (Expr, error) {
	switch k := p.tok().Kind; k {
	case _Inc, _Dec, _Add, _Sub, _Tilde, _Not, _NotNot:
		t := p.next()
		x, err := p.prefix()
		if err != nil {
			return nil, err
		}
		return NewPrefixExpr(t, k, x), nil
	}
	return p.cast()
}

// cast parses: < Type > prefix
func (p *parser) cast() (Expr, error) {
	if p.tok().Kind != _Lss {
		return p.postfix()
	}
	t := p.next()
	typ, err := p.dataType()
	if err != nil {
		return nil, err
	}
	p.toks.SplitShr()
	if _, err := p.want(_Gtr); err != nil {
		return nil, err
	}
	x, err := p.prefix()
	if err != nil {
		return nil, err
	}
	return NewCastExpr(t, typ, x, true), nil
}

func (p *parser) postfix() (Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.tok()
		switch t.Kind {
		case _Inc, _Dec:
			p.next()
			x = NewPostfixExpr(t, t.Kind, x)

		case _Lbrack:
			p.next()
			if x, err = p.indexOrSlice(t, x); err != nil {
				return nil, err
			}

		case _Dot:
			p.next()
			name, err := p.want(_Ident)
			if err != nil {
				return nil, err
			}
			if p.tok().Kind == _Lparen {
				args, err := p.args()
				if err != nil {
					return nil, err
				}
				x = NewMethodCallExpr(name, x, name.Lit, args)
			} else {
				x = NewFieldAccessExpr(name, x, name.Lit)
			}

		default:
			return x, nil
		}
	}
}

// indexOrSlice parses the rest of x[i], x[:], x[:e], x[s:] or x[s:e] after
// the opening bracket.
func (p *parser) indexOrSlice(open Token, x Expr) (Expr, error) {
	var start, end Expr
	var err error
	if p.tok().Kind != _Colon {
		if start, err = p.comma(); err != nil {
			return nil, err
		}
		if p.tok().Kind != _Colon {
			if _, err := p.want(_Rbrack); err != nil {
				return nil, err
			}
			return NewIndexExpr(open, x, start), nil
		}
	}
	p.next() // :
	if p.tok().Kind != _Rbrack {
		if end, err = p.comma(); err != nil {
			return nil, err
		}
	}
	if _, err := p.want(_Rbrack); err != nil {
		return nil, err
	}
	return NewSliceExpr(open, x, start, end), nil
}

// args parses: ( [expr {, expr}] )
func (p *parser) args() ([]Expr, error) {
	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	var list []Expr
	for !p.got(_Rparen) {
		a, err := p.ternary()
		if err != nil {
			return nil, err
		}
		list = append(list, a)
		if p.tok().Kind != _Rparen {
			if _, err := p.want(_Comma); err != nil {
				return nil, err
			}
		}
	}
	return list, nil
}

func (p *parser) factor() (Expr, error) {
	t := p.tok()
	switch t.Kind {
	case _Ident:
		p.next()
		if p.tok().Kind == _Lparen {
			return p.receiverlessCall(t)
		}
		var args []types.Type
		if p.tok().Kind == _Lss && p.isGenericRef(0) {
			var err error
			if args, err = p.genericArgs(t); err != nil {
				return nil, err
			}
		}
		return NewIdentExpr(t, t.Lit, args), nil

	case _Bool, _Int, _Float, _String:
		// Primitive names refer to their box class, as in int.Parse(s).
		p.next()
		return NewIdentExpr(t, t.Kind.String(), nil), nil

	case _IntLit, _FloatLit, _StringLit, _True, _False, _Null:
		p.next()
		return NewLiteralExpr(t), nil

	case _This:
		p.next()
		return NewThisExpr(t), nil

	case _Base:
		p.next()
		return NewBaseExpr(t), nil

	case _New:
		p.next()
		return p.newExpr(t)

	case _Lparen:
		p.next()
		x, err := p.comma()
		if err != nil {
			return nil, err
		}
		if _, err := p.want(_Rparen); err != nil {
			return nil, err
		}
		return x, nil

	case _EOF:
		return nil, p.errorf(t, "Expected an expression.")
	}
	return nil, p.errorf(t, "Unexpected token while parsing expression '%s'.", t)
}

// receiverlessCall parses name(args). The receiver is this, or the
// enclosing class inside static members.
func (p *parser) receiverlessCall(name Token) (Expr, error) {
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	var recv Expr
	if m := p.memberScope(); m != nil && m.Static {
		recv = NewClassRefExpr(name)
	} else {
		recv = NewThisExpr(name)
	}
	return NewMethodCallExpr(name, recv, name.Lit, args), nil
}

// newExpr parses the rest of: new Type(args) or new Type[size]{[]}
func (p *parser) newExpr(start Token) (Expr, error) {
	typ, err := p.dataType()
	if err != nil {
		return nil, err
	}
	if !p.got(_Lbrack) {
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return NewNewExpr(start, typ, args, false), nil
	}

	size, err := p.expr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.want(_Rbrack); err != nil {
		return nil, err
	}
	typ = types.NewArray(typ)
	for p.tok().Kind == _Lbrack {
		if p.peek(1).Kind != _Rbrack {
			return nil, p.errorf(p.tok(), "Attempt to initialize array in a multidimensional syntax - only jagged arrays are supported!")
		}
		p.next()
		p.next()
		typ = types.NewArray(typ)
	}
	return NewNewExpr(start, typ, []Expr{size}, true), nil
}
