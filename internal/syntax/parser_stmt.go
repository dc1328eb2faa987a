package syntax

// ----------------------------------------------------------------------------
// Statements
//
// Every statement attaches itself to the current scope when it is created.
// An empty statement (;) produces no node and is returned as nil.

// stmtList parses statements up to and including the closing brace.
func (p *parser) stmtList() error {
	for {
		switch t := p.tok(); t.Kind {
		case _Rbrace:
			p.next()
			return nil
		case _EOF:
			return p.errorf(t, "Unexpected end-of-file, expecting closing brace.")
		}
		if _, err := p.stmt(); err != nil {
			return err
		}
	}
}

func (p *parser) stmt() (Stmt, error) {
	switch t := p.tok(); t.Kind {
	case _Semi:
		p.next()
		return nil, nil
	case _Lbrace:
		return p.block()
	case _If:
		return p.ifStmt()
	case _While:
		return p.whileStmt()
	case _Do:
		return p.doStmt()
	case _For:
		return p.forStmt()
	case _Foreach:
		return p.forEachStmt()
	case _Switch:
		return p.switchStmt()
	case _Try:
		return p.tryStmt()
	case _Throw:
		return p.throwStmt()
	case _Return:
		return p.returnStmt()
	case _Break:
		s := &BreakStmt{}
		s.tok = p.next()
		p.attach(s)
		return s, p.semi()
	case _Continue:
		s := &ContinueStmt{}
		s.tok = p.next()
		p.attach(s)
		return s, p.semi()
	case _Static:
		return nil, p.errorf(t, "Static declarations are not permitted in a methods body. Please put static declarations in the class body instead.")
	case _Const:
		return nil, p.errorf(t, "Constant declarations are not permitted in a methods body. Please put constant declarations in the class body instead.")
	}
	return p.simpleStmt()
}

func (p *parser) semi() error {
	_, err := p.want(_Semi)
	return err
}

// simpleStmt parses a local variable declaration or an expression
// statement, including the terminating semicolon.
func (p *parser) simpleStmt() (Stmt, error) {
	if p.isVarDecl() {
		v, err := p.localVars(true, true)
		if err != nil {
			return nil, err
		}
		return v, p.semi()
	}
	x, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	p.attach(x)
	return x, p.semi()
}

// localVars parses: Type a [= x] {, b [= y]}
// Every variable is attached to the current scope; the first is returned.
// Initializers are parsed without the comma operator, so that a comma
// always separates declarations.
func (p *parser) localVars(multiple, assign bool) (*Variable, error) {
	typ, err := p.dataType()
	if err != nil {
		return nil, err
	}
	var first *Variable
	for {
		name, err := p.want(_Ident)
		if err != nil {
			return nil, err
		}
		v := &Variable{Ident: name.Lit, Type: typ}
		v.tok = name
		p.attach(v)
		if first == nil {
			first = v
		}
		if assign && p.got(_Assign) {
			init, err := p.expr(true)
			if err != nil {
				return nil, err
			}
			AddChild(v, init)
			v.Init = init
		}
		if !multiple || !p.got(_Comma) {
			return first, nil
		}
	}
}

// block parses: { statements }
func (p *parser) block() (*Block, error) {
	open, err := p.want(_Lbrace)
	if err != nil {
		return nil, err
	}
	b := &Block{}
	b.tok = open
	p.attach(b)
	p.push(b)
	defer p.pop()
	return b, p.stmtList()
}

// cond parses: ( expr ) and attaches the expression to the current scope.
func (p *parser) cond() (*ExprStmt, error) {
	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	x, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	p.attach(x)
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}
	return x, nil
}

// ifStmt parses: if ( expr ) stmt [else stmt]
func (p *parser) ifStmt() (*IfStmt, error) {
	s := &IfStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	s.Cond = cond
	if s.Then, err = p.stmt(); err != nil {
		return nil, err
	}
	if p.got(_Else) {
		if s.Else, err = p.stmt(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// whileStmt parses: while ( expr ) stmt
func (p *parser) whileStmt() (*WhileStmt, error) {
	s := &WhileStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	s.Cond = cond
	if s.Body, err = p.stmt(); err != nil {
		return nil, err
	}
	return s, nil
}

// doStmt parses: do stmt [while ( expr )] [;]
// Without a condition the loop runs until it is broken out of.
func (p *parser) doStmt() (*DoStmt, error) {
	s := &DoStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	var err error
	if s.Body, err = p.stmt(); err != nil {
		return nil, err
	}
	if p.got(_While) {
		cond, err := p.cond()
		if err != nil {
			return nil, err
		}
		s.Cond = cond
	}
	p.got(_Semi)
	return s, nil
}

// forStmt parses: for ( [init] ; [cond] ; [incr] ) stmt
// The statement is wrapped in a block that scopes the init variables.
func (p *parser) forStmt() (*Block, error) {
	start := p.next()
	outer := &Block{}
	outer.tok = start
	p.attach(outer)
	p.push(outer)
	defer p.pop()

	s := &ForStmt{}
	s.tok = start
	p.attach(s)
	p.push(s)
	defer p.pop()

	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	if !p.got(_Semi) {
		init, err := p.simpleStmt()
		if err != nil {
			return nil, err
		}
		s.Init = init
	}
	if p.tok().Kind != _Semi {
		cond, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		p.attach(cond)
		s.Cond = cond
	}
	if err := p.semi(); err != nil {
		return nil, err
	}
	if p.tok().Kind != _Rparen {
		incr, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		p.attach(incr)
		s.Incr = incr
	}
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}

	var err error
	if s.Body, err = p.stmt(); err != nil {
		return nil, err
	}
	return outer, nil
}

// forEachStmt parses: foreach ( (Type name | expr) in expr ) stmt
// The statement is wrapped in a block that scopes the loop variable.
func (p *parser) forEachStmt() (*Block, error) {
	start := p.next()
	outer := &Block{}
	outer.tok = start
	p.attach(outer)
	p.push(outer)
	defer p.pop()

	s := &ForEachStmt{}
	s.tok = start
	p.attach(s)
	p.push(s)
	defer p.pop()

	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	switch t := p.tok(); t.Kind {
	case _Bool, _Int, _Float, _String, _Ident, _This, _Base, _Lparen:
	default:
		return nil, p.errorf(t, "Unexpected token '%s', expecting expression or variable declaration.", t)
	}
	if p.isVarDecl() {
		v, err := p.localVars(false, false)
		if err != nil {
			return nil, err
		}
		s.Var = v
	} else {
		x, err := p.expr(true)
		if err != nil {
			return nil, err
		}
		p.attach(x)
		s.Var = x
	}
	if _, err := p.want(_In); err != nil {
		return nil, err
	}
	x, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	p.attach(x)
	s.X = x
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}
	if s.Body, err = p.stmt(); err != nil {
		return nil, err
	}
	return outer, nil
}

// switchStmt parses: switch ( expr ) { {case v {, v} : stmts} [default : stmts] }
func (p *parser) switchStmt() (*SwitchStmt, error) {
	s := &SwitchStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	x, err := p.cond()
	if err != nil {
		return nil, err
	}
	s.X = x
	if _, err := p.want(_Lbrace); err != nil {
		return nil, err
	}

	seenCase, seenDefault := false, false
	for {
		t := p.tok()
		switch t.Kind {
		case _Rbrace:
			p.next()
			return s, nil

		case _Case:
			p.next()
			if seenDefault {
				return nil, p.errorf(t, "Encountered case block after default block. Default block must be last.")
			}
			seenCase = true
			c := &CaseStmt{}
			c.tok = t
			p.attach(c)
			if err := p.caseClause(c); err != nil {
				return nil, err
			}

		case _Default:
			p.next()
			if !seenCase {
				p.warn(t, "Encountered default block without any case blocks. Empty switch statement?")
			}
			if seenDefault {
				return nil, p.errorf(t, "Encountered duplicate default block in switch statement.")
			}
			seenDefault = true
			d := &DefaultStmt{}
			d.tok = t
			p.attach(d)
			if err := p.defaultClause(d); err != nil {
				return nil, err
			}

		case _EOF:
			return nil, p.errorf(t, "Unexpected end-of-file, expecting closing brace.")

		default:
			return nil, p.errorf(t, "Unexpected token '%s', expecting case or default block.", t)
		}
	}
}

func (p *parser) caseClause(c *CaseStmt) error {
	p.push(c)
	defer p.pop()
	for {
		v, err := p.expr(true)
		if err != nil {
			return err
		}
		p.attach(v)
		c.Values = append(c.Values, v)
		if !p.got(_Comma) {
			break
		}
	}
	colon, err := p.want(_Colon)
	if err != nil {
		return err
	}
	if t := p.tok(); t.Kind == _Case {
		return p.errorf(t, "Case blocks cannot fall-through. Use commas to separate expressions in a single case statement instead.")
	}
	c.Body, err = p.clauseBody(colon)
	return err
}

func (p *parser) defaultClause(d *DefaultStmt) error {
	p.push(d)
	defer p.pop()
	colon, err := p.want(_Colon)
	if err != nil {
		return err
	}
	if t := p.tok(); t.Kind == _Rbrace {
		return p.errorf(t, "Default blocks cannot be empty.")
	}
	d.Body, err = p.clauseBody(colon)
	return err
}

// clauseBody collects the statements of a case or default clause up to the
// next clause or the end of the switch.
func (p *parser) clauseBody(colon Token) (*Block, error) {
	b := &Block{}
	b.tok = colon
	p.attach(b)
	p.push(b)
	defer p.pop()
	for {
		switch p.tok().Kind {
		case _Case, _Default, _Rbrace, _EOF:
			return b, nil
		}
		if _, err := p.stmt(); err != nil {
			return nil, err
		}
	}
}

// tryStmt parses: try block {catch ( Type name ) block}
func (p *parser) tryStmt() (*TryStmt, error) {
	s := &TryStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	var err error
	if s.Body, err = p.block(); err != nil {
		return nil, err
	}
	for p.tok().Kind == _Catch {
		c, err := p.catchClause()
		if err != nil {
			return nil, err
		}
		s.Catches = append(s.Catches, c)
	}
	return s, nil
}

func (p *parser) catchClause() (*CatchStmt, error) {
	c := &CatchStmt{}
	c.tok = p.next()
	p.attach(c)
	p.push(c)
	defer p.pop()

	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	v, err := p.localVars(false, false)
	if err != nil {
		return nil, err
	}
	c.Var = v
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}
	if c.Body, err = p.block(); err != nil {
		return nil, err
	}
	return c, nil
}

// throwStmt parses: throw expr ;
func (p *parser) throwStmt() (*ThrowStmt, error) {
	s := &ThrowStmt{}
	s.tok = p.next()
	p.attach(s)
	p.push(s)
	defer p.pop()

	x, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	p.attach(x)
	s.X = x
	return s, p.semi()
}

// returnStmt parses: return [expr] ;
func (p *parser) returnStmt() (*ReturnStmt, error) {
	s := &ReturnStmt{}
	s.tok = p.next()
	p.attach(s)
	if p.tok().Kind == _Semi {
		p.next()
		return s, nil
	}
	p.push(s)
	defer p.pop()

	x, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	p.attach(x)
	s.Result = x
	return s, p.semi()
}
