package syntax

import "github.com/you-not-fish/lsc/internal/types"

func accessOf(k Kind) AccessLevel {
	switch k {
	case _Private:
		return Private
	case _Protected:
		return Protected
	}
	return Public
}

// nativeName parses: ( "name" )
func (p *parser) nativeName() (string, error) {
	if _, err := p.want(_Lparen); err != nil {
		return "", err
	}
	name, err := p.want(_StringLit)
	if err != nil {
		return "", err
	}
	if _, err := p.want(_Rparen); err != nil {
		return "", err
	}
	return name.Lit, nil
}

// ----------------------------------------------------------------------------
// Classes

// classDecl parses: {attribute} (class | interface) Ident [<T, ...>] [: base, ...] { members }
func (p *parser) classDecl() (*Class, error) {
	c := &Class{}
	c.tok = p.tok()
	if err := p.classAttributes(c); err != nil {
		return nil, err
	}

	name, err := p.want(_Ident)
	if err != nil {
		return nil, err
	}
	c.Ident = name.Lit
	c.tok = name
	p.attach(c)

	if p.tok().Kind == _Lss {
		if c.Interface {
			return nil, p.errorf(name, "Interfaces cannot be generic.")
		}
		p.next()
		c.Generic = true
		for {
			param, err := p.want(_Ident)
			if err != nil {
				return nil, err
			}
			for _, prev := range c.GenericParams {
				if prev.Lit == param.Lit {
					return nil, Errorf(DuplicateIdentifierError, param, "Encountered duplicate generic parameter '%s'.", param.Lit)
				}
			}
			c.GenericParams = append(c.GenericParams, param)
			if !p.got(_Comma) {
				break
			}
		}
		if _, err := p.want(_Gtr); err != nil {
			return nil, err
		}
	}

	if p.got(_Colon) {
		if err := p.inheritance(c); err != nil {
			return nil, err
		}
	}

	open, err := p.want(_Lbrace)
	if err != nil {
		return nil, err
	}
	body := &ClassBody{}
	body.tok = open
	AddChild(c, body)
	c.Body = body

	p.push(c)
	p.push(body)
	defer func() {
		p.pop()
		p.pop()
	}()

	for {
		t := p.tok()
		switch t.Kind {
		case _Rbrace:
			p.next()
			return c, nil
		case _EOF:
			return nil, p.errorf(t, "Unexpected end-of-file, expecting closing brace.")
		case _Semi:
			p.next()
		case _Public, _Private, _Protected, _Static, _Abstract, _Virtual, _Override, _Const, _Native,
			_Bool, _Void, _Int, _Float, _String, _Ident:
			if err := p.memberDecl(c); err != nil {
				return nil, err
			}
		default:
			return nil, p.unexpected(t)
		}
	}
}

// classAttributes parses the attributes up to and including the class or
// interface keyword.
func (p *parser) classAttributes(c *Class) error {
	access, native, box := false, false, false
	for {
		t := p.next()
		switch t.Kind {
		case _Public, _Private, _Protected:
			if access {
				return p.errorf(t, "Encountered duplicate access level attribute.")
			}
			access = true
			c.Access = accessOf(t.Kind)

		case _Static:
			switch {
			case c.Abstract:
				return p.errorf(t, "Abstract class cannot be declared as static.")
			case c.Sealed:
				return p.errorf(t, "Sealed class cannot be declared as static.")
			case c.Static:
				return p.errorf(t, "Encountered duplicate static attribute.")
			}
			c.Static = true

		case _Abstract:
			switch {
			case c.Static:
				return p.errorf(t, "Static class cannot be declared as abstract.")
			case c.Sealed:
				return p.errorf(t, "Sealed class cannot be declared as abstract.")
			case c.Abstract:
				return p.errorf(t, "Encountered duplicate abstract attribute.")
			case native:
				return p.errorf(t, "Native class cannot be declared as abstract.")
			}
			c.Abstract = true

		case _Sealed:
			switch {
			case c.Static:
				return p.errorf(t, "Static class cannot be declared as sealed.")
			case c.Abstract:
				return p.errorf(t, "Abstract class cannot be declared as sealed.")
			case c.Sealed:
				return p.errorf(t, "Encountered duplicate sealed attribute.")
			}
			c.Sealed = true

		case _Native:
			switch {
			case c.Abstract:
				return p.errorf(t, "Abstract class cannot be declared as native.")
			case native:
				return p.errorf(t, "Encountered duplicate native attribute.")
			}
			name, err := p.nativeName()
			if err != nil {
				return err
			}
			native = true
			c.Native = true
			c.MangledIdent = name

		case _Box:
			if box {
				return p.errorf(t, "Encountered duplicate box class attribute.")
			}
			name, err := p.nativeName()
			if err != nil {
				return err
			}
			box = true
			c.BoxIdent = name

		case _Interface:
			switch {
			case c.Static:
				return p.errorf(t, "Interfaces cannot be declared as static.")
			case c.Abstract:
				return p.errorf(t, "Interfaces cannot be declared as abstract.")
			case c.Sealed:
				return p.errorf(t, "Interfaces cannot be declared as sealed.")
			}
			c.Interface = true
			return nil

		case _Class:
			return nil

		default:
			return p.errorf(t, "Unexpected token while parsing class attributes '%s'.", t)
		}
	}
}

// inheritance parses: null | Type {, Type}, or null followed by interfaces.
func (p *parser) inheritance(c *Class) error {
	if t := p.tok(); t.Kind == _Null {
		p.next()
		if !c.Native {
			return p.errorf(t, "Only native classes can inherit from NULL.")
		}
		if c.Interface {
			return p.errorf(t, "Interfaces cannot inherit from NULL.")
		}
		c.InheritsNull = true
		if !p.got(_Comma) {
			return nil
		}
	}
	for {
		t, err := p.identifierType()
		if err != nil {
			return err
		}
		c.Inherited = append(c.Inherited, t)
		if !p.got(_Comma) {
			return nil
		}
	}
}

// ----------------------------------------------------------------------------
// Members

// memberDecl parses a field, method or constructor and attaches it to the
// class body.
func (p *parser) memberDecl(c *Class) error {
	m := &ClassMember{}
	m.tok = p.tok()
	if err := p.memberAttributes(m); err != nil {
		return err
	}
	p.attach(m)
	p.push(m)
	defer p.pop()

	if t := p.tok(); t.Kind == _Ident && t.Lit == c.Ident && p.peek(1).Kind == _Lparen {
		switch {
		case m.Static:
			return p.errorf(t, "Constructors cannot be static.")
		case m.Abstract:
			return p.errorf(t, "Constructors cannot be abstract.")
		case m.Override:
			return p.errorf(t, "Constructors cannot be overriden.")
		case m.Virtual:
			return p.errorf(t, "Constructors cannot be virtual.")
		}
		p.next()
		m.Ident = t.Lit
		m.tok = t
		m.Constructor = true
		m.ReturnType = types.Typ[types.Void]
	} else {
		typ, err := p.dataType()
		if err != nil {
			return err
		}
		name, err := p.want(_Ident)
		if err != nil {
			return err
		}
		m.ReturnType = typ
		m.Ident = name.Lit
		m.tok = name
	}

	if p.got(_Lparen) {
		m.Kind = MethodMember
		if err := p.params(m); err != nil {
			return err
		}
		return p.methodRest(c, m)
	}
	m.Kind = FieldMember
	return p.fieldRest(c, m)
}

// memberAttributes parses the attributes preceding a member's type.
func (p *parser) memberAttributes(m *ClassMember) error {
	access := false
	for {
		t := p.tok()
		switch t.Kind {
		case _Bool, _Void, _Int, _Float, _String, _Ident:
			return nil

		case _Public, _Private, _Protected:
			if access {
				return p.errorf(t, "Encountered duplicate access level attribute.")
			}
			access = true
			m.Access = accessOf(t.Kind)

		case _Static:
			switch {
			case m.Abstract:
				return p.errorf(t, "Abstract class member cannot be declared as static.")
			case m.Virtual:
				return p.errorf(t, "Virtual class member cannot be declared as static.")
			case m.Const:
				p.warn(t, "Constant values are implicitly static, unneccessary static keyword.")
			case m.Static:
				return p.errorf(t, "Encountered duplicate static attribute.")
			}
			m.Static = true

		case _Abstract:
			switch {
			case m.Static:
				return p.errorf(t, "Static class member cannot be declared as abstract.")
			case m.Const:
				return p.errorf(t, "Constant class member cannot be declared as abstract.")
			case m.Native:
				return p.errorf(t, "Native class member cannot be declared as abstract.")
			case m.Abstract:
				return p.errorf(t, "Encountered duplicate abstract attribute.")
			}
			m.Abstract = true
			m.Virtual = true

		case _Virtual:
			switch {
			case m.Static:
				return p.errorf(t, "Static class member cannot be declared as virtual.")
			case m.Const:
				return p.errorf(t, "Constant class member cannot be declared as virtual.")
			case m.Override:
				p.warn(t, "Overriden class members are implicitly virtual, unneccessary virtual keyword.")
			case m.Virtual:
				return p.errorf(t, "Encountered duplicate virtual attribute.")
			}
			m.Virtual = true

		case _Override:
			switch {
			case m.Static:
				return p.errorf(t, "Static class member cannot be declared as overriden.")
			case m.Const:
				return p.errorf(t, "Constant class member cannot be declared as overriden.")
			case m.Override:
				return p.errorf(t, "Encountered duplicate override attribute.")
			case m.Virtual && !m.Abstract:
				p.warn(t, "Overriden class members are implicitly virtual, unneccessary virtual keyword.")
			}
			m.Override = true
			m.Virtual = true

		case _Const:
			switch {
			case m.Abstract:
				return p.errorf(t, "Abstract class member cannot be declared as constant.")
			case m.Virtual:
				return p.errorf(t, "Virtual class member cannot be declared as constant.")
			case m.Native:
				return p.errorf(t, "Native class member cannot be declared as constant.")
			case m.Static:
				p.warn(t, "Constant values are implicitly static, unneccessary static keyword.")
			case m.Const:
				return p.errorf(t, "Encountered duplicate const attribute.")
			}
			m.Const = true
			m.Static = true

		case _Native:
			p.next()
			switch {
			case m.Abstract:
				return p.errorf(t, "Abstract class member cannot be declared as native.")
			case m.Const:
				return p.errorf(t, "Constant class member cannot be declared as native.")
			case m.Native:
				return p.errorf(t, "Encountered duplicate native attribute.")
			}
			name, err := p.nativeName()
			if err != nil {
				return err
			}
			m.Native = true
			m.MangledIdent = name
			continue

		default:
			return p.errorf(t, "Unexpected token while parsing class member attributes '%s'.", t)
		}
		p.next()
	}
}

// params parses the parameter list after the opening parenthesis:
// Type name [= const], ... )
func (p *parser) params(m *ClassMember) error {
	for !p.got(_Rparen) {
		start := p.tok()
		typ, err := p.dataType()
		if err != nil {
			return err
		}
		name, err := p.want(_Ident)
		if err != nil {
			return err
		}
		for _, prev := range m.Args {
			if prev.Ident == name.Lit {
				return Errorf(DuplicateIdentifierError, name, "Encountered duplicate identifier '%s'.", name.Lit)
			}
		}
		v := &Variable{Ident: name.Lit, Type: typ, Param: true}
		v.tok = name
		p.attach(v)
		m.Args = append(m.Args, v)

		if p.got(_Assign) {
			init, err := p.constExpr(true)
			if err != nil {
				return err
			}
			AddChild(v, init)
			v.Init = init
		} else if len(m.Args) > 1 && m.Args[len(m.Args)-2].Init != nil {
			return p.errorf(start, "Parameter '%s' without a default value follows a parameter with one.", name.Lit)
		}

		if p.tok().Kind != _Rparen {
			if _, err := p.want(_Comma); err != nil {
				return err
			}
		}
	}
	return nil
}

// methodRest parses the body of a method, or the semicolon ending an
// abstract, interface or native declaration.
func (p *parser) methodRest(c *Class, m *ClassMember) error {
	if t := p.tok(); t.Kind == _Lbrace {
		switch {
		case c.Interface:
			return p.errorf(t, "Interface methods cannot have bodies.")
		case m.Native:
			return p.errorf(t, "Native methods cannot have bodies.")
		case m.Abstract:
			return p.errorf(t, "Abstract methods cannot have bodies.")
		}
		return p.methodBody(m)
	}
	if !m.Abstract && !c.Interface && !m.Native && !c.Native {
		return p.errorf(p.tok(), "Expecting method body declaration.")
	}
	_, err := p.want(_Semi)
	return err
}

// fieldRest parses an optional initializer and the closing semicolon.
func (p *parser) fieldRest(c *Class, m *ClassMember) error {
	name := m.tok
	switch {
	case m.Abstract:
		return p.errorf(name, "Class fields cannot be declared abstract.")
	case m.Override:
		return p.errorf(name, "Class fields cannot be declared as overridden.")
	case m.Virtual:
		return p.errorf(name, "Class fields cannot be declared virtual.")
	case c.Interface:
		return p.errorf(name, "Interfaces can only contain method declarations.")
	case c.Native && !m.Native && !m.Static:
		return p.errorf(name, "Cannot insert non-native instance variable '%s' into native class '%s'.", m.Ident, c.Ident)
	}

	if t := p.tok(); t.Kind == _Assign {
		if m.Native {
			return p.errorf(t, "Native members cannot be assigned values.")
		}
		p.next()
		var (
			init *ExprStmt
			err  error
		)
		if m.Const {
			init, err = p.constExpr(false)
		} else {
			init, err = p.expr(false)
		}
		if err != nil {
			return err
		}
		AddChild(m, init)
		m.Init = init
	} else if m.Const {
		return p.errorf(name, "Constant member expects initialization expression.")
	}

	_, err := p.want(_Semi)
	return err
}

// methodBody parses: { statements }
func (p *parser) methodBody(m *ClassMember) error {
	open := p.next()
	body := &MethodBody{}
	body.tok = open
	AddChild(m, body)
	m.Body = body

	p.push(body)
	defer p.pop()
	return p.stmtList()
}
