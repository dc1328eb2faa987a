package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/lsc/internal/types"
)

// genericLookahead bounds the scan for a closing > when deciding whether
// Name<...> is a generic reference.
const genericLookahead = 64

// parser performs syntax analysis on LSC source code. Nodes are attached to
// the scope on top of the stack as they are created, so the tree mirrors
// the lexical nesting while it is being built.
type parser struct {
	toks   *TokenStream
	diag   Diagnostics
	using  UsingHandler
	scopes []Node
}

// Parse parses toks and adds the declared classes to pkg. Warnings go to
// diag and using statements to using; either may be nil. The first syntax
// error aborts the parse.
func Parse(toks []Token, pkg *Package, diag Diagnostics, using UsingHandler) error {
	if diag == nil {
		diag = nopDiagnostics{}
	}
	if using == nil {
		using = nopUsing{}
	}
	p := &parser{
		toks:   NewTokenStream(toks),
		diag:   diag,
		using:  using,
		scopes: []Node{pkg},
	}
	return p.file()
}

// ParseFile scans and parses src into pkg.
func ParseFile(filename string, src io.Reader, pkg *Package, diag Diagnostics, using UsingHandler) error {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return err
	}
	return Parse(toks, pkg, diag, using)
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the current (unconsumed) token.
func (p *parser) tok() Token { return p.toks.Current() }

// next consumes the current token and returns it.
func (p *parser) next() Token { return p.toks.Next() }

// peek returns the token offset positions past the current one.
func (p *parser) peek(offset int) Token { return p.toks.LookAhead(offset) }

// got reports whether the current token is of kind k.
// If so, it consumes the token and returns true.
func (p *parser) got(k Kind) bool {
	if p.tok().Kind == k {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it is of kind k.
// Otherwise, it returns a syntax error.
func (p *parser) want(k Kind) (Token, error) {
	t := p.tok()
	if t.Kind != k {
		if t.Kind == _EOF {
			return t, p.errorf(t, "Unexpected end-of-file, expecting '%s'.", k)
		}
		return t, p.errorf(t, "Unexpected token '%s', expecting '%s'.", t, k)
	}
	return p.next(), nil
}

// ----------------------------------------------------------------------------
// Error handling

func (p *parser) errorf(t Token, format string, args ...interface{}) error {
	return Errorf(SyntaxError, t, format, args...)
}

func (p *parser) unexpected(t Token) error {
	if t.Kind == _EOF {
		return p.errorf(t, "Unexpected end-of-file.")
	}
	return p.errorf(t, "Unexpected token '%s'.", t)
}

func (p *parser) warn(t Token, format string, args ...interface{}) {
	p.diag.Warning(fmt.Sprintf(format, args...), t)
}

// ----------------------------------------------------------------------------
// Scope stack

func (p *parser) push(n Node) { p.scopes = append(p.scopes, n) }
func (p *parser) pop()        { p.scopes = p.scopes[:len(p.scopes)-1] }
func (p *parser) scope() Node { return p.scopes[len(p.scopes)-1] }

// attach adds n to the current scope.
func (p *parser) attach(n Node) { AddChild(p.scope(), n) }

// classScope returns the innermost class being parsed.
func (p *parser) classScope() *Class {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if c, ok := p.scopes[i].(*Class); ok {
			return c
		}
	}
	return nil
}

// memberScope returns the class member being parsed, or nil.
func (p *parser) memberScope() *ClassMember {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if m, ok := p.scopes[i].(*ClassMember); ok {
			return m
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Top level

// file parses: { using | class }
func (p *parser) file() error {
	for {
		t := p.tok()
		switch t.Kind {
		case _EOF:
			return nil
		case _Semi:
			p.next()
		case _Using:
			if err := p.usingStmt(); err != nil {
				return err
			}
		case _Public, _Private, _Protected, _Static, _Abstract, _Sealed, _Native, _Box, _Interface, _Class:
			if _, err := p.classDecl(); err != nil {
				return err
			}
		default:
			return p.unexpected(t)
		}
	}
}

// usingStmt parses: using [native] a.b.c; or using [native] a.b.*;
func (p *parser) usingStmt() error {
	start := p.next()
	native := p.got(_Native)

	var segs []string
	wildcard := false
	for {
		if len(segs) > 0 && p.got(_Mul) {
			wildcard = true
			break
		}
		id, err := p.want(_Ident)
		if err != nil {
			return err
		}
		segs = append(segs, id.Lit)
		if p.tok().Kind == _Semi {
			break
		}
		if _, err := p.want(_Dot); err != nil {
			return err
		}
	}
	if _, err := p.want(_Semi); err != nil {
		return err
	}

	path := strings.Join(segs, ".")
	added, err := p.using.Using(path, native, wildcard, start)
	if err != nil {
		return err
	}
	if !added {
		p.warn(start, "Using statement imports duplicate file '%s'.", path)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Data types

// dataType parses: (bool | void | int | float | string | Ident[<...>]) {[]}
func (p *parser) dataType() (types.Type, error) {
	t := p.tok()
	var typ types.Type
	switch t.Kind {
	case _Bool:
		p.next()
		typ = types.Typ[types.Bool]
	case _Void:
		p.next()
		typ = types.Typ[types.Void]
	case _Int:
		p.next()
		typ = types.Typ[types.Int]
	case _Float:
		p.next()
		typ = types.Typ[types.Float]
	case _String:
		p.next()
		typ = types.Typ[types.String]
	case _Ident:
		id, err := p.identifierType()
		if err != nil {
			return nil, err
		}
		typ = id
	default:
		return nil, p.errorf(t, "Unexpected token while parsing data type '%s'.", t)
	}

	for p.tok().Kind == _Lbrack && p.peek(1).Kind == _Rbrack {
		p.next()
		p.next()
		typ = types.NewArray(typ)
	}
	return typ, nil
}

// identifierType parses: Ident [< Type {, Type} >]
func (p *parser) identifierType() (*types.Identifier, error) {
	name, err := p.want(_Ident)
	if err != nil {
		return nil, err
	}
	var args []types.Type
	if p.tok().Kind == _Lss {
		if args, err = p.genericArgs(name); err != nil {
			return nil, err
		}
	}
	return types.NewIdentifier(name.Lit, args), nil
}

// genericArgs parses: < Type {, Type} >
// A >> closing two lists at once is split into two > tokens.
func (p *parser) genericArgs(name Token) ([]types.Type, error) {
	p.next() // <
	if k := p.tok().Kind; k == _Gtr || k == _Shr {
		return nil, p.errorf(name, "Generic classes must be declared one or more arguments.")
	}
	var args []types.Type
	for {
		a, err := p.dataType()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		p.toks.SplitShr()
		if !p.got(_Comma) {
			break
		}
	}
	if _, err := p.want(_Gtr); err != nil {
		return nil, err
	}
	return args, nil
}

// genericListEnd scans forward from the < at offset start for the > that
// closes it, and returns that token's offset. The scan gives up after
// genericLookahead tokens or at any token that cannot occur in a type list.
// A >> closing more lists than are open also ends it.
func (p *parser) genericListEnd(start int) (int, bool) {
	depth := 1
	for i := start + 1; i < start+genericLookahead; i++ {
		switch p.peek(i).Kind {
		case _Lss:
			depth++
		case _Gtr:
			depth--
			if depth <= 0 {
				return i, true
			}
		case _Shr:
			// At depth 1 the list closes on the first half and the
			// second half is a stray >, which no type reference is
			// followed by.
			if depth < 2 {
				return 0, false
			}
			depth -= 2
			if depth == 0 {
				return i, true
			}
		case _Ident, _Int, _Float, _String, _Void, _Bool, _Comma, _Lbrack, _Rbrack:
		default:
			return 0, false
		}
	}
	return 0, false
}

// isGenericRef reports whether the < at offset start opens a generic
// argument list that is immediately followed by a period.
func (p *parser) isGenericRef(start int) bool {
	end, ok := p.genericListEnd(start)
	return ok && p.peek(end+1).Kind == _Dot
}

// isVarDecl reports whether the tokens at the cursor start a local
// variable declaration: a type, optionally with generic arguments and
// array suffixes, followed by an identifier.
func (p *parser) isVarDecl() bool {
	switch p.tok().Kind {
	case _Bool, _Void, _Int, _Float, _String, _Ident:
	default:
		return false
	}
	i := 1
	if p.tok().Kind == _Ident && p.peek(1).Kind == _Lss {
		end, ok := p.genericListEnd(1)
		if !ok {
			return false
		}
		i = end + 1
	}
	for p.peek(i).Kind == _Lbrack {
		if p.peek(i+1).Kind != _Rbrack {
			return false
		}
		i += 2
	}
	return p.peek(i).Kind == _Ident
}
