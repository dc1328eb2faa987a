package syntax

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Scanner performs lexical analysis on LSC source code.
type Scanner struct {
	source

	tok    Kind
	lit    string
	tokPos Pos

	litBuf strings.Builder
	first  error // first lexical error
}

// NewScanner creates a new Scanner for the given source.
func NewScanner(filename string, src io.Reader) *Scanner {
	s := &Scanner{}
	s.source = *newSource(filename, src, s.errorAt)
	return s
}

func (s *Scanner) errorAt(line, col uint32, msg string) {
	if s.first == nil {
		s.first = &Error{Kind: SyntaxError, Pos: NewPos(s.filename, line, col), Msg: msg}
	}
}

// Tokens scans the whole source and returns the token sequence terminated
// by an EOF token. Scanning stops at the first lexical error.
func (s *Scanner) Tokens() ([]Token, error) {
	var toks []Token
	for {
		s.Next()
		if s.first != nil {
			return nil, s.first
		}
		toks = append(toks, Token{Kind: s.tok, Lit: s.lit, Pos: s.tokPos})
		if s.tok == _EOF {
			return toks, nil
		}
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		s.tok = _EOF
		s.lit = ""
	}
}

// Token returns the current token kind.
func (s *Scanner) Token() Kind { return s.tok }

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string { return s.lit }

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos { return s.tokPos }

func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// scanIdent scans an identifier or keyword. Identifiers are NFC-normalized
// so that canonically equivalent spellings name the same declaration.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) || isMark(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = norm.NFC.String(s.litBuf.String())
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans an int or float literal.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.tok = _IntLit

	if s.ch == '0' && (lower(s.peek()) == 'x' || lower(s.peek()) == 'b') {
		s.continueLit()
		s.nextch()
		base := lower(s.ch)
		s.continueLit()
		s.nextch()
		valid := isHexDigit
		if base == 'b' {
			valid = isBinaryDigit
		}
		if !valid(s.ch) {
			s.error("invalid digit in numeric literal")
		}
		for valid(s.ch) {
			s.continueLit()
			s.nextch()
		}
		s.lit = s.litBuf.String()
		return
	}

	s.scanDecimalDigits()
	if s.ch == '.' && isDigit(s.peek()) || lower(s.ch) == 'e' {
		s.scanFraction()
	}
	if lower(s.ch) == 'f' {
		// 1.5f and 2f are float literals; the suffix is not part of the text.
		s.tok = _FloatLit
		s.nextch()
	}

	s.lit = s.litBuf.String()
}

func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanFraction scans the fractional part of a float (. and/or exponent).
func (s *Scanner) scanFraction() {
	s.tok = _FloatLit
	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.continueLit()
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.continueLit()
			s.nextch()
		}
		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}
}

// scanString scans a string literal. The literal is the decoded content.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _StringLit
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _StringLit
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '\'':
		s.nextch()
		return '\'', true
	case '0':
		s.nextch()
		return 0, true
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// op sets the current token.
func (s *Scanner) op(kind Kind, lit string) {
	s.tok = kind
	s.lit = lit
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	// assign picks between x and x= once x has been consumed.
	assign := func(plain, withAssign Kind) {
		if s.ch == '=' {
			s.nextch()
			s.op(withAssign, withAssign.String())
			return
		}
		s.op(plain, plain.String())
	}

	switch ch {
	case '+':
		if s.ch == '+' {
			s.nextch()
			s.op(_Inc, "++")
			break
		}
		assign(_Add, _AddAssign)
	case '-':
		if s.ch == '-' {
			s.nextch()
			s.op(_Dec, "--")
			break
		}
		assign(_Sub, _SubAssign)
	case '*':
		assign(_Mul, _MulAssign)
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			s.skipBlockComment()
			return true
		}
		assign(_Div, _DivAssign)
	case '%':
		assign(_Rem, _RemAssign)
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.op(_AndAnd, "&&")
			break
		}
		assign(_And, _AndAssign)
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.op(_OrOr, "||")
			break
		}
		assign(_Or, _OrAssign)
	case '^':
		assign(_Xor, _XorAssign)
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.op(_Leq, "<=")
		case '<':
			s.nextch()
			assign(_Shl, _ShlAssign)
		default:
			s.op(_Lss, "<")
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.op(_Geq, ">=")
		case '>':
			s.nextch()
			assign(_Shr, _ShrAssign)
		default:
			s.op(_Gtr, ">")
		}
	case '=':
		assign(_Assign, _Eql)
	case '!':
		switch s.ch {
		case '=':
			s.nextch()
			s.op(_Neq, "!=")
		case '!':
			s.nextch()
			s.op(_NotNot, "!!")
		default:
			s.op(_Not, "!")
		}
	case '~':
		s.op(_Tilde, "~")
	case '?':
		s.op(_Question, "?")
	case ':':
		s.op(_Colon, ":")
	case '(':
		s.op(_Lparen, "(")
	case ')':
		s.op(_Rparen, ")")
	case '[':
		s.op(_Lbrack, "[")
	case ']':
		s.op(_Rbrack, "]")
	case '{':
		s.op(_Lbrace, "{")
	case '}':
		s.op(_Rbrace, "}")
	case ',':
		s.op(_Comma, ",")
	case ';':
		s.op(_Semi, ";")
	case '.':
		s.op(_Dot, ".")
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* ... */ comment.
func (s *Scanner) skipBlockComment() {
	s.nextch() // skip *
	for s.ch >= 0 {
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			return
		}
		s.nextch()
	}
	s.error("comment not terminated")
}

// Tokenize is a convenience wrapper that scans src completely.
func Tokenize(filename string, src io.Reader) ([]Token, error) {
	return NewScanner(filename, src).Tokens()
}
