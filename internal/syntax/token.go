package syntax

import "fmt"

// Kind is the lexical class of a token.
type Kind uint

const (
	// Special tokens
	_EOF Kind = iota // end of file

	// Literals
	_Ident     // foo, List, _tmp
	_IntLit    // 123, 0x1F
	_FloatLit  // 3.14, 1e10
	_StringLit // "hello"

	// Assignment operators
	_Assign    // =
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=
	_RemAssign // %=
	_AndAssign // &=
	_OrAssign  // |=
	_XorAssign // ^=
	_ShlAssign // <<=
	_ShrAssign // >>=

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic and bitwise operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Rem // %
	_And // &
	_Or  // |
	_Xor // ^
	_Shl // <<
	_Shr // >>

	// Unary operators
	_Not    // !
	_NotNot // !!
	_Tilde  // ~
	_Inc    // ++
	_Dec    // --

	// Delimiters
	_Question // ?
	_Colon    // :
	_Lparen   // (
	_Rparen   // )
	_Lbrack   // [
	_Rbrack   // ]
	_Lbrace   // {
	_Rbrace   // }
	_Comma    // ,
	_Semi     // ;
	_Dot      // .

	// Keywords
	_Using
	_Native
	_Class
	_Interface
	_Public
	_Private
	_Protected
	_Static
	_Abstract
	_Sealed
	_Virtual
	_Override
	_Const
	_Box
	_New
	_This
	_Base
	_Null
	_True
	_False
	_Bool
	_Int
	_Float
	_String
	_Void
	_If
	_Else
	_While
	_Do
	_For
	_Foreach
	_In
	_Switch
	_Case
	_Default
	_Break
	_Continue
	_Return
	_Try
	_Catch
	_Throw
	_Is
	_As

	kindCount
)

var kindNames = [...]string{
	_EOF: "EOF",

	_Ident:     "IDENT",
	_IntLit:    "INT",
	_FloatLit:  "FLOAT",
	_StringLit: "STRING",

	_Assign:    "=",
	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",
	_RemAssign: "%=",
	_AndAssign: "&=",
	_OrAssign:  "|=",
	_XorAssign: "^=",
	_ShlAssign: "<<=",
	_ShrAssign: ">>=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Rem: "%",
	_And: "&",
	_Or:  "|",
	_Xor: "^",
	_Shl: "<<",
	_Shr: ">>",

	_Not:    "!",
	_NotNot: "!!",
	_Tilde:  "~",
	_Inc:    "++",
	_Dec:    "--",

	_Question: "?",
	_Colon:    ":",
	_Lparen:   "(",
	_Rparen:   ")",
	_Lbrack:   "[",
	_Rbrack:   "]",
	_Lbrace:   "{",
	_Rbrace:   "}",
	_Comma:    ",",
	_Semi:     ";",
	_Dot:      ".",

	_Using:     "using",
	_Native:    "native",
	_Class:     "class",
	_Interface: "interface",
	_Public:    "public",
	_Private:   "private",
	_Protected: "protected",
	_Static:    "static",
	_Abstract:  "abstract",
	_Sealed:    "sealed",
	_Virtual:   "virtual",
	_Override:  "override",
	_Const:     "const",
	_Box:       "box",
	_New:       "new",
	_This:      "this",
	_Base:      "base",
	_Null:      "null",
	_True:      "true",
	_False:     "false",
	_Bool:      "bool",
	_Int:       "int",
	_Float:     "float",
	_String:    "string",
	_Void:      "void",
	_If:        "if",
	_Else:      "else",
	_While:     "while",
	_Do:        "do",
	_For:       "for",
	_Foreach:   "foreach",
	_In:        "in",
	_Switch:    "switch",
	_Case:      "case",
	_Default:   "default",
	_Break:     "break",
	_Continue:  "continue",
	_Return:    "return",
	_Try:       "try",
	_Catch:     "catch",
	_Throw:     "throw",
	_Is:        "is",
	_As:        "as",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= _Using && k <= _As
}

// IsLiteral reports whether k is an int, float or string literal.
func (k Kind) IsLiteral() bool {
	return k >= _IntLit && k <= _StringLit
}

// IsAssignOp reports whether k is = or a compound assignment operator.
func (k Kind) IsAssignOp() bool {
	return k >= _Assign && k <= _ShrAssign
}

// IsOperator reports whether k is an operator token.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Dec
}

// Exported kinds for the checker and backends.
const (
	EOF = _EOF

	Ident     = _Ident
	IntLit    = _IntLit
	FloatLit  = _FloatLit
	StringLit = _StringLit
	True      = _True
	False     = _False
	Null      = _Null

	Assign    = _Assign
	AddAssign = _AddAssign
	SubAssign = _SubAssign
	MulAssign = _MulAssign
	DivAssign = _DivAssign
	RemAssign = _RemAssign
	AndAssign = _AndAssign
	OrAssign  = _OrAssign
	XorAssign = _XorAssign
	ShlAssign = _ShlAssign
	ShrAssign = _ShrAssign

	OrOr   = _OrOr
	AndAnd = _AndAnd

	Eql = _Eql
	Neq = _Neq
	Lss = _Lss
	Leq = _Leq
	Gtr = _Gtr
	Geq = _Geq

	Add = _Add
	Sub = _Sub
	Mul = _Mul
	Div = _Div
	Rem = _Rem
	And = _And
	Or  = _Or
	Xor = _Xor
	Shl = _Shl
	Shr = _Shr

	Not    = _Not
	NotNot = _NotNot
	Tilde  = _Tilde
	Inc    = _Inc
	Dec    = _Dec

	Is = _Is
	As = _As
)

// Token is a single lexical token. Tokens are immutable values.
type Token struct {
	Kind Kind
	Lit  string // literal text; decoded content for string literals
	Pos  Pos
}

// String returns a short description of the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case _Ident, _IntLit, _FloatLit:
		return t.Lit
	case _StringLit:
		return fmt.Sprintf("%q", t.Lit)
	}
	return t.Kind.String()
}

// keywords maps keyword strings to their kind.
// Class names such as object, Int and String are ordinary identifiers.
var keywords = map[string]Kind{}

func init() {
	for k := _Using; k <= _As; k++ {
		keywords[kindNames[k]] = k
	}
}

// LookupKeyword returns the keyword kind for ident, or _Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Ident
}
