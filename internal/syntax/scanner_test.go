package syntax

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
		lits  []string
	}{
		// Identifiers and keywords
		{"ident", "foo", []Kind{_Ident, _EOF}, []string{"foo", ""}},
		{"ident_underscore", "_bar", []Kind{_Ident, _EOF}, []string{"_bar", ""}},
		{"ident_digits", "foo123", []Kind{_Ident, _EOF}, []string{"foo123", ""}},
		{"ident_unicode", "größe", []Kind{_Ident, _EOF}, []string{"größe", ""}},
		{"class_name", "Int", []Kind{_Ident, _EOF}, []string{"Int", ""}},
		{"keyword_int", "int", []Kind{_Int, _EOF}, []string{"int", ""}},
		{"keyword_null", "null", []Kind{_Null, _EOF}, []string{"null", ""}},
		{"keyword_foreach", "foreach", []Kind{_Foreach, _EOF}, []string{"foreach", ""}},

		// Integer literals
		{"int_dec", "123", []Kind{_IntLit, _EOF}, []string{"123", ""}},
		{"int_zero", "0", []Kind{_IntLit, _EOF}, []string{"0", ""}},
		{"int_hex_lower", "0x1f", []Kind{_IntLit, _EOF}, []string{"0x1f", ""}},
		{"int_hex_upper", "0X1F", []Kind{_IntLit, _EOF}, []string{"0X1F", ""}},
		{"int_bin", "0b1010", []Kind{_IntLit, _EOF}, []string{"0b1010", ""}},

		// Float literals
		{"float_simple", "3.14", []Kind{_FloatLit, _EOF}, []string{"3.14", ""}},
		{"float_exp", "1e10", []Kind{_FloatLit, _EOF}, []string{"1e10", ""}},
		{"float_exp_neg", "2.5e-3", []Kind{_FloatLit, _EOF}, []string{"2.5e-3", ""}},
		{"float_suffix", "1.5f", []Kind{_FloatLit, _EOF}, []string{"1.5", ""}},
		{"float_int_suffix", "2f", []Kind{_FloatLit, _EOF}, []string{"2", ""}},
		{"int_then_dot", "3.x", []Kind{_IntLit, _Dot, _Ident, _EOF}, []string{"3", ".", "x", ""}},

		// String literals (decoded content)
		{"string_simple", `"hello"`, []Kind{_StringLit, _EOF}, []string{"hello", ""}},
		{"string_empty", `""`, []Kind{_StringLit, _EOF}, []string{"", ""}},
		{"string_escape_n", `"a\nb"`, []Kind{_StringLit, _EOF}, []string{"a\nb", ""}},
		{"string_escape_t", `"a\tb"`, []Kind{_StringLit, _EOF}, []string{"a\tb", ""}},
		{"string_escape_quote", `"a\"b"`, []Kind{_StringLit, _EOF}, []string{"a\"b", ""}},
		{"string_escape_single", `"a\'b"`, []Kind{_StringLit, _EOF}, []string{"a'b", ""}},
		{"string_escape_zero", `"a\0b"`, []Kind{_StringLit, _EOF}, []string{"a\x00b", ""}},

		// Operators
		{"assign_ops", "= += -= *= /= %= &= |= ^= <<= >>=",
			[]Kind{_Assign, _AddAssign, _SubAssign, _MulAssign, _DivAssign, _RemAssign, _AndAssign, _OrAssign, _XorAssign, _ShlAssign, _ShrAssign, _EOF},
			[]string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", ""}},
		{"comparisons", "== != < <= > >=",
			[]Kind{_Eql, _Neq, _Lss, _Leq, _Gtr, _Geq, _EOF},
			[]string{"==", "!=", "<", "<=", ">", ">=", ""}},
		{"unary", "! !! ~ ++ --",
			[]Kind{_Not, _NotNot, _Tilde, _Inc, _Dec, _EOF},
			[]string{"!", "!!", "~", "++", "--", ""}},
		{"logical", "a&&b||c",
			[]Kind{_Ident, _AndAnd, _Ident, _OrOr, _Ident, _EOF},
			[]string{"a", "&&", "b", "||", "c", ""}},
		{"nested_generic", "List<List<int>>",
			[]Kind{_Ident, _Lss, _Ident, _Lss, _Int, _Shr, _EOF},
			[]string{"List", "<", "List", "<", "int", ">>", ""}},
		{"delimiters", "?:()[]{},;.",
			[]Kind{_Question, _Colon, _Lparen, _Rparen, _Lbrack, _Rbrack, _Lbrace, _Rbrace, _Comma, _Semi, _Dot, _EOF},
			[]string{"?", ":", "(", ")", "[", "]", "{", "}", ",", ";", ".", ""}},

		// Comments
		{"line_comment", "a // b\nc", []Kind{_Ident, _Ident, _EOF}, []string{"a", "c", ""}},
		{"block_comment", "a /* b\n * c */ d", []Kind{_Ident, _Ident, _EOF}, []string{"a", "d", ""}},
		{"division", "a / b", []Kind{_Ident, _Div, _Ident, _EOF}, []string{"a", "/", "b", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("test.ls", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			if len(toks) != len(tt.kinds) {
				t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(tt.kinds))
			}
			for i, tok := range toks {
				if tok.Kind != tt.kinds[i] {
					t.Errorf("token %d: kind = %v, want %v", i, tok.Kind, tt.kinds[i])
				}
				if tok.Lit != tt.lits[i] {
					t.Errorf("token %d: lit = %q, want %q", i, tok.Lit, tt.lits[i])
				}
			}
		})
	}
}

func TestScanNormalizesIdentifiers(t *testing.T) {
	// é precomposed and as e followed by a combining acute accent.
	toks, err := Tokenize("test.ls", strings.NewReader("caf\u00e9 cafe\u0301"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens %v, want 3", len(toks), toks)
	}
	if toks[0].Lit != toks[1].Lit {
		t.Errorf("identifiers differ after normalization: %q != %q", toks[0].Lit, toks[1].Lit)
	}
}

func TestPosition(t *testing.T) {
	src := `class A
{
    int x = 123;
}`

	expected := []struct {
		kind Kind
		line uint32
		col  uint32
	}{
		{_Class, 1, 1},
		{_Ident, 1, 7},
		{_Lbrace, 2, 1},
		{_Int, 3, 5},
		{_Ident, 3, 9},
		{_Assign, 3, 11},
		{_IntLit, 3, 13},
		{_Semi, 3, 16},
		{_Rbrace, 4, 1},
		{_EOF, 4, 2},
	}

	toks, err := Tokenize("test.ls", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, exp := range expected {
		tok := toks[i]
		if tok.Kind != exp.kind {
			t.Errorf("token %d: got %v, want %v", i, tok.Kind, exp.kind)
		}
		if tok.Pos.Line() != exp.line || tok.Pos.Col() != exp.col {
			t.Errorf("token %d (%v): pos = %d:%d, want %d:%d",
				i, tok.Kind, tok.Pos.Line(), tok.Pos.Col(), exp.line, exp.col)
		}
		if tok.Pos.Filename() != "test.ls" {
			t.Errorf("token %d: filename = %q", i, tok.Pos.Filename())
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
		line    uint32
	}{
		{"unterminated_string", `"hello`, "string not terminated", 1},
		{"newline_in_string", "\"hel\nlo\"", "string not terminated", 1},
		{"bad_escape", `"\q"`, "unknown escape sequence", 1},
		{"bad_hex_literal", "0xGG", "invalid digit in numeric literal", 1},
		{"bad_binary_literal", "0b2", "invalid digit in numeric literal", 1},
		{"empty_exponent", "1e", "exponent has no digits", 1},
		{"unterminated_comment", "a\n/* b", "comment not terminated", 2},
		{"bad_char", "@", "unexpected character", 1},
		{"bad_char_hash", "a\n#", "unexpected character", 2},
		{"bad_char_quote", "'a'", "unexpected character", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("test.ls", strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q, got tokens %v", tt.wantErr, toks)
			}
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("error is %T, want *Error", err)
			}
			if e.Kind != SyntaxError {
				t.Errorf("kind = %v, want %v", e.Kind, SyntaxError)
			}
			if !strings.Contains(e.Msg, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, e.Msg)
			}
			if e.Pos.Line() != tt.line {
				t.Errorf("error line = %d, want %d", e.Pos.Line(), tt.line)
			}
		})
	}
}

func TestScanProgram(t *testing.T) {
	src := `using "std";

public class Point
{
	private int x;
	private float y = 1.5;

	public Point(int x) { this.x = x; }

	public string Describe()
	{
		if (x > 0 && y != 0.0) return "positive";
		foreach (int v in new int[3]) { x += v; }
		return x is object ? "obj" : <string>x;
	}
}
`

	s := NewScanner("test.ls", strings.NewReader(src))
	tokenCount := 0
	for {
		s.Next()
		tokenCount++
		if s.Token() == _EOF {
			break
		}
		if tokenCount > 1000 {
			t.Fatal("too many tokens, possible infinite loop")
		}
	}
	if s.first != nil {
		t.Fatalf("unexpected error: %v", s.first)
	}
	if tokenCount < 60 {
		t.Errorf("expected at least 60 tokens, got %d", tokenCount)
	}
}

// TestScanRandomInput feeds generated inputs to the scanner; errors are
// fine, panics and runaway scans are not.
func TestScanRandomInput(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)
	alphabet := []byte("ab01x.e\"\\/*<>=!&|+-{}();\n \t@")
	for i := 0; i < 500; i++ {
		var picks []uint8
		f.Fuzz(&picks)
		src := make([]byte, len(picks))
		for j, p := range picks {
			src[j] = alphabet[int(p)%len(alphabet)]
		}
		toks, err := Tokenize("fuzz.ls", strings.NewReader(string(src)))
		if err == nil && (len(toks) == 0 || toks[len(toks)-1].Kind != _EOF) {
			t.Fatalf("input %q: token list not terminated by EOF", src)
		}
		if len(toks) > len(src)+1 {
			t.Fatalf("input %q: %d tokens from %d bytes", src, len(toks), len(src))
		}
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"class A {}",
		"public int F() { return 123; }",
		`string s = "hello\nworld";`,
		"x = 0x1F + 0b1010;",
		"if (a && b || c) { }",
		"for (int i = 0; i < 10; i++) { }",
		"List<List<int>> l;",
		"a[0] = <float>1.5f;",
		"// comment\nfoo",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		s := NewScanner("fuzz", strings.NewReader(src))
		for i := 0; i < 10000; i++ {
			s.Next()
			if s.Token() == _EOF {
				break
			}
		}
	})
}
