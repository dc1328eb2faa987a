package syntax

import (
	"strings"
	"testing"
)

func streamOf(t *testing.T, src string) *TokenStream {
	t.Helper()
	toks, err := Tokenize("test.ls", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return NewTokenStream(toks)
}

func TestTokenStreamEOFSentinel(t *testing.T) {
	s := NewTokenStream(nil)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	for i := 0; i < 3; i++ {
		if k := s.Next().Kind; k != _EOF {
			t.Fatalf("Next() #%d = %v, want EOF", i, k)
		}
	}

	toks := []Token{{Kind: _Ident, Lit: "a", Pos: NewPos("f", 1, 1)}}
	s = NewTokenStream(toks)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if len(toks) != 1 {
		t.Errorf("NewTokenStream modified its argument")
	}
	if eof := s.LookAhead(1); eof.Kind != _EOF || eof.Pos != toks[0].Pos {
		t.Errorf("sentinel = %v at %s", eof.Kind, eof.Pos)
	}

	// An existing EOF is not duplicated.
	s = NewTokenStream(append(toks, Token{Kind: _EOF}))
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestTokenStreamCursor(t *testing.T) {
	s := streamOf(t, "a . b ( )")

	if got := s.Current().Lit; got != "a" {
		t.Fatalf("Current() = %q, want a", got)
	}
	if got := s.Previous().Lit; got != "a" {
		t.Errorf("Previous() at start = %q, want a", got)
	}
	if got := s.Next().Lit; got != "a" {
		t.Errorf("Next() = %q, want a", got)
	}
	if got := s.Previous().Lit; got != "a" {
		t.Errorf("Previous() = %q, want a", got)
	}

	tests := []struct {
		offset int
		want   Kind
	}{
		{0, _Dot},
		{1, _Ident},
		{2, _Lparen},
		{3, _Rparen},
		{4, _EOF},
		{100, _EOF},
		{-100, _Ident},
	}
	for _, tt := range tests {
		if got := s.LookAhead(tt.offset).Kind; got != tt.want {
			t.Errorf("LookAhead(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	mark := s.Mark()
	s.Next()
	s.Next()
	if got := s.Current().Kind; got != _Lparen {
		t.Errorf("Current() = %v, want (", got)
	}
	s.Rewind(1)
	if got := s.Current().Lit; got != "b" {
		t.Errorf("after Rewind(1) Current() = %q, want b", got)
	}
	s.Reset(mark)
	if got := s.Current().Kind; got != _Dot {
		t.Errorf("after Reset Current() = %v, want .", got)
	}
	s.Rewind(50)
	if got := s.Current().Lit; got != "a" {
		t.Errorf("Rewind past start: Current() = %q, want a", got)
	}
}

func TestTokenStreamSplitShr(t *testing.T) {
	s := streamOf(t, "a >> b")
	n := s.Len()
	if s.SplitShr() {
		t.Fatalf("SplitShr() on an identifier reported a split")
	}
	s.Next()
	shr := s.Current()
	if !s.SplitShr() {
		t.Fatalf("SplitShr() on >> did not split")
	}
	if s.Len() != n+1 {
		t.Errorf("Len() = %d, want %d", s.Len(), n+1)
	}
	first, second := s.LookAhead(0), s.LookAhead(1)
	if first.Kind != _Gtr || second.Kind != _Gtr {
		t.Fatalf("split into %v %v, want > >", first.Kind, second.Kind)
	}
	if first.Pos != shr.Pos {
		t.Errorf("first half at %s, want %s", first.Pos, shr.Pos)
	}
	if second.Pos.Line() != shr.Pos.Line() || second.Pos.Col() != shr.Pos.Col()+1 {
		t.Errorf("second half at %s, want one column after %s", second.Pos, shr.Pos)
	}
	if got := s.LookAhead(2).Lit; got != "b" {
		t.Errorf("token after split = %q, want b", got)
	}
}
