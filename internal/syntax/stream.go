package syntax

// TokenStream is the parser's view of the token sequence. Its cursor
// points at the next unconsumed token; reads past the end yield the EOF
// sentinel.
type TokenStream struct {
	toks []Token
	pos  int
}

// NewTokenStream returns a stream over toks. An EOF sentinel is appended
// when toks does not already end with one.
func NewTokenStream(toks []Token) *TokenStream {
	if n := len(toks); n == 0 || toks[n-1].Kind != _EOF {
		var pos Pos
		if n > 0 {
			pos = toks[n-1].Pos
		}
		toks = append(toks[:n:n], Token{Kind: _EOF, Pos: pos})
	}
	return &TokenStream{toks: toks}
}

// Current returns the next unconsumed token.
func (s *TokenStream) Current() Token {
	return s.toks[s.pos]
}

// Next consumes and returns the current token. The EOF sentinel is never
// consumed.
func (s *TokenStream) Next() Token {
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

// Previous returns the most recently consumed token.
func (s *TokenStream) Previous() Token {
	if s.pos == 0 {
		return s.toks[0]
	}
	return s.toks[s.pos-1]
}

// LookAhead returns the token offset positions past the cursor;
// LookAhead(0) is Current.
func (s *TokenStream) LookAhead(offset int) Token {
	i := s.pos + offset
	if i < 0 {
		i = 0
	}
	if i >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[i]
}

// Rewind moves the cursor back count tokens.
func (s *TokenStream) Rewind(count int) {
	s.pos -= count
	if s.pos < 0 {
		s.pos = 0
	}
}

// Mark returns the cursor position for a later Reset.
func (s *TokenStream) Mark() int { return s.pos }

// Reset moves the cursor to a position returned by Mark.
func (s *TokenStream) Reset(mark int) { s.pos = mark }

// SplitShr replaces a current >> token with two > tokens so that nested
// generic argument lists can close one level at a time.
func (s *TokenStream) SplitShr() bool {
	t := s.toks[s.pos]
	if t.Kind != _Shr {
		return false
	}
	first := Token{Kind: _Gtr, Lit: ">", Pos: t.Pos}
	second := Token{Kind: _Gtr, Lit: ">", Pos: NewPos(t.Pos.filename, t.Pos.line, t.Pos.col+1)}
	toks := make([]Token, 0, len(s.toks)+1)
	toks = append(toks, s.toks[:s.pos]...)
	toks = append(toks, first, second)
	toks = append(toks, s.toks[s.pos+1:]...)
	s.toks = toks
	return true
}

// Len returns the number of tokens including the EOF sentinel.
func (s *TokenStream) Len() int { return len(s.toks) }
