package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ident(name string) *IdentExpr {
	return NewIdentExpr(Token{Kind: _Ident, Lit: name, Pos: NewPos("t", 1, 1)}, name, nil)
}

func childNames(n Node) []string {
	var list []string
	for _, c := range n.Children() {
		list = append(list, c.(*IdentExpr).Name)
	}
	return list
}

func TestChildOrder(t *testing.T) {
	b := &Block{}
	a, c := ident("a"), ident("c")
	AddChild(b, a)
	AddChild(b, c)
	AddChild(b, nil)
	var typedNil *IdentExpr
	AddChild(b, typedNil)
	InsertChild(b, 1, ident("b"))
	InsertChild(b, 0, ident("first"))
	InsertChild(b, 99, ident("last"))

	want := []string{"first", "a", "b", "c", "last"}
	if diff := cmp.Diff(want, childNames(b)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	for _, n := range b.Children() {
		if n.Parent() != b {
			t.Errorf("%s: parent not set", n.(*IdentExpr).Name)
		}
	}

	if !RemoveChild(b, a) {
		t.Fatal("RemoveChild(a) = false")
	}
	if a.Parent() != nil {
		t.Errorf("removed child keeps its parent")
	}
	if RemoveChild(b, a) {
		t.Errorf("second RemoveChild(a) = true")
	}
	want = []string{"first", "b", "c", "last"}
	if diff := cmp.Diff(want, childNames(b)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceChildKeepsSlot(t *testing.T) {
	b := &Block{}
	x, y, z := ident("x"), ident("y"), ident("z")
	AddChild(b, x)
	AddChild(b, y)
	AddChild(b, z)

	r := ident("r")
	if got := ReplaceChild(b, y, r); got != r {
		t.Fatalf("ReplaceChild returned %v, want the replacement", got)
	}
	if diff := cmp.Diff([]string{"x", "r", "z"}, childNames(b)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if r.Parent() != b || y.Parent() != nil {
		t.Errorf("ownership not transferred")
	}
}

func TestReplaceChildWrapsOperand(t *testing.T) {
	// A cast adopts its operand before taking the operand's slot.
	x, y := ident("x"), ident("y")
	sum := NewBinaryMathExpr(Token{Kind: _Add}, _Add, x, y)
	cast := NewCastExpr(Token{Kind: _Lss}, nil, y, false)
	if y.Parent() != cast {
		t.Fatalf("operand parent = %T, want the cast", y.Parent())
	}
	sum.Y = ReplaceChild(sum, y, cast).(Expr)

	got := sum.Children()
	if len(got) != 2 || got[0] != x || got[1] != cast {
		t.Errorf("children = %v, want [x cast]", got)
	}
	if y.Parent() != cast {
		t.Errorf("operand detached from the cast")
	}
}

func TestReplaceChildMissing(t *testing.T) {
	b := &Block{}
	a := ident("a")
	AddChild(b, a)

	r := ident("r")
	ReplaceChild(b, ident("stranger"), r)
	ReplaceChild(b, ident("stranger"), r)
	if diff := cmp.Diff([]string{"a", "r"}, childNames(b)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if got := ReplaceChild(b, a, a); got != a || len(b.Children()) != 2 {
		t.Errorf("self replacement changed the tree")
	}
	if got := ReplaceChild(b, a, nil); got != nil || len(b.Children()) != 2 {
		t.Errorf("nil replacement changed the tree")
	}
}

func TestUnwrap(t *testing.T) {
	x := ident("x")
	root := NewExprStmt(NewExprStmt(x))
	if Unwrap(root) != x {
		t.Errorf("Unwrap did not reach the innermost expression")
	}
	if Unwrap(x) != x {
		t.Errorf("Unwrap changed a plain expression")
	}
}

func TestAccessLevelString(t *testing.T) {
	tests := map[AccessLevel]string{Public: "public", Protected: "protected", Private: "private"}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", a, got, want)
		}
	}
	var zero AccessLevel
	if zero != Public {
		t.Errorf("zero access level is %v, want public", zero)
	}
}

func TestScopeLookup(t *testing.T) {
	pkg := parsePackage(t, `
class A
{
	public int x;
	public void F(int p)
	{
		int y;
		{
			int z;
			z = y + p + x;
		}
	}
}`)
	var use *AssignmentExpr
	Inspect(pkg, func(n Node) bool {
		if a, ok := n.(*AssignmentExpr); ok {
			use = a
		}
		return true
	})
	if use == nil {
		t.Fatal("assignment not found")
	}

	for _, name := range []string{"z", "y", "p", "x"} {
		d := FindDeclaration(use, name, nil)
		if d == nil || d.Identifier() != name {
			t.Errorf("FindDeclaration(%q) = %v", name, d)
		}
	}
	if d := FindDeclaration(use, "missing", nil); d != nil {
		t.Errorf("FindDeclaration(missing) = %v, want nil", d)
	}
	if d := FindLocalDeclaration(use, "x", nil); d != nil {
		t.Errorf("FindLocalDeclaration(x) found the field %v", d)
	}
	if c := FindClassScope(use); c == nil || c.Ident != "A" {
		t.Errorf("FindClassScope = %v", c)
	}
	if m := FindMemberScope(use); m == nil || m.Ident != "F" {
		t.Errorf("FindMemberScope = %v", m)
	}
	if FindPackage(use) != pkg {
		t.Errorf("FindPackage did not reach the root")
	}
}
