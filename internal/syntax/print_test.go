package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFprint(t *testing.T) {
	pkg := parsePackage(t, `class A<T> : B
{
	private static int n = 1;
	public T F(T x) { return x; }
}`)
	want := []string{
		"Package @0:0",
		"  Class A <T> public : B @test.ls:1:7",
		"    ClassBody @test.ls:2:1",
		"      Field int n private static @test.ls:3:21",
		"        Expr @test.ls:3:25",
		"          Literal 1 @test.ls:3:25",
		"      Method T F(T) public @test.ls:4:11",
		"        Param T x @test.ls:4:15",
		"        MethodBody @test.ls:4:18",
		"          Return @test.ls:4:20",
		"            Expr @test.ls:4:27",
		"              Ident x @test.ls:4:27",
	}
	got := strings.Split(strings.TrimSuffix(dump(t, pkg), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fprint mismatch (-want +got):\n%s", diff)
	}
}

func TestFprintShowsResultTypes(t *testing.T) {
	x := exprOf(t, "<float>1")
	x.SetType(x.(*CastExpr).Target)
	out := dump(t, x)
	if !strings.HasPrefix(out, "Cast float explicit : float @") {
		t.Errorf("Fprint = %q", out)
	}
}

func TestFprintJSON(t *testing.T) {
	pkg := parsePackage(t, "interface I { void F(); }")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, pkg); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}

	var got jsonNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	want := jsonNode{
		Type: "Package",
		Children: []*jsonNode{{
			Type:    "Class",
			Summary: "Interface I public",
			Children: []*jsonNode{{
				Type: "ClassBody",
				Children: []*jsonNode{{
					Type:    "ClassMember",
					Summary: "Method void F() public",
				}},
			}},
		}},
	}
	// Positions are covered by TestFprint; compare structure only.
	opts := cmp.Options{
		cmpopts.IgnoreFields(jsonNode{}, "Pos"),
		cmp.Transformer("summary", func(n jsonNode) jsonNode {
			if i := strings.LastIndex(n.Summary, " @"); i >= 0 {
				n.Summary = n.Summary[:i]
			}
			if n.Type == "Package" || n.Type == "ClassBody" {
				n.Summary = ""
			}
			return n
		}),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("FprintJSON mismatch (-want +got):\n%s", diff)
	}
}
