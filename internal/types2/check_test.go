package types2

import (
	"bytes"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// prelude declares the runtime classes the checker binds primitives,
// arrays and boxing to.
const prelude = `
public native("lsc::Object") class object : null
{
	public virtual string ToString();
}

public native("lsc::BoxedInt") class BoxedInt
{
	public BoxedInt(int v);
	public int GetValue();
}

public native("lsc::BoxedFloat") class BoxedFloat
{
	public BoxedFloat(float v);
	public float GetValue();
}

public native("lsc::Int") box("BoxedInt") class Int
{
	public static int Parse(string s);
}

public native("lsc::Float") box("BoxedFloat") class Float
{
}

public native("lsc::Bool") class Bool
{
}

public native("lsc::String") class String
{
	public int Length();
	public string GetIndex(int i);
	public string GetSlice(int start, int end);
}

public native("lsc::Array") class Array<T>
{
	public int Length();
	public T GetIndex(int i);
	public void SetIndex(int i, T v);
	public T[] GetSlice(int start, int end);
}
`

// warnings records advisory diagnostics.
type warnings []string

func (w *warnings) Warning(msg string, tok syntax.Token) { *w = append(*w, msg) }

// parseAndCheck parses the prelude and src into one package and runs the
// checker.
func parseAndCheck(t *testing.T, src string) (*syntax.Package, *Info, error) {
	t.Helper()
	pkg, info, _, err := parseAndCheckWarn(t, src)
	return pkg, info, err
}

func parseAndCheckWarn(t *testing.T, src string) (*syntax.Package, *Info, warnings, error) {
	t.Helper()
	pkg := syntax.NewPackage()
	require.NoError(t, syntax.ParseFile("prelude.ls", strings.NewReader(prelude), pkg, nil, nil))
	require.NoError(t, syntax.ParseFile("test.ls", strings.NewReader(src), pkg, nil, nil))

	var w warnings
	info := &Info{}
	err := Check(pkg, &Config{Diagnostics: &w}, info)
	return pkg, info, w, err
}

// expectNoErrors checks that src analyzes without errors.
func expectNoErrors(t *testing.T, src string) *syntax.Package {
	t.Helper()
	pkg, _, err := parseAndCheck(t, src)
	require.NoError(t, err)
	return pkg
}

// expectError checks that analysis of src fails with an error of the given
// kind whose message contains msg.
func expectError(t *testing.T, src string, kind syntax.ErrorKind, msg string) *syntax.Error {
	t.Helper()
	_, _, err := parseAndCheck(t, src)
	require.Error(t, err)
	var e *syntax.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, kind, e.Kind, "error: %v", err)
	assert.Contains(t, e.Msg, msg)
	return e
}

// classNamed returns the top-level class name of pkg.
func classNamed(t *testing.T, pkg *syntax.Package, name string) *syntax.Class {
	t.Helper()
	for _, c := range pkg.Classes() {
		if c.Ident == name {
			return c
		}
	}
	t.Fatalf("class %s not found", name)
	return nil
}

// memberNamed returns the first member of c called name.
func memberNamed(t *testing.T, c *syntax.Class, name string) *syntax.ClassMember {
	t.Helper()
	for _, m := range c.Members() {
		if m.Ident == name {
			return m
		}
	}
	t.Fatalf("member %s.%s not found", c.Name(), name)
	return nil
}

// find returns the first node of type T below root, in walk order, for
// which pred holds.
func find[T syntax.Node](root syntax.Node, pred func(T) bool) T {
	var found T
	done := false
	syntax.Walk(root, func(n syntax.Node) bool {
		if done {
			return false
		}
		if x, ok := n.(T); ok && (pred == nil || pred(x)) {
			found, done = x, true
			return false
		}
		return true
	})
	return found
}

func TestCheckValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty class", `class A {}`},
		{"fields and methods", `
class Point
{
	public int X;
	public int Y = 3;
	public int Sum() { return X + Y; }
}`},
		{"forward reference", `
class A { public B Next; public int Get() { return Next.Value; } }
class B { public int Value; }`},
		{"constructor and new", `
class P { private int v; public P(int x) { v = x; } }
class Q { public void Run() { P p = new P(3); } }`},
		{"implicit constructor", `
class P {}
class Q { public void Run() { P p = new P(); } }`},
		{"static method from instance", `
class A
{
	public static int Twice(int x) { return x * 2; }
	public int Run() { return Twice(4); }
}`},
		{"static method from static", `
class A
{
	public static int Twice(int x) { return x * 2; }
	public static int Run() { return Twice(4); }
}`},
		{"static field through class", `
class A { public static int Count; }
class B { public void Run() { A.Count = A.Count + 1; } }`},
		{"keyword class reference", `
class A { public int Run() { return int.Parse("5"); } }`},
		{"control flow", `
class A
{
	public int Run(int n)
	{
		int total = 0;
		for (int i = 0; i < n; i++)
		{
			if (i % 2 == 0) continue;
			total += i;
		}
		while (total > 100) { total -= 10; break; }
		do { total++; } while (total < 5);
		switch (total)
		{
			case 1, 2: total = 0;
			case 3: total = 1;
			default: break;
		}
		return total;
	}
}`},
		{"arrays", `
class A
{
	public int Run()
	{
		int[] a = new int[4];
		a[0] = 1;
		a[1] += a[0];
		int[] b = a[0:2];
		int sum = 0;
		foreach (int v in a) sum += v;
		return sum + a.Length() + b.Length();
	}
}`},
		{"strings", `
class A
{
	public string Run(int n)
	{
		string s = "n=" + n;
		s += "!";
		string c = s[0];
		string t = s[1:];
		if (s == null || s != t) return c;
		return s;
	}
}`},
		{"ternary and logical", `
class A
{
	public float Run(int a, float b)
	{
		bool ok = a > 0 && !(b < 1.0);
		return ok ? a : b;
	}
}`},
		{"is and as", `
class Animal {}
class Dog : Animal { public void Bark() {} }
class A
{
	public void Run(Animal a)
	{
		if (a is Dog) (a as Dog).Bark();
		Dog d = <Dog>a;
	}
}`},
		{"try and throw", `
class Failure {}
class A
{
	public void Run()
	{
		try { throw new Failure(); }
		catch (Failure f) { }
	}
}`},
		{"base call", `
class A { public virtual int Foo() { return 1; } }
class B : A { public override int Foo() { return base.Foo() + 1; } }`},
		{"abstract implemented", `
abstract class Shape { public abstract float Area(); }
class Square : Shape { private float side; public override float Area() { return side * side; } }`},
		{"interface implemented", `
interface IRun { void Run(); }
class Runner : IRun { public void Run() {} }`},
		{"protected from subclass", `
class A { protected int secret; }
class B : A { public int Peek() { return secret; } }`},
		{"default arguments", `
class A
{
	public int Add(int a, int b = 2) { return a + b; }
	public int Run() { return Add(1) + Add(1, 3); }
}`},
		{"const folding", `
class A
{
	public const int Size = 4 * 8;
	public const int Half = Size / 2;
	public int Run() { return Half; }
}`},
		{"overload by argument type", `
class A
{
	public int F(int x) { return 1; }
	public int F(string x) { return 2; }
	public int Run() { return F(1) + F("a"); }
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectNoErrors(t, tt.src)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind syntax.ErrorKind
		msg  string
	}{
		{"unknown type", `class A { public Missing m; }`, syntax.UnknownTypeError, "Unknown data type 'Missing'."},
		{"unknown identifier", `class A { public void Run() { x = 1; } }`, syntax.UnknownIdentifierError, "Undefined identifier 'x'."},
		{"use before declaration", `class A { public void Run() { x = 1; int x; } }`, syntax.UnknownIdentifierError, "Undefined identifier 'x'."},
		{"duplicate field", `class A { public int x; public float x; }`, syntax.DuplicateIdentifierError, "Encountered duplicate identifier 'x'."},
		{"duplicate local", `class A { public void Run() { int x; int x; } }`, syntax.DuplicateIdentifierError, "Encountered duplicate identifier 'x'."},
		{"local shadows parameter", `class A { public void Run(int x) { int x; } }`, syntax.DuplicateIdentifierError, "Encountered duplicate identifier 'x'."},
		{"duplicate constructor", `class A { public A() {} public A() {} }`, syntax.DuplicateIdentifierError, "duplicate constructor"},
		{"inheritance cycle", `class A : B {} class B : A {}`, syntax.StructuralError, "cannot inherit from itself"},
		{"sealed super", `sealed class A {} class B : A {}`, syntax.StructuralError, "Cannot inherit from sealed class 'A'."},
		{"static super", `static class A {} class B : A {}`, syntax.StructuralError, "Cannot inherit from static class 'A'."},
		{"two supers", `class A {} class B {} class C : A, B {}`, syntax.StructuralError, "Classes can only inherit from a single super class."},
		{"interface extends class", `class A {} interface I : A {}`, syntax.StructuralError, "Interfaces can only inherit from other interfaces."},
		{"unknown box class", `box("Nope") class A {}`, syntax.UnknownTypeError, "Unknown box class 'Nope'."},
		{"abstract in concrete", `class A { public abstract void F(); }`, syntax.StructuralError, "can only be declared in an abstract class"},
		{"abstract not implemented", `
abstract class A { public abstract void F(); }
class B : A {}`, syntax.StructuralError, "does not implement abstract method 'F()'"},
		{"interface not implemented", `
interface I { void F(int x); }
class B : I {}`, syntax.StructuralError, "does not implement interface method 'F(int)'"},
		{"new abstract", `
abstract class A {}
class B { public void Run() { A a = new A(); } }`, syntax.StructuralError, "Cannot instantiate abstract class 'A'."},
		{"new interface", `
interface I {}
class B { public void Run() { I a = new I(); } }`, syntax.StructuralError, "Cannot instantiate interface 'I'."},
		{"no matching constructor", `
class A { public A(int x) {} }
class B { public void Run() { A a = new A(); } }`, syntax.UnknownIdentifierError, "has no constructor accepting arguments ()"},
		{"private field", `
class A { private int secret; }
class B { public int Peek(A a) { return a.secret; } }`, syntax.AccessViolationError, "Cannot access private member 'secret'"},
		{"protected method", `
class A { protected void Hide() {} }
class B { public void Run(A a) { a.Hide(); } }`, syntax.AccessViolationError, "Cannot access protected member 'Hide'"},
		{"instance field from static", `
class A { public int v; public static int Get() { return v; } }`, syntax.AccessViolationError, "from a static context"},
		{"instance method from static", `
class A { public int F() { return 1; } public static int Get() { return F(); } }`, syntax.AccessViolationError, "from a static context"},
		{"static field through instance", `
class A { public static int Count; }
class B { public int Run(A a) { return a.Count; } }`, syntax.AccessViolationError, "through an instance"},
		{"this in static", `class A { public static A Get() { return this; } }`, syntax.StructuralError, "this keyword cannot be used in static methods."},
		{"base in static", `class A { public static void F() { base.ToString(); } }`, syntax.StructuralError, "base keyword cannot be used in static methods."},
		{"base without super", `
native("A") class A : null { public void F() { base.ToString(); } }`, syntax.StructuralError, "base keyword cannot be used in class without super class."},
		{"abstract via base", `
abstract class A { public abstract void F(); }
class B : A { public override void F() { base.F(); } }`, syntax.StructuralError, "Cannot call abstract method 'F' of base class."},
		{"break outside loop", `class A { public void F() { break; } }`, syntax.StructuralError, "break statement must be inside a loop"},
		{"continue in switch", `
class A { public void F(int x) { switch (x) { case 1: continue; } } }`, syntax.StructuralError, "continue statement must be inside a loop."},
		{"missing return value", `class A { public int F() { return; } }`, syntax.StructuralError, "must return a value of type 'int'"},
		{"void returns value", `class A { public void F() { return 1; } }`, syntax.StructuralError, "does not return a value"},
		{"return mismatch", `class A { public int F() { return "a"; } }`, syntax.ImplicitCastError, "Cannot implicitly cast value from 'string' to 'int'."},
		{"void variable", `class A { public void F() { void x; } }`, syntax.StructuralError, "Variables cannot be declared as void."},
		{"void initialized variable", `class A { public void F() { void x = null; } }`, syntax.StructuralError, "Variables cannot be declared as void."},
		{"void catch variable", `class A { public void F() { try { } catch (void e) { } } }`, syntax.StructuralError, "Variables cannot be declared as void."},
		{"void field", `class A { public void x; }`, syntax.StructuralError, "Fields cannot be declared as void."},
		{"const assignment", `
class A { public const int C = 1; public void F() { C = 2; } }`, syntax.StructuralError, "l-value was declared constant"},
		{"illegal lvalue", `class A { public void F() { 1 = 2; } }`, syntax.StructuralError, "Illegal l-value for assignment expression."},
		{"string minus assign", `class A { public void F() { string s; s -= "a"; } }`, syntax.TypeMismatchError, "strings only supports concatination"},
		{"bitwise assign on float", `class A { public void F() { float f; f |= 1; } }`, syntax.TypeMismatchError, "Assignment operator '|=' cannot be used on types 'float' and 'int'."},
		{"string minus", `class A { public void F() { string s = "a" - "b"; } }`, syntax.TypeMismatchError, "strings only supports concatination"},
		{"modulo on float", `class A { public void F() { float f = 1.5 % 2; } }`, syntax.TypeMismatchError, "integer operands"},
		{"compare unrelated", `
class X {} class Y {}
class A { public bool F(X x, Y y) { return x == y; } }`, syntax.TypeMismatchError, "Cannot compare unrelated types"},
		{"not indexable", `class A { public void F(A a) { int x = a[0]; } }`, syntax.StructuralError, "Data type does not support indexing, no GetIndex method defined."},
		{"not sliceable", `class A { public void F(A a) { A x = a[0:1]; } }`, syntax.StructuralError, "Data type does not support slicing, no GetSlice method defined."},
		{"not enumerable", `class A { public void F(A a) { foreach (int x in a) {} } }`, syntax.StructuralError, "does not support enumeration"},
		{"foreach element mismatch", `class A { public void F(string[] a) { foreach (int x in a) {} } }`, syntax.ImplicitCastError, "Cannot implicitly cast value from 'string' to 'int'."},
		{"throw primitive", `class A { public void F() { throw 1; } }`, syntax.TypeMismatchError, "Only objects can be thrown"},
		{"catch primitive", `class A { public void F() { try {} catch (int e) {} } }`, syntax.TypeMismatchError, "Catch variable must be of an object type"},
		{"unknown method", `class A { public void F() { G(); } }`, syntax.UnknownIdentifierError, "has no method 'G'"},
		{"ambiguous call", `
class X {}
class A
{
	public void F(X a, string b) {}
	public void F(string a, X b) {}
	public void Run() { F(null, null); }
}`, syntax.StructuralError, "Ambiguous call to method 'F(null,null)'"},
		{"const reads instance field", `
class A { public int v; public const int C = v; }`, syntax.AccessViolationError, "from a static context"},
		{"self-referencing const", `
class A { public const int C = D; public const int D = C; }`, syntax.StructuralError, "Expression is not constant."},
		{"is on primitive", `class A { public bool F(int x) { return x is A; } }`, syntax.TypeMismatchError, "can only be used on object types"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, tt.kind, tt.msg)
		})
	}
}

func TestCheckIdempotent(t *testing.T) {
	src := `
class Box<T> { public T Value; public T Get() { return Value; } }
class A
{
	public float F(int x)
	{
		Box<int> b = new Box<int>();
		object o = x;
		float f = x + b.Get();
		return f;
	}
}`
	pkg, info, err := parseAndCheck(t, src)
	require.NoError(t, err)

	var before bytes.Buffer
	require.NoError(t, syntax.Fprint(&before, pkg))
	instances := len(info.Instances)

	// A second pass, by a fresh checker or the same one, changes nothing.
	c := NewChecker(&Config{}, info)
	require.NoError(t, c.Check(pkg))
	require.NoError(t, c.Check(pkg))

	var after bytes.Buffer
	require.NoError(t, syntax.Fprint(&after, pkg))
	assert.Equal(t, before.String(), after.String())
	assert.Equal(t, instances, len(info.Instances))

	// Re-analyzing an analyzed expression returns it unchanged.
	ret := find[*syntax.ReturnStmt](classNamed(t, pkg, "A"), nil)
	require.NotNil(t, ret)
	x, err := c.expr(ret.Result)
	require.NoError(t, err)
	assert.Same(t, ret.Result, x)
}

func TestCheckWarnings(t *testing.T) {
	_, _, w, err := parseAndCheckWarn(t, `class A { public int F() { int i = 2.5; return i; } }`)
	require.NoError(t, err)
	require.Len(t, w, 1, spew.Sdump(w))
	assert.Contains(t, w[0], "may lose precision")
}

func TestCheckMarksTreeAnalyzed(t *testing.T) {
	pkg := expectNoErrors(t, `
class A
{
	public int x = 1;
	public int F(int y) { if (y > x) { return y; } return x; }
}`)
	syntax.Inspect(classNamed(t, pkg, "A"), func(n syntax.Node) bool {
		assert.True(t, n.Analyzed(), "%T at %s not analyzed", n, n.Pos())
		return true
	})
	assert.True(t, pkg.Analyzed())
}

func TestCheckInternalErrorSite(t *testing.T) {
	c := NewChecker(nil, nil)
	err := c.internalf(syntax.NewPackage(), "broken %d", 1)
	var e *syntax.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, syntax.InternalError, e.Kind)
	assert.NotEmpty(t, e.Site)
	assert.Equal(t, "broken 1", e.Msg)
}

func TestClassOf(t *testing.T) {
	pkg := expectNoErrors(t, `class A { public int[] a; public int F() { return a[0]; } }`)
	c := NewChecker(nil, nil)
	c.pkg = pkg

	assert.Equal(t, types.Class(classNamed(t, pkg, "Int")), c.ClassOf(types.Typ[types.Int]))
	assert.Nil(t, c.ClassOf(types.Typ[types.Void]))

	arr := classNamed(t, pkg, "Array")
	inst := c.ClassOf(types.NewArray(types.Typ[types.Int]))
	require.NotNil(t, inst)
	assert.Same(t, arr.Instance([]types.Type{types.Typ[types.Int]}), inst)
	assert.Nil(t, c.ClassOf(types.NewArray(types.Typ[types.Float])))
}
