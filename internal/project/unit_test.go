package project

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/lsc/internal/log"
	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

func classNames(pkg *syntax.Package) []string {
	var names []string
	for _, c := range pkg.Classes() {
		names = append(names, c.Ident)
	}
	return names
}

func TestUnitCompile(t *testing.T) {
	root := t.TempDir()
	main := writeFile(t, filepath.Join(root, "main.ls"), `
using geo.*;
using geo.point;
using native io;

class Program
{
	public static int Main()
	{
		Point p = new Point(3, 4);
		return p.X + int.Max(p.Y, 0);
	}
}`)
	writeFile(t, filepath.Join(root, "geo", "point.ls"), `
class Point
{
	public int X;
	public int Y;
	public Point(int x, int y) { X = x; Y = y; }
}`)
	writeFile(t, filepath.Join(root, "io.hpp"), "")

	var logs bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelInfo, Output: &logs})
	u := NewUnit(main, nil, logger)
	require.NoError(t, u.Compile())

	names := classNames(u.Package())
	assert.Contains(t, names, "object")
	assert.Contains(t, names, "Program")
	assert.Contains(t, names, "Point")

	warnings := u.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Using statement imports duplicate file 'geo.point'.", warnings[0].Msg)
	assert.Equal(t, main, warnings[0].Pos.Filename())
	assert.Contains(t, logs.String(), "duplicate file")

	var out bytes.Buffer
	require.NoError(t, u.Emit(&out))
	code := out.String()
	assert.Contains(t, code, "#include \"lsc/runtime.hpp\"\n#include \""+filepath.Join(root, "io.hpp")+"\"\n")
	assert.Contains(t, code, "class Point : public lsc::Object {")
	assert.Contains(t, code, "int32_t Program::Main() {")
	assert.NotContains(t, code, "class Int")
}

func TestUnitPrelude(t *testing.T) {
	root := t.TempDir()
	prelude := writeFile(t, filepath.Join(root, "base.ls"), `class Base { public int Id() { return 1; } }`)
	main := writeFile(t, filepath.Join(root, "main.ls"), `class Derived : Base { }`)

	cfg := DefaultConfig()
	cfg.Prelude = []string{prelude}
	u := NewUnit(main, &cfg, nil)
	require.NoError(t, u.Compile())
	assert.Equal(t, []string{prelude, main}, u.Files())
}

func TestUnitErrors(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		src  string
		kind syntax.ErrorKind
		msg  string
	}{
		{"missing import", "using nope;\nclass A {}", syntax.SyntaxError, "Unable to find referenced file 'nope'."},
		{"syntax", "class A {", syntax.SyntaxError, ""},
		{"unknown type", "class A { private Missing m; }", syntax.UnknownTypeError, ""},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, filepath.Join(root, string(rune('a'+i))+".ls"), tt.src)
			u := NewUnit(file, nil, nil)
			err := u.Compile()
			require.Error(t, err)
			assert.True(t, syntax.IsKind(err, tt.kind), "err = %v", err)
			assert.True(t, strings.HasPrefix(err.Error(), file+":"), "err = %v", err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}

	u := NewUnit(filepath.Join(root, "absent.ls"), nil, nil)
	assert.Error(t, u.Compile())
	assert.True(t, syntax.IsKind(u.Emit(&bytes.Buffer{}), syntax.InternalError))
}

func TestUnitWithoutRuntime(t *testing.T) {
	main := writeFile(t, filepath.Join(t.TempDir(), "main.ls"), `native("A") class A : null { }`)
	cfg := DefaultConfig()
	cfg.Runtime = false
	u := NewUnit(main, &cfg, nil)
	require.NoError(t, u.Parse())
	assert.Equal(t, []string{"A"}, classNames(u.Package()))
}

func TestUnitTokens(t *testing.T) {
	main := writeFile(t, filepath.Join(t.TempDir(), "main.ls"), "class A {}")
	toks, err := NewUnit(main, nil, nil).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 5) // class A { } EOF
	assert.Equal(t, "A", toks[1].Lit)
}

func TestCompileAll(t *testing.T) {
	root := t.TempDir()
	good := writeFile(t, filepath.Join(root, "good.ls"), "class Good { }")
	bad := writeFile(t, filepath.Join(root, "bad.ls"), "class Bad : Missing { }")
	other := writeFile(t, filepath.Join(root, "other.ls"), "class Other { public int F() { return 2; } }")

	results, err := CompileAll(context.Background(), []string{good, bad, other}, PhaseCheck, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, Failed(results))

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	for i, f := range []string{good, bad, other} {
		assert.Equal(t, f, results[i].Unit.File())
	}

	results, err = CompileAll(context.Background(), []string{good}, PhaseParse, nil, nil)
	require.NoError(t, err)
	assert.False(t, Failed(results))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CompileAll(ctx, []string{good}, PhaseCheck, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRuntimeDeclaresBackingClasses(t *testing.T) {
	main := writeFile(t, filepath.Join(t.TempDir(), "main.ls"), "")
	u := NewUnit(main, nil, nil)
	require.NoError(t, u.Compile())

	names := classNames(u.Package())
	for _, k := range []types.BasicKind{types.Bool, types.Int, types.Float, types.String} {
		assert.Contains(t, names, rtabi.BackingClass(k))
	}
	assert.Contains(t, names, rtabi.RootClass)
	assert.Contains(t, names, rtabi.ArrayClass)
}
