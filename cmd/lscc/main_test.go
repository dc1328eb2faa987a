package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const program = `
class Point
{
	public int X;
	public int Y;
	public Point(int x, int y) { X = x; Y = y; }
	public int Sum() { return X + Y; }
}
`

func TestCheckOK(t *testing.T) {
	filename := writeTempLSCFile(t, "point.ls", program)
	code, out, errOut := runLSCC(t, "--color", "never", "check", filename)
	if code != exitOK {
		t.Fatalf("check exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	filename := writeTempLSCFile(t, "bad.ls", "class Bad\n{\n\tpublic Missing m;\n}\n")
	code, _, errOut := runLSCC(t, "--color", "never", "check", filename)
	if code != exitCompile {
		t.Fatalf("check exit=%d, want %d\nstderr:\n%s", code, exitCompile, errOut)
	}
	if !strings.HasPrefix(errOut, filename+":3:") {
		t.Fatalf("stderr does not start with the error position:\n%s", errOut)
	}
	want := ": error: Unknown data type 'Missing'. [UnknownTypeError]"
	if !strings.Contains(errOut, want) {
		t.Fatalf("stderr missing %q:\n%s", want, errOut)
	}
}

func TestCheckReportsWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "a.ls"), "class A { }")
	filename := writeFile(t, filepath.Join(dir, "main.ls"), "using lib.a;\nusing lib.a;\nclass Main : A { }")

	code, _, errOut := runLSCC(t, "--color", "never", "check", filename)
	if code != exitOK {
		t.Fatalf("check exit=%d\nstderr:\n%s", code, errOut)
	}
	want := filename + ":2:1: warning: Using statement imports duplicate file 'lib.a'."
	if !strings.Contains(errOut, want) {
		t.Fatalf("stderr missing %q:\n%s", want, errOut)
	}
}

func TestColoredDiagnostics(t *testing.T) {
	filename := writeTempLSCFile(t, "bad.ls", "class {")
	_, _, errOut := runLSCC(t, "--color", "always", "check", filename)
	if !strings.Contains(errOut, "\x1b[") {
		t.Fatalf("expected escape sequences in:\n%q", errOut)
	}
	_, _, errOut = runLSCC(t, "--color", "never", "check", filename)
	if strings.Contains(errOut, "\x1b[") {
		t.Fatalf("unexpected escape sequences in:\n%q", errOut)
	}
}

func TestEmit(t *testing.T) {
	filename := writeTempLSCFile(t, "point.ls", program)
	code, out, errOut := runLSCC(t, "emit", filename)
	if code != exitOK {
		t.Fatalf("emit exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{
		"#include \"lsc/runtime.hpp\"",
		"class Point : public lsc::Object {",
		"int32_t Point::Sum() {\n\treturn this->X + this->Y;\n}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	target := filepath.Join(t.TempDir(), "out.cpp")
	code, out, errOut = runLSCC(t, "emit", "-o", target, filename)
	if code != exitOK {
		t.Fatalf("emit -o exit=%d\nstderr:\n%s", code, errOut)
	}
	if out != "" {
		t.Fatalf("unexpected stdout with -o:\n%s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "class Point;") {
		t.Fatalf("output file missing forward declaration:\n%s", data)
	}
}

func TestEmitMultipleUnits(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.ls"), "class A { }")
	b := writeFile(t, filepath.Join(dir, "b.ls"), "class B { }")
	code, _, errOut := runLSCC(t, "emit", a, b)
	if code != exitOK {
		t.Fatalf("emit exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, name := range []string{"a.cpp", "b.cpp"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}

	code, _, _ = runLSCC(t, "emit", "-o", filepath.Join(dir, "x.cpp"), a, b)
	if code != exitUsage {
		t.Fatalf("emit -o with two inputs exit=%d, want %d", code, exitUsage)
	}
}

func TestTokens(t *testing.T) {
	filename := writeTempLSCFile(t, "t.ls", `class A { string s = "a\n"; }`)
	code, out, errOut := runLSCC(t, "tokens", filename)
	if code != exitOK {
		t.Fatalf("tokens exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"Position", "IDENT", `"a\n"`, "EOF", filename + ":1:1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("token table missing %q:\n%s", want, out)
		}
	}
}

func TestAST(t *testing.T) {
	filename := writeTempLSCFile(t, "point.ls", program)
	code, out, errOut := runLSCC(t, "ast", filename)
	if code != exitOK {
		t.Fatalf("ast exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "Class Point") {
		t.Fatalf("ast output missing class:\n%s", out)
	}
	if strings.Contains(out, "Class object") {
		t.Fatalf("ast output includes runtime declarations:\n%s", out)
	}

	code, out, errOut = runLSCC(t, "ast", "--json", filename)
	if code != exitOK {
		t.Fatalf("ast --json exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("ast --json output is not JSON:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"check"}},
		{"tokens arity", []string{"tokens"}},
		{"bad color", []string{"--color", "sometimes", "check", "x.ls"}},
		{"bad verbosity", []string{"--verbosity", "loud", "check", "x.ls"}},
		{"missing config", []string{"--config", "/nonexistent/lsc.toml", "check", "x.ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runLSCC(t, tt.args...)
			if code != exitUsage {
				t.Fatalf("exit=%d, want %d\nstderr:\n%s", code, exitUsage, errOut)
			}
			if !strings.HasPrefix(errOut, "lscc: ") {
				t.Fatalf("stderr = %q", errOut)
			}
		})
	}
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, filepath.Join(dir, "lsc.toml"), "FileExtension = \"lsc\"\n")
	code, out, errOut := runLSCC(t, "--config", cfgFile, "-I", "/opt/lib", "dumpconfig")
	if code != exitOK {
		t.Fatalf("dumpconfig exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{`FileExtension = "lsc"`, `"/opt/lib"`, "[Log]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dumpconfig output missing %q:\n%s", want, out)
		}
	}
}

func runLSCC(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"lscc"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeTempLSCFile(t *testing.T, name, src string) string {
	t.Helper()
	return writeFile(t, filepath.Join(t.TempDir(), name), src)
}

func writeFile(t *testing.T, path, src string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
