package e2e

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/lsc/internal/project"
	"github.com/you-not-fish/lsc/internal/syntax"
)

// directives are the expectations stated at the top of a test program:
//
//	// expect: <text>          the generated C++ contains text
//	// warning: <text>         a warning with message text is reported
//	// error: <Kind> <text>    compilation fails with a Kind error containing text
//
// \n and \t in text stand for a newline and a tab.
type directives struct {
	expect   []string
	warnings []string
	errKind  string
	errText  string
}

var unescape = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

func readDirectives(t *testing.T, file string) directives {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	var d directives
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "//"))
		switch {
		case strings.HasPrefix(line, "expect:"):
			d.expect = append(d.expect, unescape.Replace(strings.TrimSpace(strings.TrimPrefix(line, "expect:"))))
		case strings.HasPrefix(line, "warning:"):
			d.warnings = append(d.warnings, strings.TrimSpace(strings.TrimPrefix(line, "warning:")))
		case strings.HasPrefix(line, "error:"):
			fields := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(line, "error:")), " ", 2)
			d.errKind = fields[0]
			if len(fields) > 1 {
				d.errText = fields[1]
			}
		}
	}
	require.NoError(t, sc.Err())
	return d
}

// TestE2E runs every .ls program in testdata/ through the full pipeline:
// using resolution, parsing, checking and C++ emission. Imports resolve
// against testdata/lib as a search path.
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.ls")
	require.NoError(t, err)
	require.NotEmpty(t, testFiles, "no .ls test files found in testdata/")

	lib, err := filepath.Abs(filepath.Join("testdata", "lib"))
	require.NoError(t, err)
	cfg := project.DefaultConfig()
	cfg.SearchPaths = []string{lib}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".ls")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile, &cfg)
		})
	}
}

func runE2ETest(t *testing.T, file string, cfg *project.Config) {
	d := readDirectives(t, file)
	u := project.NewUnit(file, cfg, nil)
	err := u.Compile()

	var warnings []string
	for _, w := range u.Warnings() {
		warnings = append(warnings, w.Msg)
	}
	for _, w := range d.warnings {
		assert.Contains(t, warnings, w)
	}

	if d.errKind != "" {
		require.Error(t, err, "expected a %s", d.errKind)
		kind, ok := syntax.KindOf(err)
		require.True(t, ok, "not a compile error: %v", err)
		assert.Equal(t, d.errKind, kind.String(), "error: %v", err)
		assert.Contains(t, err.Error(), d.errText)
		return
	}
	require.NoError(t, err)
	if len(d.warnings) == 0 {
		assert.Empty(t, warnings)
	}

	var out bytes.Buffer
	require.NoError(t, u.Emit(&out))
	code := out.String()
	for _, want := range d.expect {
		if !assert.Contains(t, code, want) {
			t.Logf("instances: %s", spew.Sdump(instanceNames(u)))
		}
	}
	compileCpp(t, code)
}

func instanceNames(u *project.Unit) []string {
	var names []string
	for _, c := range u.Instances() {
		names = append(names, c.Name())
	}
	return names
}

// compileCpp syntax-checks the generated code when a C++ compiler and
// the runtime headers (LSC_RUNTIME_INCLUDE) are available.
func compileCpp(t *testing.T, code string) {
	t.Helper()
	include := os.Getenv("LSC_RUNTIME_INCLUDE")
	if include == "" {
		return
	}
	cxx, err := exec.LookPath("c++")
	if err != nil {
		t.Log("c++ not found, skipping compilation")
		return
	}
	src := filepath.Join(t.TempDir(), "unit.cpp")
	require.NoError(t, os.WriteFile(src, []byte(code), 0o600))
	cmd := exec.Command(cxx, "-std=c++17", "-fsyntax-only", "-I", include, src)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("c++ failed:\n%s\n%v", out, err)
	}
}
