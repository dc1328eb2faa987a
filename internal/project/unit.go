package project

import (
	"bytes"
	_ "embed"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/you-not-fish/lsc/internal/codegen"
	"github.com/you-not-fish/lsc/internal/log"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types2"
)

// RuntimeFile is the name under which the built-in runtime declarations
// are parsed.
const RuntimeFile = "lsc/runtime.ls"

//go:embed runtime.ls
var runtimeSource []byte

// Warning is an advisory diagnostic recorded by a unit.
type Warning struct {
	Pos syntax.Pos
	Msg string
}

func (w Warning) String() string {
	if w.Pos.IsValid() {
		return w.Pos.String() + ": " + w.Msg
	}
	return w.Msg
}

// Unit is one compilation unit: a main source file together with every
// file it imports, parsed into a single package.
type Unit struct {
	file string
	conf *Config
	log  *slog.Logger

	pkg      *syntax.Package
	resolver *Resolver
	checker  *types2.Checker
	info     types2.Info

	mu       sync.Mutex
	warnings []Warning
}

var _ syntax.Diagnostics = (*Unit)(nil)

// NewUnit returns the unit rooted at file. A nil conf selects
// DefaultConfig and a nil logger discards all records.
func NewUnit(file string, conf *Config, logger *slog.Logger) *Unit {
	if conf == nil {
		c := DefaultConfig()
		conf = &c
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Unit{
		file:     file,
		conf:     conf,
		log:      logger.With("unit", file),
		pkg:      syntax.NewPackage(),
		resolver: NewResolver(conf),
	}
}

// File returns the main source file of the unit.
func (u *Unit) File() string { return u.file }

// Config returns the configuration the unit compiles with.
func (u *Unit) Config() *Config { return u.conf }

// Package returns the syntax tree of the unit.
func (u *Unit) Package() *syntax.Package { return u.pkg }

// Files returns every source and native file loaded into the unit.
func (u *Unit) Files() []string { return u.resolver.Loaded() }

// Instances returns the generic instances created by the checker.
func (u *Unit) Instances() []*syntax.Class { return u.info.Instances }

// Warning records an advisory diagnostic. Callers print the recorded
// warnings; the log only traces them.
func (u *Unit) Warning(msg string, tok syntax.Token) {
	u.mu.Lock()
	u.warnings = append(u.warnings, Warning{Pos: tok.Pos, Msg: msg})
	u.mu.Unlock()
	u.log.Info("warning", "pos", tok.Pos.String(), "msg", msg)
}

// Warnings returns the warnings recorded so far.
func (u *Unit) Warnings() []Warning {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Warning(nil), u.warnings...)
}

// Fatal builds the error that ends the unit.
func (u *Unit) Fatal(kind syntax.ErrorKind, msg string, tok syntax.Token) error {
	if kind == syntax.InternalError {
		return syntax.Internalf(tok, "%s", msg)
	}
	return syntax.Errorf(kind, tok, "%s", msg)
}

// Tokens scans the main file only.
func (u *Unit) Tokens() ([]syntax.Token, error) {
	f, err := os.Open(u.file)
	if err != nil {
		return nil, u.Fatal(syntax.SyntaxError, "Unable to read file '"+u.file+"': "+err.Error(), syntax.Token{})
	}
	defer f.Close()
	return syntax.Tokenize(u.file, f)
}

// Parse parses the runtime declarations, the configured prelude, the main
// file and, transitively, every file they import.
func (u *Unit) Parse() error {
	if u.conf.Runtime {
		u.log.Debug("parsing runtime declarations")
		if err := syntax.ParseFile(RuntimeFile, bytes.NewReader(runtimeSource), u.pkg, u, u.resolver); err != nil {
			return err
		}
	}
	for _, p := range u.conf.Prelude {
		u.resolver.Add(p)
	}
	u.resolver.Add(u.file)

	for {
		file, ok := u.resolver.Next()
		if !ok {
			return nil
		}
		if err := u.parseFile(file); err != nil {
			return err
		}
	}
}

func (u *Unit) parseFile(file string) error {
	u.log.Debug("parsing file", "file", file)
	f, err := os.Open(file)
	if err != nil {
		return u.Fatal(syntax.SyntaxError, "Unable to read file '"+file+"': "+err.Error(), syntax.Token{})
	}
	defer f.Close()
	return syntax.ParseFile(file, f, u.pkg, u, u.resolver)
}

// Check analyzes the parsed package.
func (u *Unit) Check() error {
	u.log.Debug("checking", "classes", len(u.pkg.Classes()))
	u.checker = types2.NewChecker(&types2.Config{
		Diagnostics: u,
		Logger:      u.log,
	}, &u.info)
	if err := u.checker.Check(u.pkg); err != nil {
		return err
	}
	u.log.Debug("checked", "instances", len(u.info.Instances))
	return nil
}

// Compile parses and checks the unit.
func (u *Unit) Compile() error {
	if err := u.Parse(); err != nil {
		return err
	}
	return u.Check()
}

// Emit writes the C++ translation of the checked unit to w. Native
// imports become includes.
func (u *Unit) Emit(w io.Writer) error {
	if u.checker == nil {
		return u.Fatal(syntax.InternalError, "Unit '"+u.file+"' emitted before it was checked.", syntax.Token{})
	}
	g := codegen.New(w, u.checker)
	g.Includes = u.resolver.Natives()
	u.log.Debug("emitting", "includes", len(g.Includes))
	return syntax.Translate(g, u.pkg)
}
