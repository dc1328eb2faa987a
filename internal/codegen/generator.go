// Package codegen translates analyzed LSC packages to C++ source that
// builds against the lsc runtime library.
package codegen

import (
	"io"
	"strings"

	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// Generator is the C++ backend. It implements syntax.Translator; all
// nodes reach it through syntax.Translate and syntax.TranslateExpr.
type Generator struct {
	e   emitter
	env types.Env

	// defining is set while out-of-class member definitions are emitted.
	defining bool

	// End labels of switch statements that contain a break.
	labels map[*syntax.SwitchStmt]string

	// Includes are extra headers included after the runtime header.
	Includes []string
}

var _ syntax.Translator = (*Generator)(nil)

// New returns a generator writing to w. env supplies the classes backing
// array types; it is normally the checker that analyzed the package.
func New(w io.Writer, env types.Env) *Generator {
	return &Generator{
		e:      emitter{w: w},
		env:    env,
		labels: make(map[*syntax.SwitchStmt]string),
	}
}

// Generate writes the C++ translation of the analyzed package pkg to w.
func Generate(w io.Writer, pkg *syntax.Package, env types.Env) error {
	return syntax.Translate(New(w, env), pkg)
}

// classes returns the classes of pkg that need a definition, with every
// class after its superclass and interfaces. Templates are replaced by
// their instances; native classes are provided by the runtime.
func classes(pkg *syntax.Package) []*syntax.Class {
	var (
		list []*syntax.Class
		seen = make(map[*syntax.Class]bool)
	)
	var visit func(c *syntax.Class)
	visit = func(c *syntax.Class) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		visit(c.Super)
		for _, i := range c.Interfaces {
			visit(i)
		}
		native := c.Native || (c.Template != nil && c.Template.Native)
		if c.Analyzed() && !native {
			list = append(list, c)
		}
	}
	for _, c := range pkg.Classes() {
		if c.IsTemplate() {
			for _, inst := range c.Instances() {
				visit(inst)
			}
			continue
		}
		visit(c)
	}
	return list
}

func (g *Generator) TranslatePackage(pkg *syntax.Package) error {
	list := classes(pkg)

	g.e.emit("#include %q", rtabi.SupportHeader)
	for _, inc := range g.Includes {
		g.e.emit("#include %q", inc)
	}
	g.e.emitLine()
	for _, c := range list {
		g.e.emit("class %s;", g.className(c))
	}

	for _, c := range list {
		g.e.emitLine()
		if err := syntax.Translate(g, c); err != nil {
			return err
		}
	}

	g.defining = true
	defer func() { g.defining = false }()
	for _, c := range list {
		for _, m := range c.Members() {
			if err := syntax.Translate(g, m); err != nil {
				return err
			}
		}
	}
	return g.e.err
}

// TranslateClass emits the class definition with its member
// declarations.
func (g *Generator) TranslateClass(c *syntax.Class) error {
	var bases []string
	if c.Super != nil {
		bases = append(bases, "public "+g.className(c.Super))
	}
	for _, i := range c.Interfaces {
		bases = append(bases, "public virtual "+g.className(i))
	}
	header := "class " + g.className(c)
	if c.Sealed {
		header += " final"
	}
	if len(bases) > 0 {
		header += " : " + strings.Join(bases, ", ")
	}

	g.e.open("%s {", header)
	access := syntax.AccessLevel(255)
	for _, m := range c.Members() {
		if m.Access != access {
			access = m.Access
			g.e.emitLabel(access.String() + ":")
		}
		if err := syntax.Translate(g, m); err != nil {
			return err
		}
	}
	g.e.close("};")
	return g.e.err
}

// TranslateClassMember emits the in-class declaration of m, or its
// definition once the classes are complete.
func (g *Generator) TranslateClassMember(m *syntax.ClassMember) error {
	if g.defining {
		if m.IsField() {
			return g.fieldDef(m)
		}
		return g.methodDef(m)
	}
	if m.IsField() {
		return g.fieldDecl(m)
	}
	return g.methodDecl(m)
}

func (g *Generator) fieldDecl(m *syntax.ClassMember) error {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	if m.Const {
		b.WriteString("const ")
	}
	b.WriteString(g.cppType(m.ReturnType))
	b.WriteString(" ")
	b.WriteString(memberName(m))
	if !m.Static && m.Init != nil {
		init, err := g.fieldInit(m)
		if err != nil {
			return err
		}
		b.WriteString(" = ")
		b.WriteString(init)
	}
	g.e.emit("%s;", b.String())
	return g.e.err
}

func (g *Generator) fieldDef(m *syntax.ClassMember) error {
	if !m.Static {
		return nil
	}
	var b strings.Builder
	if m.Const {
		b.WriteString("const ")
	}
	b.WriteString(g.cppType(m.ReturnType))
	b.WriteString(" ")
	b.WriteString(g.className(m.Class()))
	b.WriteString("::")
	b.WriteString(memberName(m))
	if m.Init != nil {
		init, err := g.fieldInit(m)
		if err != nil {
			return err
		}
		b.WriteString(" = ")
		b.WriteString(init)
	}
	g.e.emitLine()
	g.e.emit("%s;", b.String())
	return g.e.err
}

// fieldInit returns the initializer of m. Constant fields are folded.
func (g *Generator) fieldInit(m *syntax.ClassMember) (string, error) {
	if m.Const {
		v, err := syntax.Evaluate(m.Init)
		if err != nil {
			return "", err
		}
		return valueCode(v), nil
	}
	return g.top(m.Init)
}

// params formats the parameter list of m. Default values are written
// only in declarations.
func (g *Generator) params(m *syntax.ClassMember, defaults bool) (string, error) {
	list := make([]string, len(m.Args))
	for i, a := range m.Args {
		p := g.cppType(a.Type) + " " + a.Ident
		if defaults && a.Init != nil {
			init, err := g.top(a.Init)
			if err != nil {
				return "", err
			}
			p += " = " + init
		}
		list[i] = p
	}
	return strings.Join(list, ", "), nil
}

func (g *Generator) methodDecl(m *syntax.ClassMember) error {
	params, err := g.params(m, true)
	if err != nil {
		return err
	}
	if m.Constructor {
		g.e.emit("%s(%s);", g.className(m.Class()), params)
		return g.e.err
	}

	var b strings.Builder
	switch {
	case m.Static:
		b.WriteString("static ")
	case m.Virtual || m.Abstract || m.Override || m.Class().Interface:
		b.WriteString("virtual ")
	}
	b.WriteString(g.cppType(m.ReturnType))
	b.WriteString(" ")
	b.WriteString(memberName(m))
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString(")")
	if m.Override {
		b.WriteString(" override")
	}
	if m.Body == nil && (m.Abstract || m.Class().Interface) {
		b.WriteString(" = 0")
	}
	g.e.emit("%s;", b.String())
	return g.e.err
}

func (g *Generator) methodDef(m *syntax.ClassMember) error {
	if m.Body == nil {
		return nil
	}
	params, err := g.params(m, false)
	if err != nil {
		return err
	}
	cls := g.className(m.Class())
	g.e.emitLine()
	if m.Constructor {
		g.e.open("%s::%s(%s) {", cls, cls, params)
	} else {
		g.e.open("%s %s::%s(%s) {", g.cppType(m.ReturnType), cls, memberName(m), params)
	}
	if err := syntax.Translate(g, m.Body); err != nil {
		return err
	}
	g.e.close("}")
	return g.e.err
}

func (g *Generator) TranslateMethodBody(b *syntax.MethodBody) error {
	return g.stmtList(b)
}
