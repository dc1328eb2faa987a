package codegen

import (
	"strings"

	"github.com/you-not-fish/lsc/internal/rtabi"
	"github.com/you-not-fish/lsc/internal/syntax"
	"github.com/you-not-fish/lsc/internal/types"
)

// cppType maps an LSC type to its C++ type string. Primitives are values;
// objects and arrays are pointers.
func (g *Generator) cppType(t types.Type) string {
	switch u := t.(type) {
	case *types.Basic:
		return rtabi.NativeBasic(u.Kind())
	case *types.Object:
		return g.className(u.Class()) + "*"
	case *types.ClassRef:
		return g.className(u.Class())
	case *types.Array:
		if g.env != nil {
			if cls := g.env.ClassOf(u); cls != nil {
				return g.className(cls) + "*"
			}
		}
		return "lsc::Array<" + g.cppType(u.Elem()) + ">*"
	}
	return rtabi.NativeVoid
}

// className returns the C++ name of a class. Native classes use their
// native name; generic instances of native templates become template
// specializations, others get the argument types mangled into the name.
func (g *Generator) className(c types.Class) string {
	cls, ok := c.(*syntax.Class)
	if !ok {
		return c.Name()
	}
	tmpl := cls
	if cls.Template != nil {
		tmpl = cls.Template
	}
	name := tmpl.Ident
	if tmpl.MangledIdent != "" {
		name = tmpl.MangledIdent
	}
	if len(cls.GenericArgs) == 0 {
		return name
	}
	if tmpl.Native {
		args := make([]string, len(cls.GenericArgs))
		for i, a := range cls.GenericArgs {
			args[i] = g.cppType(a)
		}
		return name + "<" + strings.Join(args, ", ") + ">"
	}
	var b strings.Builder
	b.WriteString(name)
	for _, a := range cls.GenericArgs {
		b.WriteString("_")
		b.WriteString(mangle(a))
	}
	return b.String()
}

// mangle turns a type into an identifier fragment.
func mangle(t types.Type) string {
	switch u := t.(type) {
	case *types.Array:
		return mangle(u.Elem()) + "Array"
	case *types.Object:
		cls, ok := u.Class().(*syntax.Class)
		if !ok {
			return u.String()
		}
		if len(cls.GenericArgs) == 0 {
			return cls.Ident
		}
		parts := []string{cls.Ident}
		for _, a := range cls.GenericArgs {
			parts = append(parts, mangle(a))
		}
		return strings.Join(parts, "_")
	}
	return t.String()
}

// memberName returns the C++ name of a field or method.
func memberName(m *syntax.ClassMember) string {
	if m.MangledIdent != "" {
		return m.MangledIdent
	}
	return m.Ident
}

// selector returns the operator that selects members through a value of
// type t.
func selector(t types.Type) string {
	switch t.(type) {
	case *types.Object, *types.Array:
		return "->"
	case *types.ClassRef:
		return "::"
	}
	return "."
}

// isObjectType reports whether t is a class instance type.
func isObjectType(t types.Type) bool {
	_, ok := t.(*types.Object)
	return ok
}
