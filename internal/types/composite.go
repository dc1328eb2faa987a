package types

import "strings"

// ----------------------------------------------------------------------------
// Array

// Array represents an array type: T[]. Arrays are jagged; the length is a
// property of the value, not of the type.
type Array struct {
	typ
	elem Type
}

// NewArray returns a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the element type.
func (a *Array) Elem() Type { return a.elem }

func (a *Array) String() string {
	return a.elem.String() + "[]"
}

// ----------------------------------------------------------------------------
// Object

// Object is the type of an instance of a class.
type Object struct {
	typ
	class Class
}

// NewObject returns the instance type of c. Classes cache the result;
// prefer Class.ObjectType.
func NewObject(c Class) *Object {
	return &Object{class: c}
}

// Class returns the class the type is bound to.
func (o *Object) Class() Class { return o.class }

func (o *Object) String() string { return o.class.Name() }

// ----------------------------------------------------------------------------
// ClassRef

// ClassRef is the type of an expression naming a class, as in the left
// operand of Math.Abs(x).
type ClassRef struct {
	typ
	class Class
}

// NewClassRef returns the class reference type of c.
func NewClassRef(c Class) *ClassRef {
	return &ClassRef{class: c}
}

// Class returns the referenced class.
func (r *ClassRef) Class() Class { return r.class }

func (r *ClassRef) String() string { return r.class.Name() }

// ----------------------------------------------------------------------------
// Identifier

// Identifier is an unresolved type name with optional generic arguments,
// as written in source. It is a placeholder and must be resolved before
// use.
type Identifier struct {
	typ
	name string
	args []Type
}

// NewIdentifier returns an unresolved type name.
func NewIdentifier(name string, args []Type) *Identifier {
	return &Identifier{name: name, args: args}
}

// Name returns the type name.
func (id *Identifier) Name() string { return id.name }

// Args returns the generic arguments.
func (id *Identifier) Args() []Type { return id.args }

func (id *Identifier) String() string {
	if len(id.args) == 0 {
		return id.name
	}
	return id.name + "<" + TypeList(id.args) + ">"
}

// TypeList formats types as a comma separated list.
func TypeList(list []Type) string {
	var b strings.Builder
	for i, t := range list {
		if i > 0 {
			b.WriteByte(',')
		}
		if t == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(t.String())
	}
	return b.String()
}
