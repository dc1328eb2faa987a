// Package types implements the data types of the LSC language.
// This package provides type representations without AST dependencies;
// classes are seen through the Class interface.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}

// Class is the view of a class declaration needed by the type system.
type Class interface {
	// Name returns the display name, including generic arguments.
	Name() string

	// Inherits reports whether the class is c or derives from c through
	// its superclass chain or implemented interfaces.
	Inherits(c Class) bool

	// Box returns the class that boxes values of the primitive type this
	// class backs, or nil.
	Box() Class

	// IsInterface reports whether the class is an interface.
	IsInterface() bool

	// ObjectType returns the canonical instance type of the class.
	ObjectType() *Object

	// RefType returns the canonical class reference type of the class.
	RefType() *ClassRef
}

// Env supplies the classes that back primitive and array types.
type Env interface {
	// ClassOf returns the class backing t (bool, int, float, string or an
	// array type), or nil if no such class is declared.
	ClassOf(t Type) Class
}
