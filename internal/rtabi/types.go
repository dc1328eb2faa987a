// Package rtabi defines the names shared between the compiler and the
// managed runtime library. These values must be kept in sync with the
// runtime's class declarations.
package rtabi

import "github.com/you-not-fish/lsc/internal/types"

// Runtime classes the compiler binds language constructs to.
const (
	// RootClass is the implicit superclass of every class.
	RootClass = "object"

	BoolClass   = "Bool"
	IntClass    = "Int"
	FloatClass  = "Float"
	StringClass = "String"

	// ArrayClass is the generic class backing T[]; it takes one argument.
	ArrayClass = "Array"
)

// Accessor methods looked up by name.
const (
	// MethodGetValue unboxes a box object.
	MethodGetValue = "GetValue"

	// MethodGetIndex backs x[i] reads and foreach enumeration.
	MethodGetIndex = "GetIndex"

	// MethodSetIndex backs x[i] = v.
	MethodSetIndex = "SetIndex"

	// MethodGetSlice backs x[a:b].
	MethodGetSlice = "GetSlice"

	// MethodLength bounds foreach enumeration.
	MethodLength = "Length"
)

// BackingClass returns the name of the runtime class backing the basic
// type kind k, or "" if the kind has none.
func BackingClass(k types.BasicKind) string {
	switch k {
	case types.Bool:
		return BoolClass
	case types.Int:
		return IntClass
	case types.Float:
		return FloatClass
	case types.String:
		return StringClass
	}
	return ""
}

// Target type names for primitive values in generated code.
const (
	NativeBool   = "bool"
	NativeInt    = "int32_t"
	NativeFloat  = "float"
	NativeString = "lsc::String"
	NativeVoid   = "void"
	NativeNull   = "nullptr"
)

// NativeBasic returns the target type name for the basic type kind k.
func NativeBasic(k types.BasicKind) string {
	switch k {
	case types.Bool:
		return NativeBool
	case types.Int:
		return NativeInt
	case types.Float:
		return NativeFloat
	case types.String:
		return NativeString
	case types.Null:
		return NativeNull
	}
	return NativeVoid
}
