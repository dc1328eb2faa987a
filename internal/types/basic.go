package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Void BasicKind = iota
	Bool
	Int
	Float
	String
	Null
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	infoBoolean BasicInfo = 1 << iota
	infoInteger
	infoFloat
	infoString
	infoNumeric = infoInteger | infoFloat
	infoBoxable = infoBoolean | infoNumeric | infoString
)

// Basic represents void, bool, int, float, string and the null type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind { return b.kind }

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo { return b.info }

// String implements Type.
func (b *Basic) String() string { return b.name }

// Typ holds the basic types, indexed by BasicKind.
var Typ = []*Basic{
	Void:   {kind: Void, name: "void"},
	Bool:   {kind: Bool, info: infoBoolean, name: "bool"},
	Int:    {kind: Int, info: infoInteger, name: "int"},
	Float:  {kind: Float, info: infoFloat, name: "float"},
	String: {kind: String, info: infoString, name: "string"},
	Null:   {kind: Null, name: "null"},
}

// isBasic reports whether t is the basic type of kind k.
func isBasic(t Type, k BasicKind) bool {
	b, ok := t.(*Basic)
	return ok && b.kind == k
}

// IsVoid reports whether t is void.
func IsVoid(t Type) bool { return isBasic(t, Void) }

// IsBool reports whether t is bool.
func IsBool(t Type) bool { return isBasic(t, Bool) }

// IsInt reports whether t is int.
func IsInt(t Type) bool { return isBasic(t, Int) }

// IsFloat reports whether t is float.
func IsFloat(t Type) bool { return isBasic(t, Float) }

// IsString reports whether t is string.
func IsString(t Type) bool { return isBasic(t, String) }

// IsNull reports whether t is the type of the null literal.
func IsNull(t Type) bool { return isBasic(t, Null) }

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.info&infoNumeric != 0
}

// IsBoxable reports whether values of t can be boxed into an object.
func IsBoxable(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.info&infoBoxable != 0
}
