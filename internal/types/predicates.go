package types

// Identical reports whether x and y are identical types. Object and class
// reference types are identical iff they are bound to the same class.
// Unresolved identifiers are never identical to anything.
func Identical(x, y Type) bool {
	if x == nil || y == nil {
		return false
	}
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Object:
		if y, ok := y.(*Object); ok {
			return x.class == y.class
		}
	case *ClassRef:
		if y, ok := y.(*ClassRef); ok {
			return x.class == y.class
		}
	}
	return false
}

// IsResolved reports whether t contains no unresolved identifiers.
func IsResolved(t Type) bool {
	switch t := t.(type) {
	case nil, *Identifier:
		return false
	case *Array:
		return IsResolved(t.elem)
	}
	return true
}

// ClassOf returns the class backing t, or nil for types with no class
// binding (void, null, identifiers, or primitives the environment does not
// declare).
func ClassOf(env Env, t Type) Class {
	switch t := t.(type) {
	case *Object:
		return t.class
	case *ClassRef:
		return t.class
	case *Basic:
		if env != nil && IsBoxable(t) {
			return env.ClassOf(t)
		}
	case *Array:
		if env != nil {
			return env.ClassOf(t)
		}
	}
	return nil
}

// BoxClassOf returns the class that boxes values of the primitive type t,
// or nil.
func BoxClassOf(env Env, t Type) Class {
	if !IsBoxable(t) {
		return nil
	}
	if c := ClassOf(env, t); c != nil {
		return c.Box()
	}
	return nil
}

// CanCast reports whether a value of type from can be converted to type to.
// The relation is directional.
func CanCast(env Env, from, to Type) bool {
	if Identical(from, to) {
		return true
	}
	switch f := from.(type) {
	case *Basic:
		if o, ok := to.(*Object); ok {
			if f.kind == Null {
				return true
			}
			box := BoxClassOf(env, f)
			return box != nil && box.Inherits(o.class)
		}
		t, ok := to.(*Basic)
		switch f.kind {
		case Bool:
			return ok && (t.kind == Int || t.kind == Float)
		case Int, Float:
			return ok && (t.kind == Int || t.kind == Float || t.kind == Bool)
		case Null:
			if ok {
				return t.kind == String
			}
			_, isArray := to.(*Array)
			return isArray
		}
	case *Object:
		switch t := to.(type) {
		case *Object:
			return f.class.Inherits(t.class)
		case *Basic:
			if t.kind == String || !IsBoxable(t) {
				return false
			}
			box := BoxClassOf(env, t)
			return box != nil && box.Inherits(f.class)
		}
	}
	return false
}

// CastKind is the conversion selected for a cast.
type CastKind int

const (
	InvalidCast  CastKind = iota
	IdentityCast          // no conversion; the operand is used as is
	BoxCast               // construct the box class around the operand
	UnboxCast             // call the box class's value accessor
	ConvertCast           // plain conversion to the target type
)

var castKindNames = [...]string{
	InvalidCast:  "invalid",
	IdentityCast: "identity",
	BoxCast:      "box",
	UnboxCast:    "unbox",
	ConvertCast:  "convert",
}

func (k CastKind) String() string { return castKindNames[k] }

// Classify selects the conversion from one type to another.
//
//  1. identical types need no conversion;
//  2. castable types box (primitive to object), unbox (object to a
//     non-string primitive, explicit only) or convert;
//  3. otherwise any non-void type converts to bool, numeric types convert
//     to string, any type converts to string explicitly, and related
//     object types convert explicitly in the narrowing direction;
//  4. anything else is invalid.
func Classify(env Env, from, to Type, explicit bool) CastKind {
	if Identical(from, to) {
		return IdentityCast
	}

	_, fromObj := from.(*Object)
	_, toObj := to.(*Object)

	if CanCast(env, from, to) {
		switch {
		case toObj && !fromObj && IsBoxable(from):
			return BoxCast
		case fromObj && !toObj && !IsString(to):
			if explicit {
				return UnboxCast
			}
		default:
			return ConvertCast
		}
	}

	if IsVoid(from) || IsVoid(to) {
		return InvalidCast
	}
	if IsBool(to) {
		return ConvertCast
	}
	if IsString(to) && (IsNumeric(from) || explicit) {
		return ConvertCast
	}
	if explicit && fromObj && toObj && CanCast(env, to, from) {
		return ConvertCast
	}
	return InvalidCast
}
