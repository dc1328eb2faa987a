package rtabi

// Runtime helper names used by generated code (must match the runtime
// library's support header).
const (
	// Casts
	FnCast       = "lsc::Cast"       // checked downcast, throws on failure
	FnIsInstance = "lsc::IsInstance" // is
	FnAsInstance = "lsc::As"         // as, yields null on failure
	FnToString   = "lsc::ToString"   // primitive to string conversion
	FnToBool     = "lsc::ToBool"     // any value to bool

	// Allocation
	FnNew      = "lsc::New"
	FnNewArray = "lsc::NewArray"

	// Exceptions
	FnThrow = "lsc::Throw"
)

// SupportHeader is the runtime header included by every generated file.
const SupportHeader = "lsc/runtime.hpp"
