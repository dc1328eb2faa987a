package syntax

import (
	"strconv"
	"strings"

	"github.com/you-not-fish/lsc/internal/types"
)

// ValueKind is the type of a constant value.
type ValueKind uint8

const (
	BoolValue ValueKind = iota
	IntValue
	FloatValue
	StringValue
)

func (k ValueKind) String() string {
	switch k {
	case BoolValue:
		return "bool"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	}
	return "string"
}

// Value is the result of constant evaluation. Ints and floats have the
// 32-bit semantics of the target runtime.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int32
	Float float32
	Str   string
}

func BoolVal(b bool) Value     { return Value{Kind: BoolValue, Bool: b} }
func IntVal(i int32) Value     { return Value{Kind: IntValue, Int: i} }
func FloatVal(f float32) Value { return Value{Kind: FloatValue, Float: f} }
func StringVal(s string) Value { return Value{Kind: StringValue, Str: s} }

// IsNumeric reports whether v is an int or a float.
func (v Value) IsNumeric() bool { return v.Kind == IntValue || v.Kind == FloatValue }

// As converts v to kind k.
func (v Value) As(k ValueKind) Value {
	if v.Kind == k {
		return v
	}
	switch k {
	case BoolValue:
		switch v.Kind {
		case IntValue:
			return BoolVal(v.Int != 0)
		case FloatValue:
			return BoolVal(v.Float != 0)
		}
		return BoolVal(v.Str != "")
	case IntValue:
		switch v.Kind {
		case BoolValue:
			if v.Bool {
				return IntVal(1)
			}
			return IntVal(0)
		case FloatValue:
			return IntVal(int32(v.Float))
		}
		i, _ := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 32)
		return IntVal(int32(i))
	case FloatValue:
		switch v.Kind {
		case BoolValue:
			if v.Bool {
				return FloatVal(1)
			}
			return FloatVal(0)
		case IntValue:
			return FloatVal(float32(v.Int))
		}
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.Str), 32)
		return FloatVal(float32(f))
	}
	return StringVal(v.String())
}

// String formats the value the way the runtime stringifies it.
func (v Value) String() string {
	switch v.Kind {
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	case IntValue:
		return strconv.FormatInt(int64(v.Int), 10)
	case FloatValue:
		return strconv.FormatFloat(float64(v.Float), 'g', -1, 32)
	}
	return v.Str
}

func valueKindOf(t types.Type) (ValueKind, bool) {
	switch {
	case types.IsBool(t):
		return BoolValue, true
	case types.IsInt(t):
		return IntValue, true
	case types.IsFloat(t):
		return FloatValue, true
	case types.IsString(t):
		return StringValue, true
	}
	return 0, false
}

func notConstant(n Node) error {
	return Errorf(StructuralError, n.Tok(), "Could not statically analyse node. Expression is not constant.")
}

// Evaluate folds the expression rooted at n to a constant. Const fields
// referenced by name fold through their initializers. Any other node is
// not constant.
func Evaluate(n Node) (Value, error) {
	return evaluate(n, nil)
}

// evaluate tracks the const fields being folded to reject self-reference.
func evaluate(n Node, active map[*ClassMember]bool) (Value, error) {
	switch n := n.(type) {
	case *ExprStmt:
		return evaluate(n.X, active)

	case *LiteralExpr:
		return evalLiteral(n)

	case *CastExpr:
		v, err := evaluate(n.X, active)
		if err != nil {
			return v, err
		}
		t := n.Type()
		if t == nil {
			t = n.Target
		}
		if k, ok := valueKindOf(t); ok {
			v = v.As(k)
		}
		return v, nil

	case *IdentExpr:
		if m, ok := n.Decl.(*ClassMember); ok {
			return evalConstField(n, m, active)
		}
		return Value{}, notConstant(n)

	case *FieldAccessExpr:
		if n.Field != nil {
			return evalConstField(n, n.Field, active)
		}
		return Value{}, notConstant(n)

	case *PrefixExpr:
		v, err := evaluate(n.X, active)
		if err != nil {
			return v, err
		}
		return evalPrefix(n, v)

	case *BinaryMathExpr:
		x, err := evaluate(n.X, active)
		if err != nil {
			return x, err
		}
		y, err := evaluate(n.Y, active)
		if err != nil {
			return y, err
		}
		return evalMath(n, n.Op, x, y)

	case *ComparisonExpr:
		x, err := evaluate(n.X, active)
		if err != nil {
			return x, err
		}
		y, err := evaluate(n.Y, active)
		if err != nil {
			return y, err
		}
		return evalCompare(n, x, y)

	case *LogicalExpr:
		x, err := evaluate(n.X, active)
		if err != nil {
			return x, err
		}
		x = x.As(BoolValue)
		if n.Op == _AndAnd && !x.Bool || n.Op == _OrOr && x.Bool {
			return x, nil
		}
		y, err := evaluate(n.Y, active)
		if err != nil {
			return y, err
		}
		return y.As(BoolValue), nil

	case *TernaryExpr:
		c, err := evaluate(n.Cond, active)
		if err != nil {
			return c, err
		}
		if c.As(BoolValue).Bool {
			return evaluate(n.X, active)
		}
		return evaluate(n.Y, active)

	case *CommaExpr:
		if _, err := evaluate(n.X, active); err != nil {
			return Value{}, err
		}
		return evaluate(n.Y, active)
	}
	return Value{}, notConstant(n)
}

func evalLiteral(n *LiteralExpr) (Value, error) {
	switch n.Kind {
	case _True:
		return BoolVal(true), nil
	case _False:
		return BoolVal(false), nil
	case _StringLit:
		return StringVal(n.Lit), nil
	case _IntLit:
		base := 10
		lit := n.Lit
		if len(lit) > 2 && lit[0] == '0' {
			switch lit[1] {
			case 'x', 'X':
				base, lit = 16, lit[2:]
			case 'b', 'B':
				base, lit = 2, lit[2:]
			}
		}
		i, err := strconv.ParseUint(lit, base, 32)
		if err != nil {
			return Value{}, Errorf(SyntaxError, n.Tok(), "Invalid integer literal '%s'.", n.Lit)
		}
		return IntVal(int32(uint32(i))), nil
	case _FloatLit:
		f, err := strconv.ParseFloat(n.Lit, 32)
		if err != nil {
			return Value{}, Errorf(SyntaxError, n.Tok(), "Invalid float literal '%s'.", n.Lit)
		}
		return FloatVal(float32(f)), nil
	}
	return Value{}, notConstant(n)
}

func evalConstField(n Node, m *ClassMember, active map[*ClassMember]bool) (Value, error) {
	if !m.IsField() || !m.Const || m.Init == nil || active[m] {
		return Value{}, notConstant(n)
	}
	if active == nil {
		active = make(map[*ClassMember]bool)
	}
	active[m] = true
	defer delete(active, m)
	v, err := evaluate(m.Init, active)
	if err != nil {
		return v, err
	}
	if k, ok := valueKindOf(m.ReturnType); ok {
		v = v.As(k)
	}
	return v, nil
}

func evalPrefix(n *PrefixExpr, v Value) (Value, error) {
	switch n.Op {
	case _Add:
		if v.IsNumeric() {
			return v, nil
		}
	case _Sub:
		switch v.Kind {
		case IntValue:
			return IntVal(-v.Int), nil
		case FloatValue:
			return FloatVal(-v.Float), nil
		}
	case _Tilde:
		if v.Kind == IntValue {
			return IntVal(^v.Int), nil
		}
	case _Not:
		return BoolVal(!v.As(BoolValue).Bool), nil
	case _NotNot:
		return v.As(BoolValue), nil
	}
	return Value{}, notConstant(n)
}

func evalMath(n Node, op Kind, x, y Value) (Value, error) {
	if x.Kind == StringValue || y.Kind == StringValue {
		if op != _Add {
			return Value{}, notConstant(n)
		}
		return StringVal(x.String() + y.String()), nil
	}
	if x.Kind == BoolValue || y.Kind == BoolValue {
		return Value{}, notConstant(n)
	}
	if x.Kind == FloatValue || y.Kind == FloatValue {
		a, b := x.As(FloatValue).Float, y.As(FloatValue).Float
		switch op {
		case _Add:
			return FloatVal(a + b), nil
		case _Sub:
			return FloatVal(a - b), nil
		case _Mul:
			return FloatVal(a * b), nil
		case _Div:
			if b == 0 {
				return Value{}, Errorf(StructuralError, n.Tok(), "Attempted division by zero in constant expression.")
			}
			return FloatVal(a / b), nil
		}
		return Value{}, notConstant(n)
	}

	a, b := x.Int, y.Int
	switch op {
	case _Add:
		return IntVal(a + b), nil
	case _Sub:
		return IntVal(a - b), nil
	case _Mul:
		return IntVal(a * b), nil
	case _Div, _Rem:
		if b == 0 {
			return Value{}, Errorf(StructuralError, n.Tok(), "Attempted division by zero in constant expression.")
		}
		if op == _Div {
			return IntVal(a / b), nil
		}
		return IntVal(a % b), nil
	case _And:
		return IntVal(a & b), nil
	case _Or:
		return IntVal(a | b), nil
	case _Xor:
		return IntVal(a ^ b), nil
	case _Shl:
		return IntVal(a << uint32(b&31)), nil
	case _Shr:
		return IntVal(a >> uint32(b&31)), nil
	}
	return Value{}, notConstant(n)
}

func evalCompare(n *ComparisonExpr, x, y Value) (Value, error) {
	var c int
	switch {
	case x.Kind == StringValue && y.Kind == StringValue:
		c = strings.Compare(x.Str, y.Str)
	case x.Kind == BoolValue && y.Kind == BoolValue:
		if n.Op != _Eql && n.Op != _Neq {
			return Value{}, notConstant(n)
		}
		if x.Bool != y.Bool {
			c = 1
		}
	case x.IsNumeric() && y.IsNumeric():
		if x.Kind == FloatValue || y.Kind == FloatValue {
			a, b := x.As(FloatValue).Float, y.As(FloatValue).Float
			switch {
			case a < b:
				c = -1
			case a > b:
				c = 1
			}
		} else {
			switch {
			case x.Int < y.Int:
				c = -1
			case x.Int > y.Int:
				c = 1
			}
		}
	default:
		return Value{}, notConstant(n)
	}
	switch n.Op {
	case _Eql:
		return BoolVal(c == 0), nil
	case _Neq:
		return BoolVal(c != 0), nil
	case _Lss:
		return BoolVal(c < 0), nil
	case _Leq:
		return BoolVal(c <= 0), nil
	case _Gtr:
		return BoolVal(c > 0), nil
	case _Geq:
		return BoolVal(c >= 0), nil
	}
	return Value{}, notConstant(n)
}
