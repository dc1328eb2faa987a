package rtabi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/you-not-fish/lsc/internal/types"
)

func TestBasicMappings(t *testing.T) {
	tests := []struct {
		kind   types.BasicKind
		class  string
		native string
	}{
		{types.Bool, BoolClass, NativeBool},
		{types.Int, IntClass, NativeInt},
		{types.Float, FloatClass, NativeFloat},
		{types.String, StringClass, NativeString},
		{types.Null, "", NativeNull},
		{types.Void, "", NativeVoid},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.class, BackingClass(tt.kind))
			assert.Equal(t, tt.native, NativeBasic(tt.kind))
		})
	}
}
