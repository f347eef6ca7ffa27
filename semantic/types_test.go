package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	for _, name := range []string{"int", "float", "double", "char", "bool", "void"} {
		typ := TypeOf(name)
		require.NotEqual(t, Invalid, typ, name)
		require.Equal(t, name, typ.String())
	}
	require.Equal(t, Invalid, TypeOf("invalid"))
	require.Equal(t, Invalid, TypeOf("string"))
	require.Equal(t, "invalid", Type(42).String())
}

func TestAssignableTo(t *testing.T) {
	all := []Type{Int, Float, Double, Char, Bool, Void}
	allowed := map[Type][]Type{
		Int:    {Int, Char},
		Float:  {Int, Float},
		Double: {Int, Float, Double},
		Char:   {Char},
		Bool:   {Bool},
		Void:   {},
	}
	for _, dst := range all {
		for _, src := range all {
			want := false
			for _, ok := range allowed[dst] {
				if ok == src {
					want = true
				}
			}
			require.Equal(t, want, AssignableTo(dst, src), "%s <- %s", dst, src)
		}
		require.True(t, AssignableTo(dst, Invalid))
		require.True(t, AssignableTo(Invalid, dst))
	}
}

func TestPromote(t *testing.T) {
	tests := []struct {
		x, y, want Type
	}{
		{Int, Int, Int},
		{Char, Char, Int},
		{Char, Int, Int},
		{Int, Float, Float},
		{Float, Char, Float},
		{Float, Float, Float},
		{Int, Double, Double},
		{Double, Float, Double},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Promote(tt.x, tt.y), "%s, %s", tt.x, tt.y)
		require.Equal(t, tt.want, Promote(tt.y, tt.x), "%s, %s", tt.y, tt.x)
	}
}

func TestIsNumeric(t *testing.T) {
	require.True(t, Int.IsNumeric())
	require.True(t, Char.IsNumeric())
	require.True(t, Double.IsNumeric())
	require.False(t, Bool.IsNumeric())
	require.False(t, Void.IsNumeric())
	require.False(t, Invalid.IsNumeric())
}
