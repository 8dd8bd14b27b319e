package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/sena/filter"
	"github.com/vitalvas/sena/rule"
)

func TestBuiltins(t *testing.T) {
	ctx := context.Background()
	reg := Builtins()

	tests := []struct {
		expr  string
		input filter.Args
		want  bool
	}{
		{"nonzero", filter.Args{int64(1), int64(-2)}, true},
		{"nonzero", filter.Args{int64(1), int64(0)}, false},
		{"positive", filter.Args{int64(1), int64(2)}, true},
		{"positive", filter.Args{int64(1), int64(-2)}, false},
		{"even", filter.Args{int64(4), int64(8)}, true},
		{"even", filter.Args{int64(4), int64(7)}, false},
		{"less", filter.Args{int64(1), int64(2)}, true},
		{"less", filter.Args{int64(2), int64(1)}, false},
		{"divisible_by(3)", filter.Args{int64(9), int64(12)}, true},
		{"divisible_by(3)", filter.Args{int64(9), int64(10)}, false},
		{`sum("even")`, filter.Args{int64(3), int64(5)}, true},
		{`sum("even")`, filter.Args{int64(3), int64(4)}, false},
		{`expr("it[0] > it[1]")`, filter.Args{int64(3), int64(2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := rule.Compile(tt.expr, reg)
			require.NoError(t, err)

			ok, err := filter.Check(ctx, f, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestBuiltinsDivisibleSum(t *testing.T) {
	ctx := context.Background()

	f, err := rule.Compile(`sum("divisible_by(3) & divisible_by(5) & divisible_by(2)") & nonzero`, Builtins())
	require.NoError(t, err)
	assert.Equal(t, `sum("divisible_by(3) & divisible_by(5) & divisible_by(2)") & nonzero`, f.String())

	tests := []struct {
		x, y int64
		want bool
	}{
		{29, 1, true},
		{1, 29, true},
		{15, 15, true},
		{0, 30, false},
		{30, 0, false},
		{7, 1, false},
	}

	for _, tt := range tests {
		ok, err := filter.Check(ctx, f, filter.Args{tt.x, tt.y})
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "(%d, %d)", tt.x, tt.y)
	}
}

func TestBuiltinsErrors(t *testing.T) {
	ctx := context.Background()
	reg := Builtins()

	t.Run("signature mismatch", func(t *testing.T) {
		f := rule.MustCompile("less", reg)
		_, err := filter.Check(ctx, f, filter.Args{int64(1), int64(2), int64(3)})
		assert.ErrorIs(t, err, filter.ErrSignatureMismatch)

		_, err = filter.Check(ctx, rule.MustCompile("even", reg), filter.Args{"x"})
		assert.ErrorIs(t, err, filter.ErrSignatureMismatch)

		ok, err := filter.Check(ctx, rule.MustCompile(`sum("even")`, reg), filter.Args{"x", int64(2)})
		assert.ErrorIs(t, err, filter.ErrSignatureMismatch)
		assert.ErrorContains(t, err, "sum argument 0 is string")
		assert.False(t, ok)

		_, err = filter.Check(ctx, rule.MustCompile(`sum("even") | positive`, reg), filter.Args{int64(2), nil})
		assert.ErrorIs(t, err, filter.ErrSignatureMismatch)
	})

	t.Run("bad factory arguments", func(t *testing.T) {
		for _, input := range []string{
			"divisible_by(0)",
			"divisible_by()",
			`divisible_by("3")`,
			"sum(1)",
			`sum("missing")`,
			"sum()",
		} {
			_, err := rule.Compile(input, reg)
			assert.Error(t, err, input)
		}
	})
}
