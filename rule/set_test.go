package rule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/sena/filter"
)

func fizzBuzzConfig() *Config {
	return &Config{Rules: []Rule{
		{Name: "fizzbuzz", Expr: "divisible_by(15)"},
		{Name: "fizz", Expr: "divisible_by(3) & ~divisible_by(5)"},
		{Name: "buzz", Expr: "divisible_by(5) & ~divisible_by(3)"},
		{Name: "plain", Expr: "~(divisible_by(3) | divisible_by(5))"},
	}}
}

func TestNewSet(t *testing.T) {
	s, err := NewSet(fizzBuzzConfig(), testRegistry())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"fizzbuzz", "fizz", "buzz", "plain"}, s.Names())

	f, ok := s.Get("fizz")
	require.True(t, ok)
	assert.Equal(t, "divisible_by(3) & ~(divisible_by(5))", f.String())

	_, ok = s.Get("missing")
	assert.False(t, ok)

	names := s.Names()
	names[0] = "changed"
	assert.Equal(t, "fizzbuzz", s.Names()[0])
}

func TestNewSetErrors(t *testing.T) {
	reg := testRegistry()

	_, err := NewSet(&Config{Rules: []Rule{{Name: "a", Expr: "unknown"}}}, reg)
	assert.ErrorIs(t, err, ErrUnknownPredicate)
	assert.ErrorContains(t, err, "rule a")

	_, err = NewSet(&Config{Rules: []Rule{{Name: "a", Expr: "even &"}}}, reg)
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = NewSet(&Config{Rules: []Rule{{Name: "a", Expr: "even"}, {Name: "a", Expr: "even"}}}, reg)
	assert.ErrorIs(t, err, ErrDuplicateRule)
}

func TestSetMatch(t *testing.T) {
	ctx := context.Background()
	s, err := NewSet(fizzBuzzConfig(), testRegistry())
	require.NoError(t, err)

	tests := []struct {
		x    int
		want []string
	}{
		{x: 1, want: []string{"plain"}},
		{x: 3, want: []string{"fizz"}},
		{x: 10, want: []string{"buzz"}},
		{x: 30, want: []string{"fizzbuzz"}},
	}

	for _, tt := range tests {
		matched, err := s.Match(ctx, tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, matched, "x=%d", tt.x)
	}

	t.Run("error names the rule", func(t *testing.T) {
		s, err := NewSet(&Config{Rules: []Rule{{Name: "luck", Expr: "lucky"}}}, testRegistry())
		require.NoError(t, err)

		_, err = s.Match(ctx, 13)
		assert.ErrorIs(t, err, errBoom)
		assert.ErrorContains(t, err, "rule luck")
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.Match(canceled, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSetMatchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("results follow inputs", func(t *testing.T) {
		s, err := NewSet(fizzBuzzConfig(), testRegistry(), WithConcurrency(2))
		require.NoError(t, err)

		results, err := s.MatchAll(ctx, []int{1, 3, 5, 15})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"plain"}, {"fizz"}, {"buzz"}, {"fizzbuzz"}}, results)
	})

	t.Run("empty", func(t *testing.T) {
		s, err := NewSet(fizzBuzzConfig(), testRegistry())
		require.NoError(t, err)

		results, err := s.MatchAll(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("first error cancels the rest", func(t *testing.T) {
		reg := testRegistry().Add(filter.Async(func(ctx context.Context, x int) (bool, error) {
			if x == 13 {
				return false, errBoom
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(5 * time.Second):
				return true, nil
			}
		}).Named("slow"))

		s, err := NewSet(&Config{Rules: []Rule{{Name: "slow", Expr: "slow"}}}, reg)
		require.NoError(t, err)

		start := time.Now()
		_, err = s.MatchAll(ctx, []int{1, 2, 13, 4})
		assert.ErrorIs(t, err, errBoom)
		assert.ErrorContains(t, err, "input 2")
		assert.Less(t, time.Since(start), 4*time.Second)
	})
}

func TestSetLift(t *testing.T) {
	ctx := context.Background()
	s, err := NewSet(fizzBuzzConfig(), testRegistry())
	require.NoError(t, err)

	var calls []string
	counted := s.Lift(func(fn filter.Func[int]) filter.Func[int] {
		name := filter.NameOrRepr(fn)
		return filter.Wrap(func(x int) filter.Result {
			calls = append(calls, name)
			return fn.Call(x)
		}, name)
	})

	assert.Equal(t, s.Names(), counted.Names())

	f, _ := counted.Get("fizz")
	assert.Equal(t, "divisible_by(3) & ~(divisible_by(5))", f.String())

	matched, err := counted.Match(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"fizz"}, matched)
	assert.Equal(t, []string{
		"divisible_by(15)",
		"divisible_by(3)", "divisible_by(5)",
		"divisible_by(5)",
		"divisible_by(3)",
	}, calls)

	calls = nil
	_, err = s.Match(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, calls)
}
