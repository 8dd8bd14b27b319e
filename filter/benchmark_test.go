package filter

import (
	"context"
	"testing"
)

func BenchmarkCall(b *testing.B) {
	even := Named("even", func(x int) bool { return x%2 == 0 })
	small := Named("small", func(x int) bool { return x < 1000 })
	positive := Named("positive", func(x int) bool { return x > 0 })

	tree := Or(And(even, small), Xor(positive, Not(small)))

	tests := []struct {
		name   string
		filter Filter[int]
	}{
		{name: "immediate", filter: tree},
		{name: "suspended", filter: Lift(tree, Paint[int]())},
	}

	ctx := context.Background()
	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Check(ctx, tt.filter, i); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLift(b *testing.B) {
	even := Named("even", func(x int) bool { return x%2 == 0 })
	tree := And(even, Not(even), Or(even, even))
	project := Contramap(func(s string) int { return len(s) })

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Lift(tree, project)
	}
}
