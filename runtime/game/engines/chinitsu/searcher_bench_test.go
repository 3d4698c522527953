package chinitsu

import (
	"testing"
	"time"

	"chinitsu/common/cache"
)

func benchHands() (Hand, Hand) {
	return Hand{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9},
		Hand{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 9}
}

func BenchmarkIsWinningHand(b *testing.B) {
	_, h14 := benchHands()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = IsWinningHand(h14)
	}
}

func BenchmarkEnumerateWaits_NoCache(b *testing.B) {
	h13, _ := benchHands()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EnumerateWaits(h13)
	}
}

func BenchmarkEnumerateWaits_Cached(b *testing.B) {
	c, err := cache.NewGeneralCache(1<<12, time.Minute)
	if err != nil {
		b.Fatalf("create cache: %v", err)
	}
	defer c.Close()
	s := NewSearcher(c)
	h13, _ := benchHands()
	_ = s.Waits(h13)
	c.Wait()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Waits(h13)
	}
}

func BenchmarkGenerate_Normal(b *testing.B) {
	g := NewGenerator(WithSeed(1))
	opts := HandOptions{MinWaits: Waits(3), MaxWaits: Waits(4)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Generate(opts)
	}
}
