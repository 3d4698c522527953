package vo

import (
	"testing"
	"time"
)

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":    DifficultyEasy,
		" HARD ":  DifficultyHard,
		"custom":  DifficultyCustom,
		"normal":  DifficultyNormal,
		"unknown": DifficultyNormal,
		"":        DifficultyNormal,
	}
	for in, want := range cases {
		if got := ParseDifficulty(in); got != want {
			t.Fatalf("ParseDifficulty(%q) expected %s, got %s", in, want, got)
		}
	}
}

func TestDifficulty_HandOptions(t *testing.T) {
	easy := DifficultyEasy.HandOptions()
	if !easy.Accepts(1) || !easy.Accepts(2) || easy.Accepts(3) {
		t.Fatalf("easy should accept 1-2 waits only")
	}
	normal := DifficultyNormal.HandOptions()
	if normal.Accepts(2) || !normal.Accepts(3) || !normal.Accepts(4) || normal.Accepts(5) {
		t.Fatalf("normal should accept 3-4 waits only")
	}
	hard := DifficultyHard.HandOptions()
	if hard.Accepts(4) || !hard.Accepts(5) || !hard.Accepts(9) {
		t.Fatalf("hard should accept 5+ waits")
	}
}

func TestScore(t *testing.T) {
	limit := 100 * time.Second
	cases := []struct {
		name    string
		d       Difficulty
		waits   int
		correct bool
		elapsed time.Duration
		want    int
	}{
		{"instant normal doubles", DifficultyNormal, 3, true, 0, 50},
		{"half time", DifficultyHard, 6, true, 50 * time.Second, 75},
		{"at deadline", DifficultyEasy, 1, true, limit, 10},
		{"after deadline", DifficultyEasy, 1, true, limit + time.Millisecond, 0},
		{"wrong", DifficultyHard, 6, false, time.Second, 0},
		{"custom by waits", DifficultyCustom, 4, true, 75 * time.Second, 50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Score(c.d, c.waits, c.correct, c.elapsed, limit); got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
		})
	}
}

func TestGetRankingByScore(t *testing.T) {
	cases := map[int]RankingType{
		0:    RankingNovice,
		299:  RankingNovice,
		300:  RankingGuard,
		600:  RankingHero,
		1799: RankingSaint,
		1800: RankingSky,
		9999: RankingSky,
	}
	for score, want := range cases {
		if got := GetRankingByScore(score); got != want {
			t.Fatalf("score %d expected %s, got %s", score, want, got)
		}
	}
	if next, need := RankingNovice.Next(); next != RankingGuard || need != 300 {
		t.Fatalf("unexpected next ranking %s %d", next, need)
	}
	if _, need := RankingSky.Next(); need != -1 {
		t.Fatalf("top ranking has no next")
	}
}
