package chinitsu

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEnumerateWaits_NineGates(t *testing.T) {
	h := mustHand(t, "1112345678999")
	waits := EnumerateWaits(h)
	want := []Tile{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(waits, want) {
		t.Fatalf("nine gates waits expected %v, got %v", want, waits)
	}
	if !IsNineGates(h) {
		t.Fatalf("expected nine gates shape")
	}
	if got := Ukeire(h, waits); got != 23 {
		t.Fatalf("nine gates ukeire expected 23, got %d", got)
	}
}

func TestEnumerateWaits_Fixtures(t *testing.T) {
	cases := []struct {
		hand string
		want []Tile
	}{
		// 111 333 555 777 9：单骑 9，或 77 雀头 + 789
		{"1113335557779", []Tile{8, 9}},
		// 七对子单骑 7，一般型 147 三面
		{"1122334455667", []Tile{1, 4, 7}},
		// 111 222 333 444 5
		{"1112223334445", nil},
	}
	for _, c := range cases {
		t.Run(c.hand, func(t *testing.T) {
			h := mustHand(t, c.hand)
			waits := EnumerateWaits(h)
			if c.want != nil && !reflect.DeepEqual(waits, c.want) {
				t.Fatalf("waits of %s expected %v, got %v", c.hand, c.want, waits)
			}
			// 每个听牌加入后必须和牌，非听牌加入后必须不和
			inWaits := make(map[Tile]bool, len(waits))
			for _, w := range waits {
				inWaits[w] = true
			}
			for r := MinRank; r <= MaxRank; r++ {
				h14 := append(append(Hand{}, h...), r)
				if IsWinningHand(h14) != inWaits[r] {
					t.Fatalf("wait %d of %s inconsistent with IsWinningHand", r, c.hand)
				}
			}
		})
	}
}

func TestEnumerateWaits_Ascending(t *testing.T) {
	g := NewGenerator(WithSeed(42))
	for i := 0; i < 200; i++ {
		h, _ := g.Generate(HandOptions{})
		waits := EnumerateWaits(h)
		for k := 1; k < len(waits); k++ {
			if waits[k-1] >= waits[k] {
				t.Fatalf("waits of %s not strictly ascending: %v", h, waits)
			}
		}
	}
}

func TestEnumerateWaits_Pure(t *testing.T) {
	h := mustHand(t, "2345666778899")
	before := append(Hand{}, h...)
	first := EnumerateWaits(h)
	second := EnumerateWaits(h)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("EnumerateWaits not idempotent: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(h, before) {
		t.Fatalf("EnumerateWaits mutated input: %v -> %v", before, h)
	}
}

func TestEnumerateWaits_OutOfContract(t *testing.T) {
	for _, h := range []Hand{
		nil,
		{1, 2, 3},
		mustHand(t, "11123456789999"),
		{0, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9},
	} {
		if waits := EnumerateWaits(h); len(waits) != 0 {
			t.Fatalf("expected no waits for %v, got %v", h, waits)
		}
	}
}

func TestEnumerateWaits_FourCopiesNotAWait(t *testing.T) {
	// 1111 234 567 888 9：第五张 1 不存在
	h := mustHand(t, "1111234567889")
	for _, w := range EnumerateWaits(h) {
		if w == 1 {
			t.Fatalf("rank with four copies in hand cannot be a wait")
		}
	}
}

func TestIsNineGates(t *testing.T) {
	if IsNineGates(mustHand(t, "1112345678999")) != true {
		t.Fatalf("expected nine gates")
	}
	if IsNineGates(mustHand(t, "1112345678899")) {
		t.Fatalf("1112345678899 is not pure nine gates")
	}
	if IsNineGates(mustHand(t, "11123456789999")) {
		t.Fatalf("14 tiles is not a nine gates waiting hand")
	}
}

func TestParseHand(t *testing.T) {
	h, err := ParseHand(" 111 234, 567-8999s ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if h.String() != "1112345678999" {
		t.Fatalf("unexpected hand %s", h)
	}
	if _, err := ParseHand("11102"); err == nil {
		t.Fatalf("expected error for rank 0")
	}
	if _, err := ParseHand("11111"); err == nil {
		t.Fatalf("expected error for five copies")
	}
	if _, err := ParseHand("12x"); err == nil {
		t.Fatalf("expected error for letter")
	}
}

func TestHand_OversizedInputRejected(t *testing.T) {
	// 260 张同一种牌，计数不能回绕成 4
	if _, err := ParseHand(strings.Repeat("1", 260)); !errors.Is(err, ErrTooManyCopies) {
		t.Fatalf("ParseHand expected ErrTooManyCopies, got %v", err)
	}
	ranks := make([]int, 260)
	for i := range ranks {
		ranks[i] = 1
	}
	if _, err := HandFromInts(ranks); !errors.Is(err, ErrTooManyCopies) {
		t.Fatalf("HandFromInts expected ErrTooManyCopies, got %v", err)
	}

	hand := make(Hand, 260)
	for i := range hand {
		hand[i] = 1
	}
	counts, ok := CountsOf(hand)
	if !ok || counts[0] != CopiesPerRank+1 {
		t.Fatalf("count of rank 1 expected %d, got %d", CopiesPerRank+1, counts[0])
	}
	if got := Ukeire(hand, []Tile{1}); got != 0 {
		t.Fatalf("ukeire expected 0, got %d", got)
	}
	if len(EnumerateWaits(hand)) != 0 || IsWinningHand(hand) {
		t.Fatalf("oversized hand must not be tenpai or winning")
	}
}
