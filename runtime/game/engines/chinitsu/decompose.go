package chinitsu

import "strings"

type ShapeKind string

const (
	ShapeStandard   ShapeKind = "standard"
	ShapeSevenPairs ShapeKind = "seven_pairs"
)

type SetKind string

const (
	SetTriplet SetKind = "triplet" // 刻子
	SetRun     SetKind = "run"     // 顺子
)

// Set 一个面子，Start 为刻子的点数或顺子的起点
type Set struct {
	Kind  SetKind `json:"kind"`
	Start Tile    `json:"start"`
}

func (s Set) Tiles() Hand {
	if s.Kind == SetTriplet {
		return Hand{s.Start, s.Start, s.Start}
	}
	return Hand{s.Start, s.Start + 1, s.Start + 2}
}

// Decomposition 和牌拆解结果，七对子时 Sets 为空、Pairs 有 7 个
type Decomposition struct {
	Shape ShapeKind `json:"shape"`
	Pair  Tile      `json:"pair,omitempty"`
	Sets  []Set     `json:"sets,omitempty"`
	Pairs []Tile    `json:"pairs,omitempty"`
}

// String 形如 "11 123 456 789 999"
func (d Decomposition) String() string {
	parts := make([]string, 0, 7)
	if d.Shape == ShapeSevenPairs {
		for _, p := range d.Pairs {
			parts = append(parts, Hand{p, p}.String())
		}
		return strings.Join(parts, " ")
	}
	parts = append(parts, Hand{d.Pair, d.Pair}.String())
	for _, s := range d.Sets {
		parts = append(parts, s.Tiles().String())
	}
	return strings.Join(parts, " ")
}

// Decompose 给出一种和牌拆法，搜索顺序与 IsWinningHand 相同，七对子优先
func Decompose(hand Hand) (Decomposition, bool) {
	if len(hand) != WinningSize {
		return Decomposition{}, false
	}
	counts, ok := CountsOf(hand)
	if !ok || !counts.withinLimit() {
		return Decomposition{}, false
	}

	if isSevenPairs(&counts) {
		d := Decomposition{Shape: ShapeSevenPairs, Pairs: make([]Tile, 0, 7)}
		for i := 0; i < RankCount; i++ {
			if counts[i] == 2 {
				d.Pairs = append(d.Pairs, Tile(i+1))
			}
		}
		return d, true
	}

	for i := 0; i < RankCount; i++ {
		if counts[i] < 2 {
			continue
		}
		work := counts
		work[i] -= 2
		sets := make([]Set, 0, setsNeeded)
		if collectSets(&work, &sets) {
			return Decomposition{Shape: ShapeStandard, Pair: Tile(i + 1), Sets: sets}, true
		}
	}
	return Decomposition{}, false
}

// collectSets 与 decomposeSets 相同的回溯，同时记录面子
func collectSets(work *CountVector, sets *[]Set) bool {
	if len(*sets) == setsNeeded {
		return true
	}
	i := lowestRank(work)
	if i == -1 {
		return true
	}

	if work[i] >= 3 {
		work[i] -= 3
		*sets = append(*sets, Set{Kind: SetTriplet, Start: Tile(i + 1)})
		if collectSets(work, sets) {
			work[i] += 3
			return true
		}
		*sets = (*sets)[:len(*sets)-1]
		work[i] += 3
	}

	if i <= RankCount-3 && work[i+1] > 0 && work[i+2] > 0 {
		work[i]--
		work[i+1]--
		work[i+2]--
		*sets = append(*sets, Set{Kind: SetRun, Start: Tile(i + 1)})
		ok := collectSets(work, sets)
		work[i]++
		work[i+1]++
		work[i+2]++
		if ok {
			return true
		}
		*sets = (*sets)[:len(*sets)-1]
	}
	return false
}
