package chinitsu

// EnumerateWaits 枚举听牌：依次尝试 1-9，加入后能和牌的点数升序返回
// 非 13 张或非法手牌返回空集合
func EnumerateWaits(hand Hand) []Tile {
	waits := make([]Tile, 0, RankCount)
	if len(hand) != TenpaiSize {
		return waits
	}
	counts, ok := CountsOf(hand)
	if !ok || !counts.withinLimit() {
		return waits
	}
	return appendWaits(waits, counts)
}

// appendWaits counts 为 13 张的计数向量
func appendWaits(waits []Tile, counts CountVector) []Tile {
	for t := 0; t < RankCount; t++ {
		// 第五张不存在
		if counts[t] >= CopiesPerRank {
			continue
		}
		work := counts
		work[t]++
		if isWinningCounts(work) {
			waits = append(waits, Tile(t+1))
		}
	}
	return waits
}

// IsTenpai 是否听牌
func IsTenpai(hand Hand) bool {
	return len(EnumerateWaits(hand)) > 0
}

// Ukeire 有效进张数：每种听牌剩余的张数之和（4 减去手里已有的）
func Ukeire(hand Hand, waits []Tile) int {
	counts, ok := CountsOf(hand)
	if !ok {
		return 0
	}
	ukeire := 0
	for _, w := range waits {
		if !w.Valid() {
			continue
		}
		add := CopiesPerRank - int(counts[w-1])
		if add > 0 {
			ukeire += add
		}
	}
	return ukeire
}

var nineGates = CountVector{3, 1, 1, 1, 1, 1, 1, 1, 3}

// IsNineGates 纯正九莲宝灯形：1112345678999，九面听
func IsNineGates(hand Hand) bool {
	if len(hand) != TenpaiSize {
		return false
	}
	counts, ok := CountsOf(hand)
	return ok && counts == nineGates
}
