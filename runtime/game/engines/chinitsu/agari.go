package chinitsu

// IsWinningHand 14 张清一色手牌是否和牌（七对子或一雀头四面子）
func IsWinningHand(hand Hand) bool {
	if len(hand) != WinningSize {
		return false
	}
	counts, ok := CountsOf(hand)
	if !ok {
		return false
	}
	return isWinningCounts(counts)
}

// isWinningCounts 调用方保证总张数为 14
func isWinningCounts(counts CountVector) bool {
	if !counts.withinLimit() {
		return false
	}
	if isSevenPairs(&counts) {
		return true
	}
	return isStandardShape(counts)
}

// isSevenPairs 七对子：每种牌 0 或 2 张，恰好 7 对
// 四张同种不算两对
func isSevenPairs(c *CountVector) bool {
	pairs := 0
	for i := 0; i < RankCount; i++ {
		switch c[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// isStandardShape 枚举雀头，剩下 12 张拆成 4 个面子
func isStandardShape(c CountVector) bool {
	for i := 0; i < RankCount; i++ {
		if c[i] < 2 {
			continue
		}
		work := c
		work[i] -= 2
		if decomposeSets(&work, 0) {
			return true
		}
	}
	return false
}

// decomposeSets 从最小的非零点数开始，先试刻子再试顺子，失败回溯
// work 原地修改，返回前恢复
func decomposeSets(work *CountVector, setsFound int) bool {
	if setsFound == setsNeeded {
		return true
	}

	i := lowestRank(work)
	if i == -1 {
		return true
	}

	// 刻子
	if work[i] >= 3 {
		work[i] -= 3
		if decomposeSets(work, setsFound+1) {
			work[i] += 3
			return true
		}
		work[i] += 3
	}

	// 顺子，起点最大到 7
	if i <= RankCount-3 && work[i+1] > 0 && work[i+2] > 0 {
		work[i]--
		work[i+1]--
		work[i+2]--
		ok := decomposeSets(work, setsFound+1)
		work[i]++
		work[i+1]++
		work[i+2]++
		if ok {
			return true
		}
	}

	return false
}

// lowestRank 第一个非零下标，没有返回 -1
func lowestRank(c *CountVector) int {
	for k := 0; k < RankCount; k++ {
		if c[k] > 0 {
			return k
		}
	}
	return -1
}
