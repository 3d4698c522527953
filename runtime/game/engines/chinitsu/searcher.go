package chinitsu

import (
	"chinitsu/common/cache"
)

// Searcher 带缓存的听牌/和牌判定
// 缓存 key 为计数向量，同一组牌不论顺序只算一次；cache 为 nil 时直接计算
type Searcher struct {
	cache *cache.GeneralCache
}

func NewSearcher(c *cache.GeneralCache) *Searcher {
	return &Searcher{cache: c}
}

const (
	waitsPrefix = "w:"
	agariPrefix = "a:"
)

// Waits 同 EnumerateWaits，返回值是副本，调用方可以随意修改
func (s *Searcher) Waits(hand Hand) []Tile {
	if len(hand) != TenpaiSize {
		return []Tile{}
	}
	counts, ok := CountsOf(hand)
	if !ok || !counts.withinLimit() {
		return []Tile{}
	}

	key := waitsPrefix + counts.Key()
	if s.cache != nil {
		if v, hit := s.cache.Get(key); hit {
			if cached, ok := v.([]Tile); ok {
				return append(make([]Tile, 0, len(cached)), cached...)
			}
		}
	}

	waits := appendWaits(make([]Tile, 0, RankCount), counts)
	if s.cache != nil {
		s.cache.Set(key, append([]Tile(nil), waits...))
	}
	return waits
}

// IsWinning 同 IsWinningHand
func (s *Searcher) IsWinning(hand Hand) bool {
	if len(hand) != WinningSize {
		return false
	}
	counts, ok := CountsOf(hand)
	if !ok {
		return false
	}

	key := agariPrefix + counts.Key()
	if s.cache != nil {
		if v, hit := s.cache.Get(key); hit {
			if win, ok := v.(bool); ok {
				return win
			}
		}
	}

	win := isWinningCounts(counts)
	if s.cache != nil {
		s.cache.Set(key, win)
	}
	return win
}

// WaitsAndUkeire 听牌 + 有效进张
func (s *Searcher) WaitsAndUkeire(hand Hand) ([]Tile, int) {
	waits := s.Waits(hand)
	return waits, Ukeire(hand, waits)
}

// Stats 缓存命中统计，无缓存时为零值
func (s *Searcher) Stats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}
