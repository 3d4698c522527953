package memory

import (
	"context"
	"sort"
	"sync"

	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/vo"

	"github.com/awesome-cap/hashmap"
)

type boardItem struct {
	userID   string
	nickname string
	score    int
}

// LeaderboardRepository 内存排行榜，Top 和 Rank 每次全量排序
type LeaderboardRepository struct {
	items *hashmap.HashMap
	mu    sync.Mutex
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{items: hashmap.New()}
}

func (r *LeaderboardRepository) AddScore(_ context.Context, userID, nickname string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := &boardItem{userID: userID}
	if v, ok := r.items.Get(userID); ok {
		item = v.(*boardItem)
	}
	if nickname != "" {
		item.nickname = nickname
	}
	item.score += delta
	r.items.Set(userID, item)
	return item.score, nil
}

// sorted 得分从高到低，同分按 userID
func (r *LeaderboardRepository) sorted() []boardItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]boardItem, 0)
	r.items.Foreach(func(e *hashmap.Entry) {
		all = append(all, *e.Value().(*boardItem))
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].userID < all[j].userID
	})
	return all
}

func (r *LeaderboardRepository) Top(_ context.Context, n int) ([]*entity.LeaderboardEntry, error) {
	all := r.sorted()
	if n > len(all) {
		n = len(all)
	}
	result := make([]*entity.LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, &entity.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   all[i].userID,
			Nickname: all[i].nickname,
			Score:    all[i].score,
			Title:    vo.GetRankingByScore(all[i].score).GetDisplayName(),
		})
	}
	return result, nil
}

func (r *LeaderboardRepository) Rank(_ context.Context, userID string) (int, error) {
	for i, item := range r.sorted() {
		if item.userID == userID {
			return i + 1, nil
		}
	}
	return 0, nil
}
