package memory

import (
	"context"

	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"

	"github.com/awesome-cap/hashmap"
)

// StatsRepository 单机内存实现，进程退出后数据丢失
type StatsRepository struct {
	stats *hashmap.HashMap
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{stats: hashmap.New()}
}

func (r *StatsRepository) FindByUserID(_ context.Context, userID string) (*entity.PlayerStats, error) {
	v, ok := r.stats.Get(userID)
	if !ok {
		return nil, repository.ErrStatsNotFound
	}
	return v.(*entity.PlayerStats).Clone(), nil
}

func (r *StatsRepository) Save(_ context.Context, stats *entity.PlayerStats) error {
	r.stats.Set(stats.UserID, stats.Clone())
	return nil
}
