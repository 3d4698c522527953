package repository

import (
	"context"

	"chinitsu/core/domain/entity"
)

// StatsRepository 玩家统计仓储接口
type StatsRepository interface {
	// FindByUserID 不存在时返回 ErrStatsNotFound
	FindByUserID(ctx context.Context, userID string) (*entity.PlayerStats, error)

	// Save 按 userID 整体覆盖写入（upsert）
	Save(ctx context.Context, stats *entity.PlayerStats) error
}
