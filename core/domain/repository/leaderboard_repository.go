package repository

import (
	"context"

	"chinitsu/core/domain/entity"
)

// LeaderboardRepository 累计得分排行榜
type LeaderboardRepository interface {
	// AddScore 累加得分并记录昵称，返回累加后的总分
	AddScore(ctx context.Context, userID, nickname string, delta int) (int, error)

	// Top 前 n 名，按得分从高到低，同分按 userID 字典序
	Top(ctx context.Context, n int) ([]*entity.LeaderboardEntry, error)

	// Rank 玩家名次（从 1 开始），未上榜返回 0
	Rank(ctx context.Context, userID string) (int, error)
}
