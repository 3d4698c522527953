package realtime

import (
	"chinitsu/common/database"
	"chinitsu/common/log"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"
	"chinitsu/core/domain/vo"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

const (
	// 花括号保证集群模式下两个 key 落在同一个 slot
	leaderboardKey     = "{quiz:leaderboard}"      // Sorted Set: userID -> -累计得分
	leaderboardNickKey = "{quiz:leaderboard}:nick" // Hash: userID -> nickname
)

// 分数取负存储，ZRANGE 从小到大即为得分从高到低，同分按 userID 字典序
// KEYS[1]: leaderboardKey
// KEYS[2]: leaderboardNickKey
// ARGV[1]: userID
// ARGV[2]: 得分增量
// ARGV[3]: nickname，为空时不覆盖
// 返回：累加后的负分（字符串）
var addScoreScript = `
local score = redis.call('ZINCRBY', KEYS[1], -tonumber(ARGV[2]), ARGV[1])
if ARGV[3] ~= '' then
    redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
end
return score
`

// RedisLeaderboardRepository Redis 实现的排行榜
type RedisLeaderboardRepository struct {
	redis *database.RedisManager
}

func NewRedisLeaderboardRepository(redis *database.RedisManager) *RedisLeaderboardRepository {
	return &RedisLeaderboardRepository{redis: redis}
}

func (r *RedisLeaderboardRepository) AddScore(ctx context.Context, userID, nickname string, delta int) (int, error) {
	result, err := r.redis.EvalScript(ctx, "leaderboard:add", addScoreScript,
		[]string{leaderboardKey, leaderboardNickKey}, userID, delta, nickname)
	if err != nil {
		log.Error("排行榜加分失败: userID=%s, err=%v", userID, err)
		return 0, repository.ErrStorage
	}
	negative, err := cast.ToFloat64E(result)
	if err != nil {
		return 0, fmt.Errorf("排行榜返回值解析失败: %w", err)
	}
	return int(-negative), nil
}

func (r *RedisLeaderboardRepository) Top(ctx context.Context, n int) ([]*entity.LeaderboardEntry, error) {
	if n <= 0 {
		return []*entity.LeaderboardEntry{}, nil
	}
	cli, err := r.redis.GetClient()
	if err != nil {
		return nil, err
	}

	members, err := cli.ZRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		log.Error("查询排行榜失败: %v", err)
		return nil, repository.ErrStorage
	}
	if len(members) == 0 {
		return []*entity.LeaderboardEntry{}, nil
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, cast.ToString(m.Member))
	}
	nicknames, err := cli.HMGet(ctx, leaderboardNickKey, userIDs...).Result()
	if err != nil {
		log.Warn("查询排行榜昵称失败: %v", err)
		nicknames = make([]interface{}, len(userIDs))
	}

	result := make([]*entity.LeaderboardEntry, 0, len(members))
	for i, m := range members {
		score := int(-m.Score)
		entry := &entity.LeaderboardEntry{
			Rank:   i + 1,
			UserID: userIDs[i],
			Score:  score,
			Title:  vo.GetRankingByScore(score).GetDisplayName(),
		}
		if i < len(nicknames) && nicknames[i] != nil {
			entry.Nickname = cast.ToString(nicknames[i])
		}
		result = append(result, entry)
	}
	return result, nil
}

func (r *RedisLeaderboardRepository) Rank(ctx context.Context, userID string) (int, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return 0, err
	}
	rank, err := cli.ZRank(ctx, leaderboardKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		log.Error("查询排名失败: userID=%s, err=%v", userID, err)
		return 0, repository.ErrStorage
	}
	return int(rank) + 1, nil
}
