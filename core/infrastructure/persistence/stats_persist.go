package persistence

import (
	"chinitsu/common/database"
	"chinitsu/common/log"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statsCollection = "player_stats"

// MongoStatsRepository 玩家统计，一个玩家一个文档，_id 为 userID
type MongoStatsRepository struct {
	mongo *database.MongoManager
}

func NewMongoStatsRepository(mongo *database.MongoManager) *MongoStatsRepository {
	return &MongoStatsRepository{mongo: mongo}
}

func (r *MongoStatsRepository) FindByUserID(ctx context.Context, userID string) (*entity.PlayerStats, error) {
	collection := r.mongo.Db.Collection(statsCollection)

	var stats entity.PlayerStats
	err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrStatsNotFound
	}
	if err != nil {
		log.Error("查询玩家统计失败: userID=%s, err=%v", userID, err)
		return nil, repository.ErrStorage
	}
	return &stats, nil
}

func (r *MongoStatsRepository) Save(ctx context.Context, stats *entity.PlayerStats) error {
	collection := r.mongo.Db.Collection(statsCollection)

	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": stats.UserID}, stats, opts); err != nil {
		log.Error("保存玩家统计失败: userID=%s, err=%v", stats.UserID, err)
		return repository.ErrStorage
	}
	return nil
}
