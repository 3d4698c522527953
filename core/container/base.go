package container

import (
	"chinitsu/common/config"
	"chinitsu/common/database"
	"chinitsu/common/log"
	"context"
	"fmt"
)

// BaseContainer 基础容器，管理共享的数据库连接
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase 创建基础容器，任一数据库连接失败时关闭已建立的连接
func NewBase(ctx context.Context, conf config.DatabaseConf) (*BaseContainer, error) {
	mongo, err := database.NewMongo(ctx, conf.MongoConf)
	if err != nil {
		return nil, fmt.Errorf("mongodb 初始化失败: %w", err)
	}
	redis, err := database.NewRedis(ctx, conf.RedisConf)
	if err != nil {
		_ = mongo.Close()
		return nil, fmt.Errorf("redis 初始化失败: %w", err)
	}

	log.Info("mongodb、redis 数据库服务启动成功")

	return &BaseContainer{
		mongo: mongo,
		redis: redis,
	}, nil
}

// GetMongo 获取 Mongo 管理器
func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

// GetRedis 获取 Redis 管理器
func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	e1 := c.mongo.Close()
	e2 := c.redis.Close()
	if e1 != nil {
		log.Error("mongo 关闭失败: %v", e1)
	}
	if e2 != nil {
		log.Error("redis 关闭失败: %v", e2)
	}
	if e1 != nil {
		return e1
	}
	return e2
}
