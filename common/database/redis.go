package database

import (
	"chinitsu/common/config"
	"chinitsu/common/log"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	scriptSHAs map[string]string
	mu         sync.RWMutex
}

// NewRedis 单机或集群，配置了 clusterAddrs 时走集群
func NewRedis(ctx context.Context, redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	r := &RedisManager{scriptSHAs: make(map[string]string)}

	if len(redisConf.ClusterAddrs) > 0 {
		r.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := r.ClusterCli.Ping(ctx).Err(); err != nil {
			_ = r.ClusterCli.Close()
			return nil, fmt.Errorf("redisCluster 连接错误: %w", err)
		}
		return r, nil
	}

	// 构建Redis地址
	addr := redisConf.Addr
	if addr == "" {
		if redisConf.Host == "" || redisConf.Port <= 0 {
			return nil, errors.New("redis 配置出错: 缺少 addr 或 host/port")
		}
		addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
	}
	r.Cli = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     redisConf.Password, // 没有密码时为空字符串
		PoolSize:     redisConf.PoolSize,
		MinIdleConns: redisConf.MinIdleConns,
	})
	if err := r.Cli.Ping(ctx).Err(); err != nil {
		_ = r.Cli.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	log.Info("redis 连接成功: %s", addr)
	return r, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

// EvalScript 执行 lua 脚本，单机模式缓存 SHA，NOSCRIPT 时重新加载
func (r *RedisManager) EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	if r.Cli == nil || scriptName == "" {
		return cli.Eval(ctx, script, keys, args...).Result()
	}

	r.mu.RLock()
	sha, exists := r.scriptSHAs[scriptName]
	r.mu.RUnlock()
	if exists {
		result, err := r.Cli.EvalSha(ctx, sha, keys, args...).Result()
		if err == nil {
			return result, nil
		}
		if !strings.HasPrefix(err.Error(), "NOSCRIPT") {
			return nil, err
		}
	}

	sha, err = r.Cli.ScriptLoad(ctx, script).Result()
	if err != nil {
		return nil, fmt.Errorf("加载脚本失败: %w", err)
	}
	r.mu.Lock()
	r.scriptSHAs[scriptName] = sha
	r.mu.Unlock()
	return r.Cli.EvalSha(ctx, sha, keys, args...).Result()
}

func (r *RedisManager) Close() error {
	if r == nil {
		return nil
	}
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
