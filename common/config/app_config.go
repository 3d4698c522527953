package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	mu        sync.RWMutex
	listeners []func(*Config)
)

// InitConfig 读取配置文件并开启热更新，出错直接 panic，只在进程启动时调用
func InitConfig(configFile string) {
	cfg, err := Load(configFile)
	if err != nil {
		panic(err)
	}
	mu.Lock()
	Conf = cfg
	mu.Unlock()
}

// Load 读取配置文件，环境变量覆盖同名配置（quiz.attempts -> QUIZ_ATTEMPTS）
// configFile 为空时只使用默认值和环境变量
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错, err:%w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错, err:%w", err)
	}

	if configFile != "" {
		v.OnConfigChange(func(in fsnotify.Event) {
			next := new(Config)
			if err := v.Unmarshal(next); err != nil {
				// 热更新失败保留旧配置
				return
			}
			mu.Lock()
			Conf = next
			fns := append(([]func(*Config))(nil), listeners...)
			mu.Unlock()
			for _, fn := range fns {
				fn(next)
			}
		})
		v.WatchConfig()
	}
	return cfg, nil
}

// OnChange 注册配置变更回调
func OnChange(fn func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	listeners = append(listeners, fn)
}

// Current 当前配置，未初始化时返回默认配置
func Current() *Config {
	mu.RLock()
	cfg := Conf
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}
	cfg, _ = Load("")
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "chinitsu")
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 0)
	v.SetDefault("ginMode", "release")
	v.SetDefault("jwt.secret", "chinitsu-dev-secret")
	v.SetDefault("jwt.expire", 72)
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.recordBatchSize", 100)
	v.SetDefault("storage.recordFlushMs", 500)
	v.SetDefault("database.mongo.url", "mongodb://localhost:27017")
	v.SetDefault("database.mongo.db", "chinitsu")
	v.SetDefault("database.mongo.minPoolSize", 2)
	v.SetDefault("database.mongo.maxPoolSize", 20)
	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("database.redis.poolSize", 10)
	v.SetDefault("quiz.attempts", 500)
	v.SetDefault("quiz.timeLimit", map[string]any{"easy": 60, "normal": 90, "hard": 120, "custom": 120})
	v.SetDefault("quiz.questionTTL", 600)
	v.SetDefault("quiz.cacheMaxCost", 1<<16)
	v.SetDefault("quiz.leaderboardSize", 100)
	v.SetDefault("rateLimit.rate", 20)
	v.SetDefault("rateLimit.burst", 2)
}
