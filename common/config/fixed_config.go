package config

var Conf *Config

type Config struct {
	AppName      string        `mapstructure:"appName"`
	Log          LogConf       `mapstructure:"log"`
	HttpPort     int           `mapstructure:"httpPort"`
	MetricPort   int           `mapstructure:"metricPort"`
	GinMode      string        `mapstructure:"ginMode"`
	JwtConf      JwtConf       `mapstructure:"jwt"`
	StorageConf  StorageConf   `mapstructure:"storage"`
	DatabaseConf DatabaseConf  `mapstructure:"database"`
	QuizConf     QuizConf      `mapstructure:"quiz"`
	RateLimit    RateLimitConf `mapstructure:"rateLimit"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // 单位：小时
}

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// StorageConf memory 为进程内存储；mongo 时统计和答题记录进 mongodb，排行榜进 redis
type StorageConf struct {
	Driver          string `mapstructure:"driver"`
	RecordBatchSize int    `mapstructure:"recordBatchSize"`
	RecordFlushMs   int    `mapstructure:"recordFlushMs"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

// QuizConf 出题参数，timeLimit 的 key 为难度名，单位秒，支持热更新
type QuizConf struct {
	Attempts        int            `mapstructure:"attempts"`
	Seed            uint64         `mapstructure:"seed"` // 0 表示使用全局随机源
	TimeLimit       map[string]int `mapstructure:"timeLimit"`
	QuestionTTL     int            `mapstructure:"questionTTL"` // 单位：秒
	CacheMaxCost    int64          `mapstructure:"cacheMaxCost"`
	LeaderboardSize int            `mapstructure:"leaderboardSize"`
}

// RateLimitConf 令牌桶限流，按客户端 IP
type RateLimitConf struct {
	Rate  int `mapstructure:"rate"`
	Burst int `mapstructure:"burst"`
}
