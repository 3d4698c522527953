package utils

import (
	"sync"
	"time"

	"github.com/awesome-cap/hashmap"
)

type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒允许的请求数
// burst: 允许的突发秒数（桶的容量 = burst * rate）
func NewRateLimiter(rate int, burst int) *RateLimiter {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rate:       float64(rate),
		capacity:   float64(burst * rate),
		tokens:     float64(burst * rate), // 初始令牌数 = 桶的容量
		lastRefill: time.Now(),
	}
}

// Allow 判断当前请求是否允许通过
func (rl *RateLimiter) Allow() bool {
	return rl.allowAt(time.Now())
}

func (rl *RateLimiter) allowAt(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// 按经过的时间补充令牌，不超过桶的容量
	elapsed := now.Sub(rl.lastRefill).Seconds()
	if elapsed > 0 {
		rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
		rl.lastRefill = now
	}

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// lastSeen 读取上次访问时间，用于淘汰
func (rl *RateLimiter) lastSeen() time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastRefill
}

// KeyedRateLimiter 按 key（客户端 IP、用户 ID）各自一个令牌桶
type KeyedRateLimiter struct {
	rate     int
	burst    int
	limiters *hashmap.HashMap
	mu       sync.Mutex // 保证同一个 key 只创建一个桶
}

func NewKeyedRateLimiter(rate, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		rate:     rate,
		burst:    burst,
		limiters: hashmap.New(),
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.get(key).Allow()
}

type keyedBucket struct {
	key string
	rl  *RateLimiter
}

func (k *KeyedRateLimiter) get(key string) *RateLimiter {
	if v, ok := k.limiters.Get(key); ok {
		return v.(*keyedBucket).rl
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if v, ok := k.limiters.Get(key); ok {
		return v.(*keyedBucket).rl
	}
	b := &keyedBucket{key: key, rl: NewRateLimiter(k.rate, k.burst)}
	k.limiters.Set(key, b)
	return b.rl
}

// Evict 清理超过 idle 未访问的桶，返回清理数量
func (k *KeyedRateLimiter) Evict(idle time.Duration) int {
	deadline := time.Now().Add(-idle)
	stale := make([]string, 0)
	k.limiters.Foreach(func(e *hashmap.Entry) {
		b := e.Value().(*keyedBucket)
		if b.rl.lastSeen().Before(deadline) {
			stale = append(stale, b.key)
		}
	})
	for _, key := range stale {
		k.limiters.Del(key)
	}
	return len(stale)
}
