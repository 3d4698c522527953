package cache

import (
	"chinitsu/common/cache"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrQuestionDropped 题目没能写入缓存
var ErrQuestionDropped = errors.New("题目写入缓存被丢弃")

// QuestionCache 处理 questionID -> Question 的映射
// 缓存保留时间 = 答题时限 + grace，超时提交仍能取到题目并判为超时
type QuestionCache struct {
	cache       *cache.GeneralCache
	questionKey string
	grace       time.Duration
	mu          sync.Mutex // Take 的读和删必须原子
}

func NewQuestionCache(maxCost int64, grace time.Duration) (*QuestionCache, error) {
	generalCache, err := cache.NewGeneralCache(maxCost, grace)
	if err != nil {
		return nil, fmt.Errorf("创建题目缓存失败: %w", err)
	}

	return &QuestionCache{cache: generalCache, questionKey: "quiz:question", grace: grace}, nil
}

func (c *QuestionCache) key(id string) string {
	return fmt.Sprintf("%s:%s", c.questionKey, id)
}

func (c *QuestionCache) Put(q *entity.Question) error {
	if q == nil || q.ID == "" {
		return fmt.Errorf("题目为空")
	}
	// 截止时间由调用方的时钟决定，这里只用时限长度
	ttl := q.TimeLimit() + c.grace
	if ttl <= 0 {
		ttl = c.grace
	}
	key := c.key(q.ID)
	if !c.cache.SetWithTTL(key, q, ttl) {
		return fmt.Errorf("%w: %s", ErrQuestionDropped, q.ID)
	}
	// ristretto 异步写入，等落地后再把题目发给玩家
	c.cache.Wait()
	// 缓存满时 TinyLFU 准入可能拒绝新 key，Set 的返回值看不出来
	if _, ok := c.cache.Get(key); !ok {
		return fmt.Errorf("%w: %s", ErrQuestionDropped, q.ID)
	}
	return nil
}

func (c *QuestionCache) Take(id, userID string) (*entity.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.cache.Get(c.key(id))
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	q, ok := value.(*entity.Question)
	if !ok {
		c.cache.Delete(c.key(id))
		return nil, repository.ErrQuestionNotFound
	}
	if q.UserID != userID {
		return nil, repository.ErrQuestionForbidden
	}
	c.cache.Delete(c.key(id))
	return q, nil
}

func (c *QuestionCache) Stats() cache.Stats {
	return c.cache.Stats()
}

func (c *QuestionCache) Close() {
	c.cache.Close()
}
