package container

import (
	"chinitsu/common/cache"
	"chinitsu/common/config"
	"chinitsu/common/log"
	"chinitsu/core/domain/repository"
	questioncache "chinitsu/core/infrastructure/cache"
	"chinitsu/core/infrastructure/memory"
	"chinitsu/core/infrastructure/persistence"
	"chinitsu/core/infrastructure/realtime"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service/impl"
	"context"
	"fmt"
	"sync"
	"time"
)

// QuizContainer 练习服务容器
// storage.driver 为 memory 时不连接数据库，BaseContainer 为 nil
type QuizContainer struct {
	*BaseContainer
	waitCache   *cache.GeneralCache
	questions   *questioncache.QuestionCache
	recordRepo  repository.QuizRecordRepository
	Searcher    *chinitsu.Searcher
	QuizService *impl.QuizServiceImpl
	closed      bool
	mu          sync.Mutex
}

// NewQuizContainer 按配置组装仓储和服务
func NewQuizContainer(ctx context.Context, conf *config.Config) (*QuizContainer, error) {
	quizConf := conf.QuizConf

	waitCache, err := cache.NewGeneralCache(quizConf.CacheMaxCost, 0)
	if err != nil {
		return nil, fmt.Errorf("创建听牌缓存失败: %w", err)
	}
	questions, err := questioncache.NewQuestionCache(quizConf.CacheMaxCost, time.Duration(quizConf.QuestionTTL)*time.Second)
	if err != nil {
		waitCache.Close()
		return nil, err
	}

	c := &QuizContainer{
		waitCache: waitCache,
		questions: questions,
		Searcher:  chinitsu.NewSearcher(waitCache),
	}

	var (
		statsRepo repository.StatsRepository
		boardRepo repository.LeaderboardRepository
	)
	switch conf.StorageConf.Driver {
	case config.StorageMongo:
		base, err := NewBase(ctx, conf.DatabaseConf)
		if err != nil {
			c.closeCaches()
			return nil, err
		}
		c.BaseContainer = base
		statsRepo = persistence.NewMongoStatsRepository(base.mongo)
		c.recordRepo = persistence.NewQuizRecordRepository(base.mongo,
			conf.StorageConf.RecordBatchSize, time.Duration(conf.StorageConf.RecordFlushMs)*time.Millisecond)
		boardRepo = realtime.NewRedisLeaderboardRepository(base.redis)
	case config.StorageMemory, "":
		statsRepo = memory.NewStatsRepository()
		c.recordRepo = memory.NewQuizRecordRepository()
		boardRepo = memory.NewLeaderboardRepository()
	default:
		c.closeCaches()
		return nil, fmt.Errorf("未知的存储驱动: %s", conf.StorageConf.Driver)
	}

	genOpts := []chinitsu.GeneratorOption{
		chinitsu.WithAttempts(quizConf.Attempts),
		chinitsu.WithWaitsFunc(c.Searcher.Waits),
	}
	if quizConf.Seed != 0 {
		genOpts = append(genOpts, chinitsu.WithSeed(quizConf.Seed))
	}

	c.QuizService = impl.NewQuizService(
		c.Searcher,
		chinitsu.NewGenerator(genOpts...),
		questions,
		statsRepo,
		c.recordRepo,
		boardRepo,
		impl.WithTimeLimits(quizConf.TimeLimit),
		impl.WithLeaderboardSize(quizConf.LeaderboardSize),
	)

	// 答题时限支持热更新
	config.OnChange(func(next *config.Config) {
		c.QuizService.SetTimeLimits(next.QuizConf.TimeLimit)
	})

	log.Info("QuizContainer 创建完成, storage=%s", conf.StorageConf.Driver)
	return c, nil
}

func (c *QuizContainer) closeCaches() {
	c.questions.Close()
	c.waitCache.Close()
}

// Close 关闭容器资源（幂等）
// 关闭顺序：1. 答题记录（写完缓冲） 2. 缓存 3. BaseContainer
func (c *QuizContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	var errs []error
	if c.recordRepo != nil {
		if err := c.recordRepo.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closeCaches()
	if c.BaseContainer != nil {
		if err := c.BaseContainer.Close(); err != nil {
			log.Error("BaseContainer 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}

	c.closed = true

	if len(errs) > 0 {
		return fmt.Errorf("关闭资源时发生 %d 个错误", len(errs))
	}

	log.Info("QuizContainer 已关闭")
	return nil
}
