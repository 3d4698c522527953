package impl

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"chinitsu/common/log"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"
	"chinitsu/core/domain/vo"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	defaultBoardSize    = 100
	statsLockStripes    = 64
)

type QuizServiceImpl struct {
	searcher   *chinitsu.Searcher
	generator  *chinitsu.Generator
	questions  repository.QuestionRepository
	statsRepo  repository.StatsRepository
	recordRepo repository.QuizRecordRepository
	boardRepo  repository.LeaderboardRepository
	boardSize  int
	timeLimits map[vo.Difficulty]time.Duration
	limitsMu   sync.RWMutex
	statsLocks [statsLockStripes]sync.Mutex // 同一玩家的统计读改写串行
	now        func() time.Time
}

var _ service.QuizService = (*QuizServiceImpl)(nil)

type Option func(*QuizServiceImpl)

// WithClock 替换时间源，测试超时用
func WithClock(now func() time.Time) Option {
	return func(s *QuizServiceImpl) {
		s.now = now
	}
}

// WithLeaderboardSize 排行榜单次最多返回的条数
func WithLeaderboardSize(n int) Option {
	return func(s *QuizServiceImpl) {
		if n > 0 {
			s.boardSize = n
		}
	}
}

// WithTimeLimits 各难度答题时限（秒），未配置的难度使用默认值
func WithTimeLimits(limits map[string]int) Option {
	return func(s *QuizServiceImpl) {
		s.timeLimits = buildTimeLimits(limits)
	}
}

func NewQuizService(
	searcher *chinitsu.Searcher,
	generator *chinitsu.Generator,
	questions repository.QuestionRepository,
	statsRepo repository.StatsRepository,
	recordRepo repository.QuizRecordRepository,
	boardRepo repository.LeaderboardRepository,
	opts ...Option,
) *QuizServiceImpl {
	s := &QuizServiceImpl{
		searcher:   searcher,
		generator:  generator,
		questions:  questions,
		statsRepo:  statsRepo,
		recordRepo: recordRepo,
		boardRepo:  boardRepo,
		boardSize:  defaultBoardSize,
		timeLimits: buildTimeLimits(nil),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func buildTimeLimits(limits map[string]int) map[vo.Difficulty]time.Duration {
	out := make(map[vo.Difficulty]time.Duration, 4)
	for _, d := range []vo.Difficulty{vo.DifficultyEasy, vo.DifficultyNormal, vo.DifficultyHard, vo.DifficultyCustom} {
		out[d] = d.DefaultTimeLimit()
		if sec, ok := limits[string(d)]; ok && sec > 0 {
			out[d] = time.Duration(sec) * time.Second
		}
	}
	return out
}

// SetTimeLimits 配置热更新时调用
func (s *QuizServiceImpl) SetTimeLimits(limits map[string]int) {
	next := buildTimeLimits(limits)
	s.limitsMu.Lock()
	s.timeLimits = next
	s.limitsMu.Unlock()
	log.Info("答题时限已更新: easy=%v, normal=%v, hard=%v, custom=%v",
		next[vo.DifficultyEasy], next[vo.DifficultyNormal], next[vo.DifficultyHard], next[vo.DifficultyCustom])
}

func (s *QuizServiceImpl) timeLimit(d vo.Difficulty) time.Duration {
	s.limitsMu.RLock()
	defer s.limitsMu.RUnlock()
	return s.timeLimits[d]
}

func (s *QuizServiceImpl) statsLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.statsLocks[h.Sum32()%statsLockStripes]
}

func (s *QuizServiceImpl) NewQuestion(_ context.Context, req *service.NewQuestionReq) (*entity.Question, error) {
	difficulty := vo.ParseDifficulty(string(req.Difficulty))
	opts := difficulty.HandOptions()
	if req.Options != nil {
		difficulty = vo.DifficultyCustom
		opts = *req.Options
	}

	hand, ok := s.generator.Generate(opts)
	if !ok {
		log.Warn("出题约束无法满足，使用保底手牌: difficulty=%s, options=%s", difficulty, describeOptions(opts))
	}
	waits := s.searcher.Waits(hand)

	q := entity.NewQuestion(req.UserID, hand, waits, difficulty, opts, s.now(), s.timeLimit(difficulty))
	q.Fallback = !ok
	if err := s.questions.Put(q); err != nil {
		log.Error("保存题目失败: %v", err)
		return nil, fmt.Errorf("保存题目失败: %w", err)
	}

	log.Debug("出题: userID=%s, questionID=%s, hand=%s, waits=%d", req.UserID, q.ID, hand, len(waits))
	return q, nil
}

func (s *QuizServiceImpl) SubmitAnswer(ctx context.Context, req *service.SubmitAnswerReq) (*entity.AnswerResult, error) {
	// 答案格式错误时不消耗题目
	answer, ok := entity.NormalizeAnswer(req.Waits)
	if !ok {
		return nil, service.ErrInvalidAnswer
	}

	q, err := s.questions.Take(req.QuestionID, req.UserID)
	switch {
	case errors.Is(err, repository.ErrQuestionNotFound):
		return nil, service.ErrQuestionNotFound
	case errors.Is(err, repository.ErrQuestionForbidden):
		return nil, service.ErrQuestionForbidden
	case err != nil:
		return nil, err
	}

	now := s.now()
	elapsed := now.Sub(q.IssuedAt)
	timedOut := q.Expired(now)
	missed, extra := entity.CompareWaits(answer, q.Waits)
	correct := len(missed) == 0 && len(extra) == 0
	score := 0
	if !q.Fallback {
		score = vo.Score(q.Difficulty, len(q.Waits), correct, elapsed, q.TimeLimit())
	}

	outcome := entity.AnswerOutcome{
		Difficulty: q.Difficulty,
		WaitCount:  len(q.Waits),
		Correct:    correct,
		TimedOut:   timedOut,
		NineGates:  chinitsu.IsNineGates(q.Hand),
		Fallback:   q.Fallback,
		Score:      score,
		Elapsed:    elapsed,
	}
	stats, unlocked, err := s.applyOutcome(ctx, req.UserID, req.Nickname, outcome)
	if err != nil {
		return nil, err
	}

	if score > 0 {
		if _, err := s.boardRepo.AddScore(ctx, req.UserID, stats.Nickname, score); err != nil {
			log.Warn("排行榜更新失败: userID=%s, err=%v", req.UserID, err)
		}
	}

	record := entity.NewQuizRecord(q.ID, req.UserID)
	record.Hand = q.Hand.String()
	record.Difficulty = string(q.Difficulty)
	record.Waits = chinitsu.Hand(q.Waits).Ints()
	record.Answer = chinitsu.Hand(answer).Ints()
	record.Correct = correct
	record.TimedOut = timedOut
	record.Score = score
	record.ElapsedMs = elapsed.Milliseconds()
	record.AnsweredAt = now
	s.recordRepo.SaveRecordAsync(record)

	trophies := make([]entity.Trophy, 0, len(unlocked))
	for _, id := range unlocked {
		if t, ok := id.Trophy(); ok {
			trophies = append(trophies, t)
		}
	}

	log.Debug("答题: userID=%s, questionID=%s, correct=%v, timedOut=%v, score=%d", req.UserID, q.ID, correct, timedOut, score)
	return &entity.AnswerResult{
		QuestionID:   q.ID,
		Hand:         q.Hand,
		Answer:       answer,
		Waits:        q.Waits,
		Missed:       missed,
		Extra:        extra,
		Correct:      correct,
		TimedOut:     timedOut,
		Fallback:     q.Fallback,
		Ukeire:       chinitsu.Ukeire(q.Hand, q.Waits),
		Explanations: entity.ExplainWaits(q.Hand, q.Waits),
		ElapsedMs:    elapsed.Milliseconds(),
		Score:        score,
		TotalScore:   stats.TotalScore,
		Streak:       stats.Streak,
		Title:        stats.GetRanking().GetDisplayName(),
		Unlocked:     trophies,
	}, nil
}

// applyOutcome 读改写玩家统计，首次作答时创建
func (s *QuizServiceImpl) applyOutcome(ctx context.Context, userID, nickname string, o entity.AnswerOutcome) (*entity.PlayerStats, []entity.TrophyID, error) {
	lock := s.statsLock(userID)
	lock.Lock()
	defer lock.Unlock()

	stats, err := s.statsRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		stats = entity.NewPlayerStats(userID, nickname)
	} else if err != nil {
		return nil, nil, fmt.Errorf("查询玩家统计失败: %w", err)
	}
	if nickname != "" {
		stats.Nickname = nickname
	}

	unlocked := stats.Apply(o)
	if err := s.statsRepo.Save(ctx, stats); err != nil {
		return nil, nil, fmt.Errorf("保存玩家统计失败: %w", err)
	}
	return stats, unlocked, nil
}

func (s *QuizServiceImpl) Stats(ctx context.Context, userID string) (*service.StatsResp, error) {
	stats, err := s.statsRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		stats = entity.NewPlayerStats(userID, "")
	} else if err != nil {
		return nil, fmt.Errorf("查询玩家统计失败: %w", err)
	}

	ranking := stats.GetRanking()
	resp := &service.StatsResp{
		Stats:    stats,
		Accuracy: stats.Accuracy(),
		Title:    ranking.GetDisplayName(),
		Trophies: make([]entity.Trophy, 0, len(stats.Trophies)),
	}
	if next, need := ranking.Next(); need > 0 {
		resp.NextTitle = next.GetDisplayName()
		resp.PointsToNext = need - stats.TotalScore
	}
	for _, id := range stats.Trophies {
		if t, ok := id.Trophy(); ok {
			resp.Trophies = append(resp.Trophies, t)
		}
	}

	rank, err := s.boardRepo.Rank(ctx, userID)
	if err != nil {
		log.Warn("查询排名失败: userID=%s, err=%v", userID, err)
	}
	resp.Rank = rank
	return resp, nil
}

func (s *QuizServiceImpl) Leaderboard(ctx context.Context, limit int) ([]*entity.LeaderboardEntry, error) {
	if limit <= 0 || limit > s.boardSize {
		limit = s.boardSize
	}
	return s.boardRepo.Top(ctx, limit)
}

func (s *QuizServiceImpl) History(ctx context.Context, userID string, limit, offset int) ([]*entity.QuizRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.recordRepo.FindByUser(ctx, userID, limit, offset)
}

func (s *QuizServiceImpl) Analyze(_ context.Context, hand chinitsu.Hand) (*service.AnalyzeResp, error) {
	if _, err := chinitsu.HandFromInts(hand.Ints()); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidHand, err)
	}
	sorted := hand.Sorted()

	switch len(sorted) {
	case chinitsu.TenpaiSize:
		waits, ukeire := s.searcher.WaitsAndUkeire(sorted)
		return &service.AnalyzeResp{
			Hand:         sorted,
			Size:         len(sorted),
			Waits:        waits,
			Ukeire:       ukeire,
			NineGates:    chinitsu.IsNineGates(sorted),
			Explanations: entity.ExplainWaits(sorted, waits),
		}, nil
	case chinitsu.WinningSize:
		resp := &service.AnalyzeResp{
			Hand:    sorted,
			Size:    len(sorted),
			Winning: s.searcher.IsWinning(sorted),
		}
		if d, ok := chinitsu.Decompose(sorted); ok {
			resp.Decomposition = &d
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: got %d tiles", service.ErrInvalidHand, len(sorted))
	}
}

func describeOptions(o chinitsu.HandOptions) string {
	f := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	return fmt.Sprintf("min=%s max=%s exact=%s", f(o.MinWaits), f(o.MaxWaits), f(o.ExactWaits))
}
