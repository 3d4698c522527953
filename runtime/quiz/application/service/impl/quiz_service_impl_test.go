package impl

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"chinitsu/common/cache"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/vo"
	questioncache "chinitsu/core/infrastructure/cache"
	"chinitsu/core/infrastructure/memory"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	svc     *QuizServiceImpl
	clock   *fakeClock
	records *memory.QuizRecordRepository
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	waitCache, err := cache.NewGeneralCache(1<<12, time.Minute)
	require.NoError(t, err)
	questions, err := questioncache.NewQuestionCache(1<<10, 10*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() {
		waitCache.Close()
		questions.Close()
	})

	searcher := chinitsu.NewSearcher(waitCache)
	generator := chinitsu.NewGenerator(chinitsu.WithSeed(7), chinitsu.WithWaitsFunc(searcher.Waits))
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	records := memory.NewQuizRecordRepository()

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc := NewQuizService(searcher, generator, questions,
		memory.NewStatsRepository(), records, memory.NewLeaderboardRepository(), opts...)
	return &fixture{svc: svc, clock: clock, records: records}
}

func answerOf(q *entity.Question) []int {
	return chinitsu.Hand(q.Waits).Ints()
}

func TestNewQuestion_Normal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyNormal})
		require.NoError(t, err)
		require.Len(t, q.Hand, chinitsu.TenpaiSize)
		require.Equal(t, chinitsu.EnumerateWaits(q.Hand), q.Waits)
		if !q.Fallback {
			require.GreaterOrEqual(t, len(q.Waits), 3)
			require.LessOrEqual(t, len(q.Waits), 4)
		}
		require.Equal(t, 90*time.Second, q.TimeLimit())
	}
}

func TestNewQuestion_HidesAnswer(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.NewQuestion(context.Background(), &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotContains(t, decoded, "Waits")
	require.NotContains(t, decoded, "waits")
	require.Contains(t, decoded, "hand")
}

func TestNewQuestion_ImpossibleOptionsFallBack(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.NewQuestion(context.Background(), &service.NewQuestionReq{
		UserID:  "u1",
		Options: &chinitsu.HandOptions{MinWaits: chinitsu.Waits(10)},
	})
	require.NoError(t, err)
	require.True(t, q.Fallback)
	require.Equal(t, vo.DifficultyCustom, q.Difficulty)
	require.Equal(t, chinitsu.FallbackHand, q.Hand)
	require.True(t, chinitsu.IsTenpai(q.Hand))
}

func TestSubmitAnswer_Correct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyNormal})
	require.NoError(t, err)

	f.clock.Advance(45 * time.Second)
	res, err := f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{
		UserID: "u1", Nickname: "tester", QuestionID: q.ID, Waits: answerOf(q),
	})
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.False(t, res.TimedOut)
	require.Empty(t, res.Missed)
	require.Empty(t, res.Extra)
	require.Equal(t, vo.Score(q.Difficulty, len(q.Waits), true, 45*time.Second, q.TimeLimit()), res.Score)
	require.Equal(t, res.Score, res.TotalScore)
	require.Equal(t, 1, res.Streak)
	require.Equal(t, chinitsu.Ukeire(q.Hand, q.Waits), res.Ukeire)
	require.Len(t, res.Explanations, len(q.Waits))
	require.Equal(t, int64(45000), res.ElapsedMs)

	ids := make([]entity.TrophyID, 0)
	for _, tr := range res.Unlocked {
		ids = append(ids, tr.ID)
	}
	require.Contains(t, ids, entity.TrophyFirstWin)

	stats, err := f.svc.Stats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.Stats.Answered)
	require.Equal(t, 1, stats.Stats.Correct)
	require.Equal(t, "tester", stats.Stats.Nickname)
	require.Equal(t, 1, stats.Rank)

	board, err := f.svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.Equal(t, "tester", board[0].Nickname)

	history, err := f.svc.History(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, q.ID, history[0].QuestionID)
	require.True(t, history[0].Correct)
	require.Equal(t, q.Hand.String(), history[0].Hand)
}

func TestSubmitAnswer_Wrong(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{
		UserID:  "u1",
		Options: &chinitsu.HandOptions{MinWaits: chinitsu.Waits(10)},
	})
	require.NoError(t, err)

	// 九莲宝灯听 1-9，只答 1 和 9
	res, err := f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: []int{9, 1, 1}})
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.Equal(t, []chinitsu.Tile{1, 9}, res.Answer)
	require.Equal(t, []chinitsu.Tile{2, 3, 4, 5, 6, 7, 8}, res.Missed)
	require.Empty(t, res.Extra)
	require.Zero(t, res.Score)
	require.Empty(t, res.Unlocked)

	board, err := f.svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, board)
}

func TestSubmitAnswer_FallbackUnranked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{
			UserID:  "u1",
			Options: &chinitsu.HandOptions{MinWaits: chinitsu.Waits(10)},
		})
		require.NoError(t, err)
		require.True(t, q.Fallback)

		f.clock.Advance(time.Second)
		res, err := f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: answerOf(q)})
		require.NoError(t, err)
		require.True(t, res.Correct)
		require.True(t, res.Fallback)
		require.Zero(t, res.Score)
		require.Zero(t, res.TotalScore)
		require.Empty(t, res.Unlocked)
	}

	stats, err := f.svc.Stats(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, stats.Stats.Correct)
	require.Zero(t, stats.Stats.Streak)
	require.Empty(t, stats.Trophies)
	require.Zero(t, stats.Rank)

	board, err := f.svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, board)

	// 流水照常记录，得分为 0
	history, err := f.svc.History(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Zero(t, history[0].Score)
}

func TestSubmitAnswer_ConsumedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: answerOf(q)})
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: answerOf(q)})
	require.ErrorIs(t, err, service.ErrQuestionNotFound)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: "no-such-question", Waits: []int{1}})
	require.ErrorIs(t, err, service.ErrQuestionNotFound)
}

func TestSubmitAnswer_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "owner", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "intruder", QuestionID: q.ID, Waits: answerOf(q)})
	require.ErrorIs(t, err, service.ErrQuestionForbidden)

	res, err := f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "owner", QuestionID: q.ID, Waits: answerOf(q)})
	require.NoError(t, err)
	require.True(t, res.Correct)
}

func TestSubmitAnswer_InvalidAnswerKeepsQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: []int{0, 10}})
	require.ErrorIs(t, err, service.ErrInvalidAnswer)

	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: answerOf(q)})
	require.NoError(t, err)
}

func TestSubmitAnswer_TimedOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: first.ID, Waits: answerOf(first)})
	require.NoError(t, err)

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)
	f.clock.Advance(61 * time.Second)

	res, err := f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: answerOf(q)})
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.True(t, res.TimedOut)
	require.Zero(t, res.Score)
	require.Zero(t, res.Streak)

	stats, err := f.svc.Stats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, stats.Stats.Answered)
	require.Equal(t, 1, stats.Stats.Correct)
	require.Equal(t, 1, stats.Stats.BestStreak)
}

func TestSetTimeLimits(t *testing.T) {
	f := newFixture(t, WithTimeLimits(map[string]int{"easy": 30}))
	ctx := context.Background()

	q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, q.TimeLimit())

	f.svc.SetTimeLimits(map[string]int{"easy": 15, "hard": 0})
	q, err = f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
	require.NoError(t, err)
	require.Equal(t, 15*time.Second, q.TimeLimit())

	q, err = f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyHard})
	require.NoError(t, err)
	require.Equal(t, 120*time.Second, q.TimeLimit())
}

func TestStats_NewPlayer(t *testing.T) {
	f := newFixture(t)
	stats, err := f.svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	require.Zero(t, stats.Stats.Answered)
	require.Equal(t, "见习", stats.Title)
	require.Equal(t, "雀士", stats.NextTitle)
	require.Equal(t, 300, stats.PointsToNext)
	require.Zero(t, stats.Rank)
	require.Empty(t, stats.Trophies)
}

func TestHistory_Paging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: "u1", Difficulty: vo.DifficultyEasy})
		require.NoError(t, err)
		_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: "u1", QuestionID: q.ID, Waits: []int{}})
		require.NoError(t, err)
	}

	all, err := f.svc.History(ctx, "u1", 0, -5)
	require.NoError(t, err)
	require.Len(t, all, 3)

	page, err := f.svc.History(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Analyze(ctx, chinitsu.Hand{9, 9, 9, 1, 1, 1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	require.Equal(t, chinitsu.TenpaiSize, res.Size)
	require.True(t, res.NineGates)
	require.Len(t, res.Waits, 9)
	require.Equal(t, 23, res.Ukeire)
	require.Len(t, res.Explanations, 9)
	require.Equal(t, chinitsu.Hand{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9}, res.Hand)

	res, err = f.svc.Analyze(ctx, chinitsu.Hand{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 5, 5})
	require.NoError(t, err)
	require.True(t, res.Winning)
	require.NotNil(t, res.Decomposition)

	res, err = f.svc.Analyze(ctx, chinitsu.Hand{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 6, 8})
	require.NoError(t, err)
	require.False(t, res.Winning)
	require.Nil(t, res.Decomposition)

	_, err = f.svc.Analyze(ctx, chinitsu.Hand{1, 2, 3})
	require.ErrorIs(t, err, service.ErrInvalidHand)

	_, err = f.svc.Analyze(ctx, chinitsu.Hand{1, 1, 1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.ErrorIs(t, err, service.ErrInvalidHand)
}

func TestLeaderboard_Limit(t *testing.T) {
	f := newFixture(t, WithLeaderboardSize(2))
	ctx := context.Background()
	for _, user := range []string{"a", "b", "c"} {
		q, err := f.svc.NewQuestion(ctx, &service.NewQuestionReq{UserID: user, Difficulty: vo.DifficultyEasy})
		require.NoError(t, err)
		_, err = f.svc.SubmitAnswer(ctx, &service.SubmitAnswerReq{UserID: user, QuestionID: q.ID, Waits: answerOf(q)})
		require.NoError(t, err)
	}

	board, err := f.svc.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Len(t, board, 2)

	board, err = f.svc.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, board, 1)
}
