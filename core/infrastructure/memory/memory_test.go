package memory

import (
	"context"
	"fmt"
	"testing"

	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"

	"github.com/stretchr/testify/require"
)

func TestStatsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStatsRepository()

	_, err := repo.FindByUserID(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrStatsNotFound)

	s := entity.NewPlayerStats("u1", "tester")
	s.TotalScore = 42
	require.NoError(t, repo.Save(ctx, s))

	// 保存后修改原对象不影响仓储
	s.TotalScore = 0
	got, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 42, got.TotalScore)
	require.Equal(t, "tester", got.Nickname)
}

func TestQuizRecordRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRecordRepository()
	defer repo.Close()

	for i := 0; i < 5; i++ {
		r := entity.NewQuizRecord(fmt.Sprintf("q%d", i), "u1")
		repo.SaveRecordAsync(r)
	}
	repo.SaveRecordAsync(entity.NewQuizRecord("other", "u2"))

	page, err := repo.FindByUser(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "q4", page[0].QuestionID)
	require.Equal(t, "q3", page[1].QuestionID)

	page, err = repo.FindByUser(ctx, "u1", 10, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "q1", page[0].QuestionID)

	empty, err := repo.FindByUser(ctx, "nobody", 10, 0)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestQuizRecordRepository_Cap(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRecordRepository()
	for i := 0; i < maxRecordsPerUser+10; i++ {
		repo.SaveRecordAsync(entity.NewQuizRecord(fmt.Sprintf("q%d", i), "u1"))
	}
	page, err := repo.FindByUser(ctx, "u1", maxRecordsPerUser*2, 0)
	require.NoError(t, err)
	require.Len(t, page, maxRecordsPerUser)
}

func TestLeaderboardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaderboardRepository()

	total, err := repo.AddScore(ctx, "b", "Bob", 100)
	require.NoError(t, err)
	require.Equal(t, 100, total)
	_, _ = repo.AddScore(ctx, "a", "Alice", 100)
	_, _ = repo.AddScore(ctx, "c", "Carol", 50)
	total, _ = repo.AddScore(ctx, "c", "", 300)
	require.Equal(t, 350, total)

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "c", top[0].UserID)
	require.Equal(t, "Carol", top[0].Nickname)
	require.Equal(t, "雀士", top[0].Title)
	// 同分按 userID
	require.Equal(t, "a", top[1].UserID)
	require.Equal(t, 2, top[1].Rank)

	rank, err := repo.Rank(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, 3, rank)

	rank, err = repo.Rank(ctx, "nobody")
	require.NoError(t, err)
	require.Equal(t, 0, rank)

	all, err := repo.Top(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
