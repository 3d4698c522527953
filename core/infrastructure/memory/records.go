package memory

import (
	"context"
	"sync"

	"chinitsu/core/domain/entity"

	"github.com/awesome-cap/hashmap"
)

// 每个玩家最多保留的答题记录
const maxRecordsPerUser = 1000

type userRecords struct {
	mu      sync.Mutex
	records []*entity.QuizRecord // 按写入顺序，最新的在最后
}

// QuizRecordRepository 内存实现，写入直接落地，没有异步缓冲
type QuizRecordRepository struct {
	users *hashmap.HashMap
	mu    sync.Mutex // 保证同一个玩家只创建一个 userRecords
}

func NewQuizRecordRepository() *QuizRecordRepository {
	return &QuizRecordRepository{users: hashmap.New()}
}

func (r *QuizRecordRepository) bucket(userID string) *userRecords {
	if v, ok := r.users.Get(userID); ok {
		return v.(*userRecords)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.users.Get(userID); ok {
		return v.(*userRecords)
	}
	b := &userRecords{}
	r.users.Set(userID, b)
	return b
}

func (r *QuizRecordRepository) SaveRecords(_ context.Context, records []*entity.QuizRecord) error {
	for _, record := range records {
		if record == nil {
			continue
		}
		b := r.bucket(record.UserID)
		b.mu.Lock()
		b.records = append(b.records, record)
		if len(b.records) > maxRecordsPerUser {
			b.records = b.records[len(b.records)-maxRecordsPerUser:]
		}
		b.mu.Unlock()
	}
	return nil
}

func (r *QuizRecordRepository) SaveRecordAsync(record *entity.QuizRecord) {
	_ = r.SaveRecords(context.Background(), []*entity.QuizRecord{record})
}

func (r *QuizRecordRepository) FindByUser(_ context.Context, userID string, limit, offset int) ([]*entity.QuizRecord, error) {
	v, ok := r.users.Get(userID)
	if !ok {
		return []*entity.QuizRecord{}, nil
	}
	b := v.(*userRecords)
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*entity.QuizRecord, 0, limit)
	for i := len(b.records) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		c := *b.records[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *QuizRecordRepository) Close() error {
	return nil
}
