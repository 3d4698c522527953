package repository

import (
	"context"

	"chinitsu/core/domain/entity"
)

// QuizRecordRepository 答题流水仓储接口
type QuizRecordRepository interface {
	// SaveRecords 批量保存（同步）
	SaveRecords(ctx context.Context, records []*entity.QuizRecord) error

	// SaveRecordAsync 异步保存单条记录（非阻塞，缓冲满时丢弃）
	SaveRecordAsync(record *entity.QuizRecord)

	// FindByUser 按作答时间倒序分页查询
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.QuizRecord, error)

	// Close 写完缓冲中的记录后关闭
	Close() error
}
