package repository

import "chinitsu/core/domain/entity"

// QuestionRepository 进行中的题目，只保存在本地缓存里
type QuestionRepository interface {
	Put(q *entity.Question) error

	// Take 取出并删除，同一道题只能取一次
	// 不存在或已清理返回 ErrQuestionNotFound，不属于该用户返回 ErrQuestionForbidden 且不删除
	Take(id, userID string) (*entity.Question, error)
}
