package repository

import "errors"

var (
	// 统计相关错误
	ErrStatsNotFound = errors.New("player stats not found")

	// 题目相关错误
	ErrQuestionNotFound  = errors.New("question not found or already answered")
	ErrQuestionForbidden = errors.New("question belongs to another player")

	// 存储层错误，具体原因只打日志
	ErrStorage = errors.New("storage failure")
)
