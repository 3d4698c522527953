package entity

import (
	"time"

	"chinitsu/core/domain/vo"
	"chinitsu/runtime/game/engines/chinitsu"

	"github.com/google/uuid"
)

// Question 一道听牌题，Waits 为标准答案，只保存在服务端
type Question struct {
	ID         string               `json:"id"`
	UserID     string               `json:"-"`
	Hand       chinitsu.Hand        `json:"hand"`
	Difficulty vo.Difficulty        `json:"difficulty"`
	Options    chinitsu.HandOptions `json:"options"`
	Waits      []chinitsu.Tile      `json:"-"`
	Fallback   bool                 `json:"fallback,omitempty"` // 约束无法满足，出的是保底题，不计分
	IssuedAt   time.Time            `json:"issuedAt"`
	Deadline   time.Time            `json:"deadline"`
}

// NewQuestion 生成题目 ID 并计算截止时间
func NewQuestion(userID string, hand chinitsu.Hand, waits []chinitsu.Tile, difficulty vo.Difficulty, opts chinitsu.HandOptions, now time.Time, limit time.Duration) *Question {
	return &Question{
		ID:         uuid.NewString(),
		UserID:     userID,
		Hand:       hand,
		Difficulty: difficulty,
		Options:    opts,
		Waits:      waits,
		IssuedAt:   now,
		Deadline:   now.Add(limit),
	}
}

// TimeLimit 答题时限
func (q *Question) TimeLimit() time.Duration {
	return q.Deadline.Sub(q.IssuedAt)
}

// Expired 超过截止时间
func (q *Question) Expired(now time.Time) bool {
	return now.After(q.Deadline)
}
