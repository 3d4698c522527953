package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizRecord 答题流水，每次提交答案写一条
type QuizRecord struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	QuestionID string             `bson:"question_id" json:"questionId"`
	UserID     string             `bson:"user_id" json:"userId"`
	Hand       string             `bson:"hand" json:"hand"` // 紧凑写法，如 1112345678999
	Difficulty string             `bson:"difficulty" json:"difficulty"`
	Waits      []int              `bson:"waits" json:"waits"`
	Answer     []int              `bson:"answer" json:"answer"`
	Correct    bool               `bson:"correct" json:"correct"`
	TimedOut   bool               `bson:"timed_out" json:"timedOut"`
	Score      int                `bson:"score" json:"score"`
	ElapsedMs  int64              `bson:"elapsed_ms" json:"elapsedMs"`
	AnsweredAt time.Time          `bson:"answered_at" json:"answeredAt"`
	CreatedAt  time.Time          `bson:"created_at" json:"-"` // 用于 TTL 索引
}

// NewQuizRecord 创建答题记录
func NewQuizRecord(questionID, userID string) *QuizRecord {
	now := time.Now()
	return &QuizRecord{
		ID:         primitive.NewObjectID(),
		QuestionID: questionID,
		UserID:     userID,
		AnsweredAt: now,
		CreatedAt:  now,
	}
}
