package service

import (
	"context"
	"errors"

	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/vo"
	"chinitsu/runtime/game/engines/chinitsu"
)

var (
	ErrQuestionNotFound  = errors.New("question not found or already answered")
	ErrQuestionForbidden = errors.New("question belongs to another player")
	ErrInvalidAnswer     = errors.New("answer contains a rank outside 1-9")
	ErrInvalidHand       = errors.New("hand must be 13 or 14 tiles of ranks 1-9")
)

// QuizService 听牌练习服务接口
type QuizService interface {
	NewQuestion(ctx context.Context, req *NewQuestionReq) (*entity.Question, error)
	SubmitAnswer(ctx context.Context, req *SubmitAnswerReq) (*entity.AnswerResult, error)
	Stats(ctx context.Context, userID string) (*StatsResp, error)
	Leaderboard(ctx context.Context, limit int) ([]*entity.LeaderboardEntry, error)
	History(ctx context.Context, userID string, limit, offset int) ([]*entity.QuizRecord, error)
	Analyze(ctx context.Context, hand chinitsu.Hand) (*AnalyzeResp, error)
}

// NewQuestionReq Options 不为空时按 custom 难度出题
type NewQuestionReq struct {
	UserID     string                `json:"-"`
	Difficulty vo.Difficulty         `json:"difficulty"`
	Options    *chinitsu.HandOptions `json:"options,omitempty"`
}

type SubmitAnswerReq struct {
	UserID     string `json:"-"`
	Nickname   string `json:"-"`
	QuestionID string `json:"questionId"`
	Waits      []int  `json:"waits"`
}

type StatsResp struct {
	Stats        *entity.PlayerStats `json:"stats"`
	Accuracy     float64             `json:"accuracy"`
	Title        string              `json:"title"`
	NextTitle    string              `json:"nextTitle,omitempty"`
	PointsToNext int                 `json:"pointsToNext"` // 已是最高称号时为 0
	Rank         int                 `json:"rank"`         // 未上榜为 0
	Trophies     []entity.Trophy     `json:"trophies"`
}

type AnalyzeResp struct {
	Hand          chinitsu.Hand            `json:"hand"`
	Size          int                      `json:"size"`
	Waits         []chinitsu.Tile          `json:"waits,omitempty"`
	Ukeire        int                      `json:"ukeire,omitempty"`
	NineGates     bool                     `json:"nineGates,omitempty"`
	Explanations  []entity.WaitExplanation `json:"explanations,omitempty"`
	Winning       bool                     `json:"winning"`
	Decomposition *chinitsu.Decomposition  `json:"decomposition,omitempty"`
}
