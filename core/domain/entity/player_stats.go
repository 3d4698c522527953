package entity

import (
	"time"

	"chinitsu/core/domain/vo"
)

// WaitTally 按听牌数分组的作答统计
type WaitTally struct {
	Answered int `bson:"answered" json:"answered"`
	Correct  int `bson:"correct" json:"correct"`
}

// PlayerStats 玩家练习统计（聚合根），以 userID 为主键
type PlayerStats struct {
	UserID     string      `bson:"_id" json:"userId"`
	Nickname   string      `bson:"nickname" json:"nickname"`
	Answered   int         `bson:"answered" json:"answered"`
	Correct    int         `bson:"correct" json:"correct"`
	Streak     int         `bson:"streak" json:"streak"`
	BestStreak int         `bson:"best_streak" json:"bestStreak"`
	TotalScore int         `bson:"total_score" json:"totalScore"`
	FastestMs  int64       `bson:"fastest_ms" json:"fastestMs"` // 最快答对用时，0 表示还没有
	ByWaits    []WaitTally `bson:"by_waits" json:"byWaits"`     // 下标为听牌数 0-9
	Trophies   []TrophyID  `bson:"trophies" json:"trophies"`
	CreatedAt  time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `bson:"updated_at" json:"updatedAt"`
}

// NewPlayerStats 工厂方法：首次作答时创建
func NewPlayerStats(userID, nickname string) *PlayerStats {
	now := time.Now()
	return &PlayerStats{
		UserID:    userID,
		Nickname:  nickname,
		ByWaits:   make([]WaitTally, 10),
		Trophies:  make([]TrophyID, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply 记入一次作答，返回本次新解锁的成就
// 保底题只能练手，统计和成就都不变
func (s *PlayerStats) Apply(o AnswerOutcome) []TrophyID {
	if o.Fallback {
		return []TrophyID{}
	}
	if len(s.ByWaits) < 10 {
		grown := make([]WaitTally, 10)
		copy(grown, s.ByWaits)
		s.ByWaits = grown
	}

	s.Answered++
	if o.WaitCount >= 0 && o.WaitCount < len(s.ByWaits) {
		s.ByWaits[o.WaitCount].Answered++
	}

	if o.Solved() {
		s.Correct++
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		s.TotalScore += o.Score
		if ms := o.Elapsed.Milliseconds(); s.FastestMs == 0 || ms < s.FastestMs {
			s.FastestMs = ms
		}
		if o.WaitCount >= 0 && o.WaitCount < len(s.ByWaits) {
			s.ByWaits[o.WaitCount].Correct++
		}
	} else {
		s.Streak = 0
	}
	s.UpdatedAt = time.Now()

	unlocked := make([]TrophyID, 0)
	for _, id := range qualifiedTrophies(s, o) {
		if !s.HasTrophy(id) {
			s.Trophies = append(s.Trophies, id)
			unlocked = append(unlocked, id)
		}
	}
	return unlocked
}

func (s *PlayerStats) HasTrophy(id TrophyID) bool {
	for _, t := range s.Trophies {
		if t == id {
			return true
		}
	}
	return false
}

// Accuracy 正确率，没有作答时为 0
func (s *PlayerStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// GetRanking 按累计得分计算称号
func (s *PlayerStats) GetRanking() vo.RankingType {
	return vo.GetRankingByScore(s.TotalScore)
}

// Clone 深拷贝，内存仓储返回副本避免共享
func (s *PlayerStats) Clone() *PlayerStats {
	c := *s
	c.ByWaits = append([]WaitTally(nil), s.ByWaits...)
	c.Trophies = append([]TrophyID(nil), s.Trophies...)
	return &c
}

// LeaderboardEntry 排行榜条目，Rank 从 1 开始
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Title    string `json:"title"`
}
