package entity

import (
	"time"

	"chinitsu/core/domain/vo"
)

// TrophyID 成就标识，存库用
type TrophyID string

const (
	TrophyFirstWin  TrophyID = "first_win"
	TrophyStreak10  TrophyID = "streak_10"
	TrophyStreak30  TrophyID = "streak_30"
	TrophyHardClear TrophyID = "hard_clear"
	TrophyManyWaits TrophyID = "many_waits"
	TrophyNineGates TrophyID = "nine_gates"
	TrophyLightning TrophyID = "lightning"
	TrophyCenturion TrophyID = "centurion"
)

const (
	lightningLimit    = 5 * time.Second
	lightningMinWaits = 3
	manyWaitsMin      = 7
	centurionCorrect  = 100
)

type Trophy struct {
	ID          TrophyID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

var trophyCatalog = []Trophy{
	{TrophyFirstWin, "初次听牌", "第一次答对"},
	{TrophyStreak10, "十连对", "连续答对 10 题"},
	{TrophyStreak30, "三十连对", "连续答对 30 题"},
	{TrophyHardClear, "高手", "答对一道高手难度的题"},
	{TrophyManyWaits, "多面听", "答对一道 7 面听以上的题"},
	{TrophyNineGates, "九莲宝灯", "答对纯正九莲宝灯"},
	{TrophyLightning, "闪电", "5 秒内答对 3 面听以上的题"},
	{TrophyCenturion, "百题斩", "累计答对 100 题"},
}

// Catalog 全部成就
func Catalog() []Trophy {
	out := make([]Trophy, len(trophyCatalog))
	copy(out, trophyCatalog)
	return out
}

func (id TrophyID) Trophy() (Trophy, bool) {
	for _, t := range trophyCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Trophy{}, false
}

// AnswerOutcome 一次作答的判定结果，用于更新统计和成就
type AnswerOutcome struct {
	Difficulty vo.Difficulty
	WaitCount  int
	Correct    bool
	TimedOut   bool
	NineGates  bool
	Fallback   bool // 保底题不计分、不计入统计
	Score      int
	Elapsed    time.Duration
}

// Solved 答对且未超时
func (o AnswerOutcome) Solved() bool {
	return o.Correct && !o.TimedOut
}

// qualifiedTrophies 按更新后的统计判断本次满足的成就，不考虑是否已拥有
func qualifiedTrophies(s *PlayerStats, o AnswerOutcome) []TrophyID {
	if !o.Solved() || o.Fallback {
		return nil
	}
	ids := make([]TrophyID, 0, 2)
	if s.Correct >= 1 {
		ids = append(ids, TrophyFirstWin)
	}
	if s.Streak >= 10 {
		ids = append(ids, TrophyStreak10)
	}
	if s.Streak >= 30 {
		ids = append(ids, TrophyStreak30)
	}
	if o.Difficulty == vo.DifficultyHard {
		ids = append(ids, TrophyHardClear)
	}
	if o.WaitCount >= manyWaitsMin {
		ids = append(ids, TrophyManyWaits)
	}
	if o.NineGates {
		ids = append(ids, TrophyNineGates)
	}
	if o.Elapsed < lightningLimit && o.WaitCount >= lightningMinWaits {
		ids = append(ids, TrophyLightning)
	}
	if s.Correct >= centurionCorrect {
		ids = append(ids, TrophyCenturion)
	}
	return ids
}
