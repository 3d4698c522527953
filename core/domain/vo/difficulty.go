package vo

import (
	"strings"
	"time"

	"chinitsu/runtime/game/engines/chinitsu"
)

// Difficulty 出题难度，决定听牌数约束、基础分和答题时限
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // 1-2 面听
	DifficultyNormal Difficulty = "normal" // 3-4 面听
	DifficultyHard   Difficulty = "hard"   // 5 面听以上
	DifficultyCustom Difficulty = "custom" // 调用方自带约束
)

// ParseDifficulty 不区分大小写，无法识别时按 normal 处理
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	case DifficultyCustom:
		return DifficultyCustom
	default:
		return DifficultyNormal
	}
}

// HandOptions 各难度的听牌数约束，custom 没有预设约束
func (d Difficulty) HandOptions() chinitsu.HandOptions {
	switch d {
	case DifficultyEasy:
		return chinitsu.HandOptions{MaxWaits: chinitsu.Waits(2)}
	case DifficultyHard:
		return chinitsu.HandOptions{MinWaits: chinitsu.Waits(5)}
	case DifficultyCustom:
		return chinitsu.HandOptions{}
	default:
		return chinitsu.HandOptions{MinWaits: chinitsu.Waits(3), MaxWaits: chinitsu.Waits(4)}
	}
}

// BasePoints 答对的基础分，custom 按听牌数计
func (d Difficulty) BasePoints(waitCount int) int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyNormal:
		return 25
	case DifficultyHard:
		return 50
	default:
		return 10 * waitCount
	}
}

// DefaultTimeLimit 配置缺省时的答题时限
func (d Difficulty) DefaultTimeLimit() time.Duration {
	switch d {
	case DifficultyEasy:
		return 60 * time.Second
	case DifficultyNormal:
		return 90 * time.Second
	default:
		return 120 * time.Second
	}
}

func (d Difficulty) GetDisplayName() string {
	switch d {
	case DifficultyEasy:
		return "入门"
	case DifficultyNormal:
		return "进阶"
	case DifficultyHard:
		return "高手"
	default:
		return "自定义"
	}
}

// Score 得分 = 基础分 × (1 + 剩余时间占比)，向下取整
// 答错或超时为 0
func Score(d Difficulty, waitCount int, correct bool, elapsed, limit time.Duration) int {
	if !correct || limit <= 0 || elapsed > limit {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	base := d.BasePoints(waitCount)
	remaining := float64(limit-elapsed) / float64(limit)
	return int(float64(base) * (1 + remaining))
}
