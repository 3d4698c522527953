package entity

import (
	"sort"

	"chinitsu/runtime/game/engines/chinitsu"
)

// WaitExplanation 某张听牌和牌后的一种拆法
type WaitExplanation struct {
	Tile          chinitsu.Tile          `json:"tile"`
	Decomposition chinitsu.Decomposition `json:"decomposition"`
	Text          string                 `json:"text"`
}

// AnswerResult 提交答案后的判定结果
type AnswerResult struct {
	QuestionID   string            `json:"questionId"`
	Hand         chinitsu.Hand     `json:"hand"`
	Answer       []chinitsu.Tile   `json:"answer"`
	Waits        []chinitsu.Tile   `json:"waits"`
	Missed       []chinitsu.Tile   `json:"missed"` // 漏选
	Extra        []chinitsu.Tile   `json:"extra"`  // 多选
	Correct      bool              `json:"correct"`
	TimedOut     bool              `json:"timedOut"`
	Fallback     bool              `json:"fallback"` // 保底题不计分
	Ukeire       int               `json:"ukeire"`
	Explanations []WaitExplanation `json:"explanations"`
	ElapsedMs    int64             `json:"elapsedMs"`
	Score        int               `json:"score"`
	TotalScore   int               `json:"totalScore"`
	Streak       int               `json:"streak"`
	Title        string            `json:"title"`
	Unlocked     []Trophy          `json:"unlocked"`
}

// NormalizeAnswer 排序去重，越界的点数返回 false
func NormalizeAnswer(answer []int) ([]chinitsu.Tile, bool) {
	seen := [chinitsu.RankCount + 1]bool{}
	out := make([]chinitsu.Tile, 0, len(answer))
	for _, r := range answer {
		t := chinitsu.Tile(r)
		if !t.Valid() {
			return nil, false
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}

// CompareWaits answer 和 waits 都须升序去重，返回漏选和多选
func CompareWaits(answer, waits []chinitsu.Tile) (missed, extra []chinitsu.Tile) {
	missed = make([]chinitsu.Tile, 0)
	extra = make([]chinitsu.Tile, 0)
	i, j := 0, 0
	for i < len(answer) || j < len(waits) {
		switch {
		case j == len(waits) || (i < len(answer) && answer[i] < waits[j]):
			extra = append(extra, answer[i])
			i++
		case i == len(answer) || waits[j] < answer[i]:
			missed = append(missed, waits[j])
			j++
		default:
			i++
			j++
		}
	}
	return missed, extra
}

// ExplainWaits 每张听牌给出一种拆法
func ExplainWaits(hand chinitsu.Hand, waits []chinitsu.Tile) []WaitExplanation {
	out := make([]WaitExplanation, 0, len(waits))
	for _, w := range waits {
		full := append(append(make(chinitsu.Hand, 0, len(hand)+1), hand...), w)
		d, ok := chinitsu.Decompose(full)
		if !ok {
			continue
		}
		out = append(out, WaitExplanation{Tile: w, Decomposition: d, Text: d.String()})
	}
	return out
}
