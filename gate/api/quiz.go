package api

import (
	"chinitsu/common/http"
	"chinitsu/core/domain/vo"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service"

	"github.com/spf13/cast"
)

func (h *Handler) NewQuestionHandler(c *http.Context) error {
	var req struct {
		Difficulty string `json:"difficulty"`
		MinWaits   *int   `json:"minWaits"`
		MaxWaits   *int   `json:"maxWaits"`
		ExactWaits *int   `json:"exactWaits"`
	}
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误")
	}

	svcReq := &service.NewQuestionReq{
		UserID:     c.UserID(),
		Difficulty: vo.ParseDifficulty(req.Difficulty),
	}
	if req.MinWaits != nil || req.MaxWaits != nil || req.ExactWaits != nil {
		svcReq.Options = &chinitsu.HandOptions{MinWaits: req.MinWaits, MaxWaits: req.MaxWaits, ExactWaits: req.ExactWaits}
	}

	q, err := h.quiz.NewQuestion(c.Context(), svcReq)
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(q)
	return nil
}

func (h *Handler) SubmitAnswerHandler(c *http.Context) error {
	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		Waits      []int  `json:"waits"`
	}
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误")
	}

	result, err := h.quiz.SubmitAnswer(c.Context(), &service.SubmitAnswerReq{
		UserID:     c.UserID(),
		Nickname:   c.GetString(http.KeyNickname),
		QuestionID: req.QuestionID,
		Waits:      req.Waits,
	})
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(result)
	return nil
}

func (h *Handler) StatsHandler(c *http.Context) error {
	stats, err := h.quiz.Stats(c.Context(), c.UserID())
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(stats)
	return nil
}

func (h *Handler) HistoryHandler(c *http.Context) error {
	limit := cast.ToInt(c.GetQueryWithDefault("limit", "20"))
	offset := cast.ToInt(c.GetQueryWithDefault("offset", "0"))

	records, err := h.quiz.History(c.Context(), c.UserID(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(map[string]any{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
	return nil
}

func (h *Handler) LeaderboardHandler(c *http.Context) error {
	limit := cast.ToInt(c.GetQueryWithDefault("limit", "0"))

	entries, err := h.quiz.Leaderboard(c.Context(), limit)
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(entries)
	return nil
}

func (h *Handler) AnalyzeHandler(c *http.Context) error {
	var req struct {
		Hand string `json:"hand" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		return http.ErrBadRequest("请求参数错误")
	}

	hand, err := chinitsu.ParseHand(req.Hand)
	if err != nil {
		return toHTTPError(err)
	}
	resp, err := h.quiz.Analyze(c.Context(), hand)
	if err != nil {
		return toHTTPError(err)
	}
	c.Success(resp)
	return nil
}
