package api

import (
	"errors"
	nethttp "net/http"

	"chinitsu/common/config"
	"chinitsu/common/http"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service"
)

// 业务错误码，在 common/http 通用错误码之后
const (
	CodeQuestionNotFound  = 20001
	CodeQuestionForbidden = 20002
	CodeInvalidAnswer     = 20003
	CodeInvalidHand       = 20004
)

// Handler 持有路由处理需要的依赖
type Handler struct {
	quiz      service.QuizService
	jwtConf   config.JwtConf
	cacheInfo func() any // 可选，health 接口展示听牌缓存命中率
}

func NewHandler(quiz service.QuizService, jwtConf config.JwtConf, searcher *chinitsu.Searcher) *Handler {
	h := &Handler{quiz: quiz, jwtConf: jwtConf}
	if searcher != nil {
		h.cacheInfo = func() any { return searcher.Stats() }
	}
	return h
}

// toHTTPError 服务层错误转换为带状态码的业务错误，未知错误原样返回由框架按 500 处理
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		return http.NewError(nethttp.StatusNotFound, CodeQuestionNotFound, "题目不存在或已作答")
	case errors.Is(err, service.ErrQuestionForbidden):
		return http.NewError(nethttp.StatusForbidden, CodeQuestionForbidden, "不能回答别人的题目")
	case errors.Is(err, service.ErrInvalidAnswer):
		return http.NewError(nethttp.StatusBadRequest, CodeInvalidAnswer, "答案只能是 1-9 的点数")
	case errors.Is(err, service.ErrInvalidHand), errors.Is(err, chinitsu.ErrInvalidTile), errors.Is(err, chinitsu.ErrTooManyCopies):
		return http.NewError(nethttp.StatusBadRequest, CodeInvalidHand, err.Error())
	default:
		return err
	}
}
