package api

import (
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"chinitsu/common/http"
	"chinitsu/common/jwts"
	"chinitsu/common/log"

	"github.com/google/uuid"
)

const maxNicknameLen = 16

// GuestHandler 游客登录，分配 userID 并签发 token
func (h *Handler) GuestHandler(c *http.Context) error {
	var req struct {
		Nickname string `json:"nickname"`
	}
	// 请求体可以为空
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return http.ErrBadRequest("请求参数错误")
	}

	nickname := strings.TrimSpace(req.Nickname)
	if utf8.RuneCountInString(nickname) > maxNicknameLen {
		return http.ErrBadRequest("昵称过长")
	}
	userID := uuid.NewString()
	if nickname == "" {
		nickname = "游客" + userID[:6]
	}

	expire := time.Duration(h.jwtConf.Expire) * time.Hour
	token, err := jwts.GetToken(jwts.NewClaims(userID, nickname, expire), h.jwtConf.Secret)
	if err != nil {
		log.Error("签发 token 失败: %v", err)
		return err
	}

	c.Success(map[string]any{
		"token":    token,
		"userId":   userID,
		"nickname": nickname,
	})
	return nil
}
