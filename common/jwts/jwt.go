package jwts

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token not valid")

type CustomClaims struct {
	UserID   string `json:"userID"`
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

// NewClaims expire <= 0 时不设置过期时间
func NewClaims(userID, nickname string, expire time.Duration) *CustomClaims {
	now := time.Now()
	claims := &CustomClaims{
		UserID:   userID,
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if expire > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expire))
	}
	return claims
}

func GetToken(claims *CustomClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 校验签名与过期时间，返回自定义 claims
func ParseToken(token, secret string) (*CustomClaims, error) {
	claims := new(CustomClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
