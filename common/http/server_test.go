package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chinitsu/common/jwts"
	"chinitsu/common/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware())
	s.GET("/ping", func(c *Context) error {
		c.Success(map[string]string{"message": "pong"})
		return nil
	})
	s.GET("/missing", func(c *Context) error {
		return ErrNotFound("no such question")
	})
	s.GET("/boom", func(c *Context) error {
		return errors.New("boom")
	})
	g := s.Group("/api", AuthMiddleware("secret"))
	g.GET("/me", func(c *Context) error {
		c.Success(map[string]string{"userID": c.UserID()})
		return nil
	})
	return s
}

func do(t *testing.T, s *HttpServer, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	var resp Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestServer_SuccessAndRequestID(t *testing.T) {
	s := newTestServer()
	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, CodeSuccess, resp.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w, _ = do(t, s, req)
	require.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
}

func TestServer_ErrorMapping(t *testing.T) {
	s := newTestServer()
	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, CodeNotFound, resp.Code)
	require.Equal(t, "no such question", resp.Message)

	w, resp = do(t, s, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, CodeServerError, resp.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer()

	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, CodeUnauthorized, resp.Code)

	token, err := jwts.GetToken(jwts.NewClaims("u-42", "", time.Hour), "secret")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, resp = do(t, s, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]interface{}{"userID": "u-42"}, resp.Data)

	bad, err := jwts.GetToken(jwts.NewClaims("u-42", "", time.Hour), "other")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	w, _ = do(t, s, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RateLimitMiddleware(utils.NewKeyedRateLimiter(1, 1)))
	s.GET("/ping", func(c *Context) error {
		c.Success(nil)
		return nil
	})

	w, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, CodeTooMany, resp.Code)
}

func TestCorsPreflight(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(CorsMiddleware())
	s.POST("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	// gin 对未注册的 OPTIONS 路由返回 404，全局中间件仍然会执行
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
