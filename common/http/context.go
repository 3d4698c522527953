package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	KeyUserID    = "userID"
	KeyNickname  = "nickname"
	KeyRequestID = "requestID"
)

// Context 封装 gin.Context，提供统一的请求/响应接口
type Context struct {
	ginCtx *gin.Context
}

// newContext 创建新的上下文实例
func newContext(c *gin.Context) *Context {
	return &Context{ginCtx: c}
}

// Request 相关方法

// Context 请求级 context，客户端断开时取消
func (c *Context) Context() context.Context {
	return c.ginCtx.Request.Context()
}

// GetParam 获取路径参数
func (c *Context) GetParam(key string) string {
	return c.ginCtx.Param(key)
}

// GetQuery 获取查询参数
func (c *Context) GetQuery(key string) string {
	return c.ginCtx.Query(key)
}

// GetQueryWithDefault 获取查询参数，带默认值
func (c *Context) GetQueryWithDefault(key, defaultValue string) string {
	return c.ginCtx.DefaultQuery(key, defaultValue)
}

// GetHeader 获取请求头
func (c *Context) GetHeader(key string) string {
	return c.ginCtx.GetHeader(key)
}

// BindJSON 绑定 JSON 请求体
func (c *Context) BindJSON(obj interface{}) error {
	return c.ginCtx.ShouldBindJSON(obj)
}

// BindQuery 绑定查询参数
func (c *Context) BindQuery(obj interface{}) error {
	return c.ginCtx.ShouldBindQuery(obj)
}

// Response 相关方法

// JSON 返回 JSON 响应
func (c *Context) JSON(code int, obj interface{}) {
	c.ginCtx.JSON(code, obj)
}

// SetHeader 设置响应头
func (c *Context) SetHeader(key, value string) {
	c.ginCtx.Header(key, value)
}

// 工具方法

// ClientIP 获取客户端 IP
func (c *Context) ClientIP() string {
	return c.ginCtx.ClientIP()
}

// UserAgent 获取 User-Agent
func (c *Context) UserAgent() string {
	return c.ginCtx.GetHeader("User-Agent")
}

// Method 获取请求方法
func (c *Context) Method() string {
	return c.ginCtx.Request.Method
}

// Path 获取请求路径
func (c *Context) Path() string {
	return c.ginCtx.Request.URL.Path
}

// StatusCode 已写回的响应状态码
func (c *Context) StatusCode() int {
	return c.ginCtx.Writer.Status()
}

// Set 设置上下文值
func (c *Context) Set(key string, value interface{}) {
	c.ginCtx.Set(key, value)
}

// Get 获取上下文值
func (c *Context) Get(key string) (interface{}, bool) {
	return c.ginCtx.Get(key)
}

// GetString 获取字符串类型的上下文值
func (c *Context) GetString(key string) string {
	return c.ginCtx.GetString(key)
}

// UserID 认证中间件写入的用户 ID
func (c *Context) UserID() string {
	return c.ginCtx.GetString(KeyUserID)
}

// Next 在中间件内部执行后续处理，用于统计耗时
func (c *Context) Next() {
	c.ginCtx.Next()
}

// Abort 中止请求处理
func (c *Context) Abort() {
	c.ginCtx.Abort()
}

// AbortWithStatus 中止请求并设置状态码
func (c *Context) AbortWithStatus(code int) {
	c.ginCtx.AbortWithStatus(code)
}

// AbortWithResponse 中止请求并返回统一结构
func (c *Context) AbortWithResponse(status, code int, message string) {
	c.ginCtx.AbortWithStatusJSON(status, NewResponse(code, message, nil))
}

// IsAborted 检查请求是否已被中止
func (c *Context) IsAborted() bool {
	return c.ginCtx.IsAborted()
}

// Request 获取原始 http.Request（谨慎使用）
func (c *Context) Request() *http.Request {
	return c.ginCtx.Request
}
