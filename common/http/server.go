package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chinitsu/common/log"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

// WithPort 设置端口
func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置 gin 运行模式，非法值按 release 处理
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		switch mode {
		case gin.DebugMode, gin.TestMode:
			gin.SetMode(mode)
		default:
			gin.SetMode(gin.ReleaseMode)
		}
	}
}

// NewHttpServer 创建 HTTP 服务器
func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{
		engine: gin.New(),
		port:   8080,
	}

	// 应用配置选项
	for _, opt := range opts {
		opt(server)
	}

	// 访问日志由 LoggerMiddleware 负责
	server.engine.Use(gin.Recovery())

	// 构造时创建，Start 和 Shutdown 在不同协程调用
	server.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", server.port),
		Handler:           server.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

// wrapHandler 包装处理函数
func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			// 统一错误处理：业务错误按自身状态码返回，其余一律 500
			var bizErr *Error
			if errors.As(err, &bizErr) {
				ctx.AbortWithResponse(bizErr.Status, bizErr.Code, bizErr.Message)
				return
			}
			log.Error("请求处理失败: %s %s, err=%v", ctx.Method(), ctx.Path(), err)
			ctx.InternalServerError(MsgServerError)
		}
	}
}

// wrapMiddleware 包装中间件
func (s *HttpServer) wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			var bizErr *Error
			if errors.As(err, &bizErr) {
				ctx.AbortWithResponse(bizErr.Status, bizErr.Code, bizErr.Message)
				return
			}
			log.Error("中间件执行失败: %s %s, err=%v", ctx.Method(), ctx.Path(), err)
			ctx.InternalServerError(MsgServerError)
			c.Abort()
			return
		}
		// 中间件已经写回响应并中止
		if c.IsAborted() {
			return
		}
		c.Next()
	}
}

// 路由注册方法

// GET 注册 GET 路由
func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

// POST 注册 POST 路由
func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

// 路由组

// Group 创建路由组
func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)

	// 添加中间件
	for _, middleware := range middlewares {
		ginGroup.Use(s.wrapMiddleware(middleware))
	}

	return &RouterGroup{
		group:  ginGroup,
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

// GET 路由组 GET 方法
func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, rg.server.wrapHandler(handler))
}

// POST 路由组 POST 方法
func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, rg.server.wrapHandler(handler))
}

// Use 添加中间件到路由组
func (rg *RouterGroup) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		rg.group.Use(rg.server.wrapMiddleware(middleware))
	}
}

// Group 创建子路由组
func (rg *RouterGroup) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := rg.group.Group(relativePath)

	// 添加中间件
	for _, middleware := range middlewares {
		ginGroup.Use(rg.server.wrapMiddleware(middleware))
	}

	return &RouterGroup{
		group:  ginGroup,
		server: rg.server,
	}
}

// 中间件管理

// Use 添加全局中间件
func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(s.wrapMiddleware(middleware))
	}
}

// 服务器控制

// Start 启动服务器
func (s *HttpServer) Start() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown 优雅关闭服务器
func (s *HttpServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// ServeHTTP 实现 http.Handler，测试时直接配合 httptest 使用
func (s *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// GetPort 获取端口
func (s *HttpServer) GetPort() int {
	return s.port
}
