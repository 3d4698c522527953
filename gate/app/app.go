package app

import (
	"chinitsu/common/config"
	"chinitsu/common/http"
	"chinitsu/common/log"
	"chinitsu/common/utils"
	"chinitsu/core/container"
	"chinitsu/gate/api"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const limiterIdle = 10 * time.Minute

// NewServer 组装 HTTP 服务器，路由和中间件都在这里注册
func NewServer(conf *config.Config, c *container.QuizContainer) *http.HttpServer {
	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(conf.GinMode),
	)

	limiter := utils.NewKeyedRateLimiter(conf.RateLimit.Rate, conf.RateLimit.Burst)
	handler := api.NewHandler(c.QuizService, conf.JwtConf, c.Searcher)
	api.RegisterRoutes(server, handler, limiter)

	// 定期清理长时间没有请求的限流桶
	go func() {
		ticker := time.NewTicker(limiterIdle)
		defer ticker.Stop()
		for range ticker.C {
			if n := limiter.Evict(limiterIdle); n > 0 {
				log.Debug("清理限流桶: %d", n)
			}
		}
	}()
	return server
}

func Run(ctx context.Context) error {
	conf := config.Current()

	c, err := container.NewQuizContainer(ctx, conf)
	if err != nil {
		return fmt.Errorf("容器初始化失败: %w", err)
	}
	defer c.Close()

	server := NewServer(conf, c)

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		errCh <- server.Start()
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sig)

	select {
	case <-ctx.Done():
		stop()
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP 服务器启动失败: %w", err)
		}
		return nil
	case s := <-sig:
		stop()
		log.Info("收到信号 %v，服务停止", s)
		return nil
	}
}
