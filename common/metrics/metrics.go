package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/arl/statsviz"
)

// Serve 启动 statsviz 运行时监控，页面地址 /debug/statsviz/，阻塞直到出错
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return fmt.Errorf("注册 statsviz 失败: %w", err)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
