package api

import (
	"runtime"
	"time"

	"chinitsu/common/http"
	"chinitsu/common/log"

	"github.com/shirou/gopsutil/v3/mem"
)

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "gate",
	})
	return nil
}

// HealthHandler 健康检查，带主机内存和听牌缓存命中率
func (h *Handler) HealthHandler(c *http.Context) error {
	status := map[string]interface{}{
		"healthy":    true,
		"goroutines": runtime.NumGoroutine(),
		"timestamp":  time.Now().Unix(),
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn("读取主机内存失败: %v", err)
	} else {
		status["memory"] = map[string]interface{}{
			"total":       vm.Total,
			"available":   vm.Available,
			"usedPercent": vm.UsedPercent,
		}
	}
	if h.cacheInfo != nil {
		status["waitCache"] = h.cacheInfo()
	}

	c.Success(status)
	return nil
}
