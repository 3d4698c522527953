package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 时（单元测试、命令行工具）也能直接打日志
var logger = newLogger(os.Stdout, "chinitsu")

func newLogger(w io.Writer, appName string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		// 调用者信息跳过本包的包装函数
		ReportCaller: true,
		CallerOffset: 1,
	})
	return l
}

// InitLog 初始化全局日志
// 使用 stdout 而不是 stderr，避免 IDE 控制台把所有日志标红
func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	logger.SetLevel(parseLevel(logLevel))
}

// SetOutput 重定向输出，drill 等交互命令用来屏蔽日志
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 运行时调整级别，配置热更新时调用
func SetLevel(logLevel string) {
	logger.SetLevel(parseLevel(logLevel))
}

func parseLevel(logLevel string) log.Level {
	// 默认为 info 级别
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}
