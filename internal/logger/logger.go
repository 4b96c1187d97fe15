package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	global *zerolog.Logger
	closer io.Closer
)

// Init 初始化全局 zerolog 日志。
//
// - level："debug" | "info" | "warn" | "error"（其他值按 info 处理）
// - file：日志文件路径；为空时丢弃输出
//
// 注意：TUI 占用终端，因此日志从不写到 stdout/stderr。
func Init(level, file string) error {
	var out io.Writer = io.Discard
	var c io.Closer

	if strings.TrimSpace(file) != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		out = zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: "2006-01-02 15:04:05"}
		c = f
	}

	l := zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	global = &l
	closer = c
	return nil
}

// Set 替换全局 logger（测试用：写入 buffer 再断言）。
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = &l
}

// Get 返回全局 logger；未初始化时返回丢弃一切的 logger。
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		l := zerolog.New(io.Discard)
		global = &l
	}
	return global
}

// Close 关闭日志文件（若有）。
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	l := zerolog.New(io.Discard)
	global = &l
	return err
}

// ParseLevel 解析日志级别字符串。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
