package xlog

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config 日志配置
//
// Output:
//
//	stderr
//	stdout
//	file:///path/log
type Config struct {
	Level  string // 默认 info
	Output string // 默认 stderr
}

// New 根据配置创建日志
// 返回的 io.Closer 用于关闭日志文件, 非文件输出时为空操作
func New(c Config) (zerolog.Logger, io.Closer, error) {
	if c.Level == "" {
		c.Level = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	w, closer, err := openOutput(c.Output)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return logger, closer, nil
}

func openOutput(out string) (io.Writer, io.Closer, error) {
	switch out {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}

	u, err := url.Parse(out)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log output %q: %w", out, err)
	}
	if u.Scheme != "file" || u.Path == "" {
		return nil, nil, fmt.Errorf("invalid log output %q: unsupported scheme", out)
	}
	f, err := os.OpenFile(u.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log output %q: %w", out, err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
