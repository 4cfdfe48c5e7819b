package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Strategy 查询策略
type Strategy string

const (
	StrategyDFS    Strategy = "dfs"    // 前缀树深度优先, 默认
	StrategyBFS    Strategy = "bfs"    // 前缀树按层展开
	StrategyBucket Strategy = "bucket" // 按长度分桶线性扫描
)

// ErrUnknownStrategy 未知的查询策略
var ErrUnknownStrategy = errors.New("unknown strategy")

// ParseStrategy 解析查询策略, 空字符串为 dfs
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyDFS:
		return StrategyDFS, nil
	case StrategyBFS:
		return StrategyBFS, nil
	case StrategyBucket:
		return StrategyBucket, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Config 词典配置
type Config struct {
	Symbols           string   // 字母表, 默认 a-z
	Wildcard          byte     // 通配符, 默认 '.'
	Strategy          Strategy // 查询策略
	CacheSize         int64    // 缓存的查询结果数量上限, 0 表示不缓存
	ExpectedWords     uint     // 布隆过滤器预估词数
	FalsePositiveRate float64  // 布隆过滤器误判率
	Logger            zerolog.Logger
}

// Default 默认配置
func Default() Config {
	return Config{
		Symbols:           "abcdefghijklmnopqrstuvwxyz",
		Wildcard:          '.',
		Strategy:          StrategyDFS,
		CacheSize:         1 << 14,
		ExpectedWords:     1 << 17,
		FalsePositiveRate: 0.001,
		Logger:            zerolog.Nop(),
	}
}

func (c *Config) normalize() error {
	d := Default()
	if c.Symbols == "" {
		c.Symbols = d.Symbols
	}
	if c.Wildcard == 0 {
		c.Wildcard = d.Wildcard
	}
	s, err := ParseStrategy(string(c.Strategy))
	if err != nil {
		return err
	}
	c.Strategy = s
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.ExpectedWords == 0 {
		c.ExpectedWords = d.ExpectedWords
	}
	if c.FalsePositiveRate <= 0 || c.FalsePositiveRate >= 1 {
		c.FalsePositiveRate = d.FalsePositiveRate
	}
	return nil
}
