package dictionary

import (
	"strconv"

	"github.com/dgraph-io/ristretto/v2"
)

// patternCache 查询结果缓存
// key 带有写入代数, 插入新词后旧的结果不会再被命中
type patternCache struct {
	c *ristretto.Cache[string, bool]
}

func newPatternCache(size int64) (*patternCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, bool]{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
		// 每条结果计 1, MaxCost 即条数上限
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &patternCache{c: c}, nil
}

func cacheKey(generation uint64, pattern string) string {
	return strconv.FormatUint(generation, 36) + ":" + pattern
}

func (p *patternCache) get(key string) (found, ok bool) {
	if p == nil {
		return false, false
	}
	return p.c.Get(key)
}

func (p *patternCache) set(key string, found bool) {
	if p == nil {
		return
	}
	p.c.Set(key, found, 1)
}

// wait 等待缓冲的写入生效
func (p *patternCache) wait() {
	if p != nil {
		p.c.Wait()
	}
}

func (p *patternCache) close() {
	if p != nil {
		p.c.Close()
	}
}
