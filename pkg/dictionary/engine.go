package dictionary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-ego/gse"
	"github.com/miajio/wordict/pkg/bucket"
	"github.com/miajio/wordict/pkg/kvstore"
	"github.com/miajio/wordict/pkg/trie"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrClosed 词典已关闭
var ErrClosed = errors.New("dictionary: closed")

// ErrInvalidInput 同 trie.ErrInvalidInput
var ErrInvalidInput = trie.ErrInvalidInput

// 词条来源
const (
	SourceAPI   = "api"
	SourceLearn = "learn"
	SourceFile  = "file"
)

// Engine 通配符词典
// 写操作互斥, 读操作之间可并发
type Engine struct {
	cfg      Config
	alphabet *trie.Alphabet
	trie     *trie.Trie     // 前缀树
	store    *kvstore.Store // 内存存储
	index    *bucket.Index  // 按长度分桶的词条索引
	cache    *patternCache  // 查询结果缓存, 可能为 nil
	log      zerolog.Logger

	mu         sync.RWMutex
	bloom      *bloom.BloomFilter // 精确查询的否定过滤
	lengths    *bitset.BitSet     // 已存在的词长度
	generation uint64             // 每插入一个新词加一

	segOnce   sync.Once
	segmenter gse.Segmenter // 分词器, 首次学习时初始化
	segErr    error

	closed    atomic.Bool
	searches  atomic.Int64
	cacheHits atomic.Int64
	filtered  atomic.Int64
}

// New 创建词典
func New(cfg Config) (*Engine, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	ab, err := trie.NewAlphabet(cfg.Symbols, cfg.Wildcard)
	if err != nil {
		return nil, err
	}

	opt := kvstore.InMemory()
	opt.Logger = cfg.Logger
	store, err := kvstore.Open(opt)
	if err != nil {
		return nil, fmt.Errorf("open store fail: %w", err)
	}

	cache, err := newPatternCache(cfg.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create cache fail: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		alphabet: ab,
		trie:     trie.New(ab),
		store:    store,
		index:    bucket.New(store, ab),
		cache:    cache,
		log:      cfg.Logger.With().Str("log_type", "dictionary").Logger(),
		bloom:    bloom.NewWithEstimates(cfg.ExpectedWords, cfg.FalsePositiveRate),
		lengths:  bitset.New(64),
	}
	e.log.Debug().
		Str("strategy", string(cfg.Strategy)).
		Int("alphabet_size", ab.Size()).
		Int64("cache_size", cfg.CacheSize).
		Msg("dictionary created")
	return e, nil
}

// Alphabet 字母表
func (e *Engine) Alphabet() *trie.Alphabet { return e.alphabet }

// Strategy 查询策略
func (e *Engine) Strategy() Strategy { return e.cfg.Strategy }

// AddWord 添加一个新词到词典
func (e *Engine) AddWord(word string) error {
	_, err := e.addWord(word, SourceAPI)
	return err
}

// AddWords 批量添加, 遇到第一个错误即返回
func (e *Engine) AddWords(source string, words ...string) (added int, err error) {
	for _, w := range words {
		ok, err := e.addWord(w, source)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// addWord 先写索引再写前缀树, 校验失败时两者都不会改变
func (e *Engine) addWord(word, source string) (bool, error) {
	if e.closed.Load() {
		return false, ErrClosed
	}
	if err := e.alphabet.ValidateWord(word); err != nil {
		e.log.Warn().Err(err).Str("op_type", "add").Msg("invalid word")
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return false, ErrClosed
	}

	if _, err := e.index.Add(word, source); err != nil {
		return false, err
	}
	added, err := e.trie.Insert(word)
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}

	e.bloom.AddString(word)
	e.lengths.Set(uint(len(word)))
	e.generation++

	e.log.Debug().Str("op_type", "add").Str("word", word).Str("source", source).Msg("word added")
	return true, nil
}

// Search 通配符查询
func (e *Engine) Search(pattern string) (bool, error) {
	if e.closed.Load() {
		return false, ErrClosed
	}
	if err := e.alphabet.ValidatePattern(pattern); err != nil {
		e.log.Warn().Err(err).Str("op_type", "search").Msg("invalid pattern")
		return false, err
	}
	e.searches.Add(1)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return false, ErrClosed
	}

	if !e.lengths.Test(uint(len(pattern))) {
		e.filtered.Add(1)
		return false, nil
	}
	if !e.alphabet.HasWildcard(pattern) && !e.bloom.TestString(pattern) {
		e.filtered.Add(1)
		return false, nil
	}

	key := cacheKey(e.generation, pattern)
	if found, ok := e.cache.get(key); ok {
		e.cacheHits.Add(1)
		return found, nil
	}

	found, err := e.lookup(pattern)
	if err != nil {
		return false, err
	}
	e.cache.set(key, found)
	return found, nil
}

func (e *Engine) lookup(pattern string) (bool, error) {
	switch e.cfg.Strategy {
	case StrategyBFS:
		return e.trie.SearchBFS(pattern)
	case StrategyBucket:
		return e.index.Search(pattern)
	default:
		return e.trie.Search(pattern)
	}
}

// Result 批量查询结果
type Result struct {
	Pattern string `json:"pattern"`
	Found   bool   `json:"found"`
}

// SearchAll 并发批量查询, parallel <= 0 时不限制并发数
// 任一模式非法或 ctx 取消时返回错误
func (e *Engine) SearchAll(ctx context.Context, patterns []string, parallel int) ([]Result, error) {
	results := make([]Result, len(patterns))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := e.Search(p)
			if err != nil {
				return fmt.Errorf("pattern %q: %w", p, err)
			}
			results[i] = Result{Pattern: p, Found: found}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Match 返回匹配 pattern 的词条, 按字母表顺序
func (e *Engine) Match(pattern string, limit int) ([]bucket.Entry, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return nil, ErrClosed
	}

	if e.cfg.Strategy == StrategyBucket {
		return e.matchBucket(pattern, limit)
	}

	words, err := e.trie.Collect(pattern, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]bucket.Entry, 0, len(words))
	for _, w := range words {
		entry, err := e.index.Entry(w)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", w, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// matchBucket 直接扫描同长度的桶, 结果按字母表顺序重新排序后截断
func (e *Engine) matchBucket(pattern string, limit int) ([]bucket.Entry, error) {
	entries, err := e.index.Entries(pattern, 0)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b bucket.Entry) int {
		return e.compareWords(a.Word, b.Word)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []bucket.Entry{}
	}
	return entries, nil
}

// compareWords 按符号在字母表中的位置比较两个词
func (e *Engine) compareWords(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		x, _ := e.alphabet.Index(a[i])
		y, _ := e.alphabet.Index(b[i])
		if x != y {
			return x - y
		}
	}
	return len(a) - len(b)
}

// Stats 统计信息
type Stats struct {
	Strategy   Strategy `json:"strategy"`
	Words      int      `json:"words"`
	Nodes      int      `json:"nodes"`
	Searches   int64    `json:"searches"`
	CacheHits  int64    `json:"cache_hits"`
	Filtered   int64    `json:"filtered"`
	Generation uint64   `json:"generation"`
}

// Stats 获取统计信息
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	gen := e.generation
	e.mu.RUnlock()

	return Stats{
		Strategy:   e.cfg.Strategy,
		Words:      e.trie.Len(),
		Nodes:      e.trie.Nodes(),
		Searches:   e.searches.Load(),
		CacheHits:  e.cacheHits.Load(),
		Filtered:   e.filtered.Load(),
		Generation: gen,
	}
}

// Close 关闭词典
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache.close()
	return e.store.Close()
}
