package dictionary

import (
	"context"
	"errors"
	"testing"

	"github.com/miajio/wordict/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, strategy Strategy, words ...string) *Engine {
	cfg := Default()
	cfg.Strategy = strategy
	e, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	for _, w := range words {
		require.NoError(t, e.AddWord(w))
	}
	return e
}

var allStrategies = []Strategy{StrategyDFS, StrategyBFS, StrategyBucket}

func TestSeedScenario(t *testing.T) {
	cases := []struct {
		pattern string
		want    bool
	}{
		{"pad", false},
		{"bad", true},
		{".ad", true},
		{"b..", true},
		{"..", false},
		{"", false},
	}

	for _, s := range allStrategies {
		e := newEngine(t, s, "bad", "dad", "mad")
		for _, c := range cases {
			got, err := e.Search(c.pattern)
			require.NoError(t, err)
			assert.Equal(t, c.want, got, "%s: pattern %q", s, c.pattern)
		}
	}
}

func TestEmptyDictionary(t *testing.T) {
	for _, s := range allStrategies {
		e := newEngine(t, s)
		for _, p := range []string{"", "a", "..", "abc"} {
			got, err := e.Search(p)
			require.NoError(t, err)
			assert.False(t, got, "%s: pattern %q", s, p)
		}
	}
}

func TestCacheInvalidatedOnInsert(t *testing.T) {
	e := newEngine(t, StrategyDFS, "bad", "cede")

	for i := 0; i < 2; i++ {
		got, err := e.Search("b.d.")
		require.NoError(t, err)
		assert.False(t, got)
		e.cache.wait()
	}

	require.NoError(t, e.AddWord("bide"))
	got, err := e.Search("b.d.")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCacheHits(t *testing.T) {
	e := newEngine(t, StrategyDFS, "bad", "dad")

	_, err := e.Search(".ad")
	require.NoError(t, err)
	e.cache.wait()

	_, err = e.Search(".ad")
	require.NoError(t, err)

	st := e.Stats()
	assert.Equal(t, int64(2), st.Searches)
	assert.Equal(t, int64(1), st.CacheHits)
}

func TestFilters(t *testing.T) {
	e := newEngine(t, StrategyDFS, "bad")

	// no stored word of length 2
	got, err := e.Search("ba")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, int64(1), e.Stats().Filtered)
}

func TestNoCache(t *testing.T) {
	cfg := Default()
	cfg.CacheSize = 0
	e, err := New(cfg)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.AddWord("bad"))
	got, err := e.Search("b.d")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Nil(t, e.cache)
}

func TestInvalidInput(t *testing.T) {
	e := newEngine(t, StrategyDFS, "ok")

	err := e.AddWord("b.d")
	assert.ErrorIs(t, err, ErrInvalidInput)
	err = e.AddWord("Bad")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Search("B..")
	var ie *trie.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 0, ie.Position)

	st := e.Stats()
	assert.Equal(t, 1, st.Words)
	assert.Equal(t, uint64(1), st.Generation)
}

func TestIdempotentAdd(t *testing.T) {
	e := newEngine(t, StrategyBucket)

	added, err := e.AddWords(SourceFile, "word", "word", "word")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, uint64(1), e.Stats().Generation)

	entries, err := e.Match("w...", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].Frequency)
	assert.Equal(t, SourceFile, entries[0].Source)
}

func TestMatch(t *testing.T) {
	e := newEngine(t, StrategyDFS, "mad", "bad", "dad", "bed")

	entries, err := e.Match(".ad", 0)
	require.NoError(t, err)
	var words []string
	for _, en := range entries {
		words = append(words, en.Word)
	}
	assert.Equal(t, []string{"bad", "dad", "mad"}, words)

	entries, err = e.Match("...", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMatchAllStrategies(t *testing.T) {
	for _, s := range allStrategies {
		e := newEngine(t, s, "mad", "bad", "dad", "bed", "bade")

		entries, err := e.Match(".ad", 0)
		require.NoError(t, err)
		var words []string
		for _, en := range entries {
			words = append(words, en.Word)
		}
		assert.Equal(t, []string{"bad", "dad", "mad"}, words, s)

		entries, err = e.Match("xyz", 0)
		require.NoError(t, err)
		assert.Empty(t, entries, s)

		_, err = e.Match("B..", 0)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}

func TestMatchBucketAlphabetOrder(t *testing.T) {
	cfg := Default()
	cfg.Strategy = StrategyBucket
	cfg.Symbols = "TGCA"
	cfg.Wildcard = 'N'
	e, err := New(cfg)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.AddWords(SourceAPI, "AC", "GC", "TC", "CA")
	require.NoError(t, err)

	entries, err := e.Match("NC", 0)
	require.NoError(t, err)
	var words []string
	for _, en := range entries {
		words = append(words, en.Word)
	}
	assert.Equal(t, []string{"TC", "GC", "AC"}, words)

	entries, err = e.Match("NC", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "TC", entries[0].Word)
	assert.Equal(t, "GC", entries[1].Word)
}

func TestSearchAll(t *testing.T) {
	e := newEngine(t, StrategyDFS, "bad", "dad", "mad")

	res, err := e.SearchAll(context.Background(), []string{"pad", "bad", ".ad", ".."}, 2)
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Pattern: "pad", Found: false},
		{Pattern: "bad", Found: true},
		{Pattern: ".ad", Found: true},
		{Pattern: "..", Found: false},
	}, res)

	_, err = e.SearchAll(context.Background(), []string{"bad", "B"}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.SearchAll(ctx, []string{"bad"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomAlphabetEngine(t *testing.T) {
	cfg := Default()
	cfg.Symbols = "ACGT"
	cfg.Wildcard = 'N'
	e, err := New(cfg)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.AddWord("GATTACA"))
	got, err := e.Search("GNTTNCN")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyDFS, s)

	s, err = ParseStrategy(" Bucket ")
	require.NoError(t, err)
	assert.Equal(t, StrategyBucket, s)

	_, err = ParseStrategy("regex")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	cfg := Default()
	cfg.Strategy = "regex"
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestClosed(t *testing.T) {
	e, err := New(Default())
	require.NoError(t, err)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.ErrorIs(t, e.AddWord("bad"), ErrClosed)
	_, err = e.Search("bad")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = e.Match("bad", 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLearnFromText(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the gse dictionary")
	}
	e := newEngine(t, StrategyDFS, "bad")

	learned, err := e.LearnFromText("bad dad, Mad mad!")
	require.NoError(t, err)
	assert.Contains(t, learned, "dad")
	assert.Contains(t, learned, "mad")
	assert.NotContains(t, learned, "bad")

	got, err := e.Search("m.d")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = e.Search("Mad")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, got)
}
