package bucket

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/miajio/wordict/pkg/kvstore"
	"github.com/miajio/wordict/pkg/trie"
)

// ErrTooLong 词长度超出桶编码范围
var ErrTooLong = errors.New("bucket: word too long")

// Entry 词条
type Entry struct {
	Word      string `json:"word"`      // 词
	Frequency int64  `json:"frequency"` // 插入次数
	Source    string `json:"source"`    // 来源, 如 api / learn / file
}

// Index 按长度分桶的词索引
// key = 2 字节大端长度 + 词, value = Entry 的 JSON
// 查询时只线性扫描长度相同的桶, 单次查询 O(N·L)
type Index struct {
	store    *kvstore.Store
	alphabet *trie.Alphabet
}

// New 创建索引
func New(store *kvstore.Store, ab *trie.Alphabet) *Index {
	if ab == nil {
		ab = trie.Lowercase
	}
	return &Index{store: store, alphabet: ab}
}

func bucketPrefix(n int) []byte {
	p := make([]byte, 2)
	binary.BigEndian.PutUint16(p, uint16(n))
	return p
}

func entryKey(word string) []byte {
	k := make([]byte, 2, 2+len(word))
	binary.BigEndian.PutUint16(k, uint16(len(word)))
	return append(k, word...)
}

// Add 添加词条, 已存在时累加词频
func (x *Index) Add(word, source string) (added bool, err error) {
	if err := x.alphabet.ValidateWord(word); err != nil {
		return false, err
	}
	if len(word) > math.MaxUint16 {
		return false, fmt.Errorf("%w: %d", ErrTooLong, len(word))
	}

	key := entryKey(word)
	err = x.store.Update(func(txn *badger.Txn) error {
		entry := Entry{Word: word, Source: source}
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			added = true
		default:
			return err
		}

		entry.Frequency++
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return false, fmt.Errorf("bucket add %q: %w", word, err)
	}
	return added, nil
}

// Search 在长度相同的桶内逐个比较, 通配符匹配任意符号
func (x *Index) Search(pattern string) (bool, error) {
	if err := x.alphabet.ValidatePattern(pattern); err != nil {
		return false, err
	}
	if len(pattern) > math.MaxUint16 {
		return false, nil
	}

	found := false
	err := x.store.ScanKeys(bucketPrefix(len(pattern)), func(key []byte) (bool, error) {
		if x.matches(key[2:], pattern) {
			found = true
			return false, nil
		}
		return true, nil
	})
	return found, err
}

// Entries 返回匹配 pattern 的词条, limit > 0 时最多返回 limit 个
func (x *Index) Entries(pattern string, limit int) ([]Entry, error) {
	if err := x.alphabet.ValidatePattern(pattern); err != nil {
		return nil, err
	}
	if len(pattern) > math.MaxUint16 {
		return nil, nil
	}

	var out []Entry
	err := x.store.Scan(bucketPrefix(len(pattern)), func(key, value []byte) (bool, error) {
		if !x.matches(key[2:], pattern) {
			return true, nil
		}
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			return false, fmt.Errorf("bucket decode %q: %w", key[2:], err)
		}
		out = append(out, e)
		return limit <= 0 || len(out) < limit, nil
	})
	return out, err
}

// Entry 获取单个词条
func (x *Index) Entry(word string) (Entry, error) {
	var e Entry
	if len(word) > math.MaxUint16 {
		return e, kvstore.ErrNotFound
	}
	val, err := x.store.Get(entryKey(word))
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(val, &e)
	return e, err
}

func (x *Index) matches(word []byte, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	wc := x.alphabet.Wildcard()
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != wc && pattern[i] != word[i] {
			return false
		}
	}
	return true
}
