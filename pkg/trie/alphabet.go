package trie

import (
	"errors"
	"fmt"
)

// DefaultWildcard 默认通配符
const DefaultWildcard byte = '.'

var (
	// ErrInvalidInput 输入包含字母表之外的符号
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAlphabet 字母表定义非法
	ErrInvalidAlphabet = errors.New("invalid alphabet")
)

// InvalidInputError 非法输入错误, 记录第一个非法符号的位置
type InvalidInputError struct {
	Input    string // 原始输入
	Position int    // 非法符号下标
	Symbol   byte   // 非法符号
	Reason   string // 原因
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: symbol %q at position %d %s", e.Input, e.Symbol, e.Position, e.Reason)
}

// Is 使 errors.Is(err, ErrInvalidInput) 成立
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Alphabet 字母表
// 每个符号为单字节, 通配符不属于字母表
type Alphabet struct {
	symbols  string
	wildcard byte
	index    [256]int16 // 符号 -> 下标, -1 表示不在字母表内
}

// Lowercase 默认字母表 a-z, 通配符为 '.'
var Lowercase = MustAlphabet("abcdefghijklmnopqrstuvwxyz", DefaultWildcard)

// NewAlphabet 创建字母表
func NewAlphabet(symbols string, wildcard byte) (*Alphabet, error) {
	if len(symbols) == 0 || len(symbols) > 255 {
		return nil, fmt.Errorf("%w: size %d out of range [1, 255]", ErrInvalidAlphabet, len(symbols))
	}
	ab := &Alphabet{symbols: symbols, wildcard: wildcard}
	for i := range ab.index {
		ab.index[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		b := symbols[i]
		if b == wildcard {
			return nil, fmt.Errorf("%w: wildcard %q is also a symbol", ErrInvalidAlphabet, wildcard)
		}
		if ab.index[b] != -1 {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, b)
		}
		ab.index[b] = int16(i)
	}
	return ab, nil
}

// MustAlphabet 创建字母表, 失败时 panic
func MustAlphabet(symbols string, wildcard byte) *Alphabet {
	ab, err := NewAlphabet(symbols, wildcard)
	if err != nil {
		panic(err)
	}
	return ab
}

// Size 字母表大小, 即节点的最大分支数
func (a *Alphabet) Size() int { return len(a.symbols) }

// Symbols 字母表符号
func (a *Alphabet) Symbols() string { return a.symbols }

// Wildcard 通配符
func (a *Alphabet) Wildcard() byte { return a.wildcard }

// Symbol 下标对应的符号
func (a *Alphabet) Symbol(i int) byte { return a.symbols[i] }

// Index 符号对应的下标
func (a *Alphabet) Index(b byte) (int, bool) {
	i := a.index[b]
	return int(i), i >= 0
}

// ValidateWord 校验待插入的词, 词中不允许出现通配符
func (a *Alphabet) ValidateWord(word string) error {
	return a.validate(word, false)
}

// ValidatePattern 校验查询模式, 允许通配符
func (a *Alphabet) ValidatePattern(pattern string) error {
	return a.validate(pattern, true)
}

func (a *Alphabet) validate(s string, allowWildcard bool) error {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == a.wildcard {
			if allowWildcard {
				continue
			}
			return &InvalidInputError{Input: s, Position: i, Symbol: b, Reason: "wildcard is not allowed in a word"}
		}
		if a.index[b] < 0 {
			return &InvalidInputError{Input: s, Position: i, Symbol: b, Reason: "is not in the alphabet"}
		}
	}
	return nil
}

// HasWildcard 模式中是否包含通配符
func (a *Alphabet) HasWildcard(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == a.wildcard {
			return true
		}
	}
	return false
}
