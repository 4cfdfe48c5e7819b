package trie

import (
	"sync"
	"sync/atomic"
)

// Trie 前缀树
// 单写多读: Insert 之间互斥, 查询不加锁
type Trie struct {
	alphabet *Alphabet
	root     *Node

	mu    sync.Mutex
	words atomic.Int64
	nodes atomic.Int64
}

// New 创建前缀树, ab 为 nil 时使用 Lowercase
func New(ab *Alphabet) *Trie {
	if ab == nil {
		ab = Lowercase
	}
	t := &Trie{
		alphabet: ab,
		root:     newNode(ab.Size()),
	}
	t.nodes.Store(1)
	return t
}

// Alphabet 字母表
func (t *Trie) Alphabet() *Alphabet { return t.alphabet }

// Root 根节点
func (t *Trie) Root() *Node { return t.root }

// Len 已插入的不同词的数量
func (t *Trie) Len() int { return int(t.words.Load()) }

// Nodes 节点数量, 包含根节点
func (t *Trie) Nodes() int { return int(t.nodes.Load()) }

// Insert 插入一个词
// 校验在修改之前完成, 非法输入不会改变前缀树
// added 表示该词此前不存在
func (t *Trie) Insert(word string) (added bool, err error) {
	if err := t.alphabet.ValidateWord(word); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for i := 0; i < len(word); i++ {
		idx, _ := t.alphabet.Index(word[i])
		child, created := node.childOrCreate(idx)
		if created {
			t.nodes.Add(1)
		}
		node = child
	}

	if node.terminal.Load() {
		return false, nil
	}
	node.terminal.Store(true)
	t.words.Add(1)
	return true, nil
}

// Contains 精确查询, 不处理通配符
func (t *Trie) Contains(word string) bool {
	node := t.root
	for i := 0; i < len(word); i++ {
		idx, ok := t.alphabet.Index(word[i])
		if !ok {
			return false
		}
		if node = node.Child(idx); node == nil {
			return false
		}
	}
	return node.Terminal()
}
