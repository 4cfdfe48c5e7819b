package trie

import "sync/atomic"

// Node 前缀树节点
// 子节点槽位只会从 nil 变为非 nil, terminal 只会从 false 变为 true
type Node struct {
	children []atomic.Pointer[Node] // 子节点, 下标为符号在字母表中的位置
	terminal atomic.Bool            // 是否是一个词的结尾
}

// newNode 创建一个新的前缀树节点
func newNode(size int) *Node {
	return &Node{children: make([]atomic.Pointer[Node], size)}
}

// Child 获取下标 i 对应的子节点
func (n *Node) Child(i int) *Node {
	return n.children[i].Load()
}

// Terminal 是否是一个词的结尾
func (n *Node) Terminal() bool {
	return n.terminal.Load()
}

// childOrCreate 获取子节点, 不存在时创建
// 只能在持有写锁时调用
func (n *Node) childOrCreate(i int) (*Node, bool) {
	if c := n.children[i].Load(); c != nil {
		return c, false
	}
	c := newNode(len(n.children))
	n.children[i].Store(c)
	return c, true
}
