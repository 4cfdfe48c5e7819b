package trie

// Search 通配符查询
// 存在与 pattern 等长且在每个非通配位置都相同的词时返回 true
func (t *Trie) Search(pattern string) (bool, error) {
	if err := t.alphabet.ValidatePattern(pattern); err != nil {
		return false, err
	}
	return t.match(t.root, pattern, 0), nil
}

// match 深度优先匹配, 任一分支成功即返回
func (t *Trie) match(node *Node, pattern string, pos int) bool {
	if pos == len(pattern) {
		return node.Terminal()
	}

	b := pattern[pos]
	if b != t.alphabet.wildcard {
		idx, _ := t.alphabet.Index(b)
		child := node.Child(idx)
		if child == nil {
			return false
		}
		return t.match(child, pattern, pos+1)
	}

	for i := range node.children {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if t.match(child, pattern, pos+1) {
			return true
		}
	}
	return false
}
