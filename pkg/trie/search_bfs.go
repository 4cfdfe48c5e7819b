package trie

// SearchBFS 按层展开的通配符查询, 结果与 Search 一致
// 以队列宽度换取递归深度
func (t *Trie) SearchBFS(pattern string) (bool, error) {
	if err := t.alphabet.ValidatePattern(pattern); err != nil {
		return false, err
	}

	frontier := []*Node{t.root}
	next := make([]*Node, 0, 8)
	for pos := 0; pos < len(pattern); pos++ {
		b := pattern[pos]
		next = next[:0]
		for _, node := range frontier {
			if b != t.alphabet.wildcard {
				idx, _ := t.alphabet.Index(b)
				if child := node.Child(idx); child != nil {
					next = append(next, child)
				}
				continue
			}
			for i := range node.children {
				if child := node.Child(i); child != nil {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return false, nil
		}
		frontier, next = next, frontier
	}

	for _, node := range frontier {
		if node.Terminal() {
			return true, nil
		}
	}
	return false, nil
}
