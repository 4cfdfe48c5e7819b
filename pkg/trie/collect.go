package trie

// Collect 返回所有匹配 pattern 的词, 按字母表顺序
// limit > 0 时最多返回 limit 个
func (t *Trie) Collect(pattern string, limit int) ([]string, error) {
	if err := t.alphabet.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	c := &collector{t: t, pattern: pattern, limit: limit, buf: make([]byte, len(pattern))}
	c.walk(t.root, 0)
	return c.out, nil
}

type collector struct {
	t       *Trie
	pattern string
	limit   int
	buf     []byte
	out     []string
}

func (c *collector) full() bool {
	return c.limit > 0 && len(c.out) >= c.limit
}

func (c *collector) walk(node *Node, pos int) {
	if pos == len(c.pattern) {
		if node.Terminal() {
			c.out = append(c.out, string(c.buf))
		}
		return
	}

	ab := c.t.alphabet
	b := c.pattern[pos]
	if b != ab.wildcard {
		idx, _ := ab.Index(b)
		if child := node.Child(idx); child != nil {
			c.buf[pos] = b
			c.walk(child, pos+1)
		}
		return
	}

	for i := range node.children {
		if c.full() {
			return
		}
		child := node.Child(i)
		if child == nil {
			continue
		}
		c.buf[pos] = ab.Symbol(i)
		c.walk(child, pos+1)
	}
}
