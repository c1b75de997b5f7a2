package checker

type trieNode struct {
	children map[byte]*trieNode
	terminal bool
}

// TrieChecker stores logins in a byte-wise prefix tree. Each step from a
// node to a child counts as one comparison; the root visit counts as one
// more so an empty login is not free.
type TrieChecker struct {
	stats
	root trieNode
}

func NewTrie() *TrieChecker {
	return &TrieChecker{}
}

func (c *TrieChecker) Name() string { return Trie }

func (c *TrieChecker) Add(login string) bool {
	c.comparisons++
	n := &c.root
	for i := 0; i < len(login); i++ {
		c.comparisons++
		next, ok := n.children[login[i]]
		if !ok {
			if n.children == nil {
				n.children = make(map[byte]*trieNode)
			}
			next = &trieNode{}
			n.children[login[i]] = next
		}
		n = next
	}
	if n.terminal {
		return false
	}
	n.terminal = true
	c.count++
	return true
}

func (c *TrieChecker) Exists(login string) bool {
	c.comparisons++
	n := &c.root
	for i := 0; i < len(login); i++ {
		c.comparisons++
		next, ok := n.children[login[i]]
		if !ok {
			return false
		}
		n = next
	}
	return n.terminal
}
