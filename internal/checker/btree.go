package checker

import "github.com/google/btree"

const btreeDegree = 32

// BTreeChecker keeps logins in an in-memory B-tree. Every call of the
// ordering function counts as one comparison.
type BTreeChecker struct {
	stats
	tree *btree.BTreeG[string]
}

func NewBTree() *BTreeChecker {
	c := &BTreeChecker{}
	c.tree = btree.NewG(btreeDegree, func(a, b string) bool {
		c.comparisons++
		return a < b
	})
	return c
}

func (c *BTreeChecker) Name() string { return BTree }

func (c *BTreeChecker) Add(login string) bool {
	if _, replaced := c.tree.ReplaceOrInsert(login); replaced {
		return false
	}
	c.count++
	return true
}

func (c *BTreeChecker) Exists(login string) bool {
	return c.tree.Has(login)
}
