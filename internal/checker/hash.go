package checker

// HashTableChecker stores logins in a Go map used as a set.
type HashTableChecker struct {
	stats
	logins map[string]struct{}
}

func NewHashTable() *HashTableChecker {
	return &HashTableChecker{logins: make(map[string]struct{})}
}

func (c *HashTableChecker) Name() string { return HashTable }

func (c *HashTableChecker) Add(login string) bool {
	c.comparisons++
	if _, ok := c.logins[login]; ok {
		return false
	}
	c.logins[login] = struct{}{}
	c.count++
	return true
}

func (c *HashTableChecker) Exists(login string) bool {
	c.comparisons++
	_, ok := c.logins[login]
	return ok
}
