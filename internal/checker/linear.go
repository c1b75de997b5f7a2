package checker

// ListLinearSearchChecker keeps logins in insertion order and scans them.
// Add and Exists are O(n).
type ListLinearSearchChecker struct {
	stats
	logins []string
}

func NewListLinearSearch() *ListLinearSearchChecker {
	return &ListLinearSearchChecker{}
}

func (c *ListLinearSearchChecker) Name() string { return ListLinearSearch }

func (c *ListLinearSearchChecker) Add(login string) bool {
	if c.scan(login) {
		return false
	}
	c.logins = append(c.logins, login)
	c.count++
	return true
}

func (c *ListLinearSearchChecker) Exists(login string) bool {
	return c.scan(login)
}

func (c *ListLinearSearchChecker) scan(login string) bool {
	for _, l := range c.logins {
		c.comparisons++
		if l == login {
			return true
		}
	}
	return false
}
