package checker

// SortedArrayBinarySearchChecker keeps logins sorted and bisects them.
// Exists is O(log n); Add is O(log n) comparisons plus O(n) shifting.
type SortedArrayBinarySearchChecker struct {
	stats
	logins []string
}

func NewSortedArrayBinarySearch() *SortedArrayBinarySearchChecker {
	return &SortedArrayBinarySearchChecker{}
}

func (c *SortedArrayBinarySearchChecker) Name() string { return SortedArrayBinarySearch }

func (c *SortedArrayBinarySearchChecker) Add(login string) bool {
	pos, found := c.search(login)
	if found {
		return false
	}
	c.logins = append(c.logins, "")
	copy(c.logins[pos+1:], c.logins[pos:])
	c.logins[pos] = login
	c.count++
	return true
}

func (c *SortedArrayBinarySearchChecker) Exists(login string) bool {
	_, found := c.search(login)
	return found
}

// search returns the index of login, or the index it would be inserted at.
// Every probed element counts as one comparison.
func (c *SortedArrayBinarySearchChecker) search(login string) (int, bool) {
	left, right := 0, len(c.logins)-1
	for left <= right {
		c.comparisons++
		mid := left + (right-left)/2
		switch v := c.logins[mid]; {
		case v == login:
			return mid, true
		case v < login:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return left, false
}
