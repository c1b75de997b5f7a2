package checker

import "math/rand/v2"

const (
	cuckooBucketSize = 4
	cuckooMaxKicks   = 500
	cuckooLoadFactor = 0.95
)

type cuckooBucket [cuckooBucketSize]byte

// cuckoo is a partial-key cuckoo filter with 8-bit fingerprints.
// A zero byte marks an empty slot.
type cuckoo struct {
	buckets []cuckooBucket
	mask    uint64
	count   int
}

func newCuckoo(capacity int) *cuckoo {
	n := uint64(1)
	want := uint64(float64(capacity)/cuckooBucketSize/cuckooLoadFactor) + 1
	for n < want {
		n <<= 1
	}
	return &cuckoo{
		buckets: make([]cuckooBucket, n),
		mask:    n - 1,
	}
}

func (f *cuckoo) indexes(s string) (fp byte, i1, i2 uint64) {
	h, _ := hashPair(s)
	fp = byte(h >> 56)
	if fp == 0 {
		fp = 1
	}
	i1 = h & f.mask
	return fp, i1, f.altIndex(i1, fp)
}

func (f *cuckoo) altIndex(i uint64, fp byte) uint64 {
	return (i ^ (uint64(fp) * 0x5bd1e995)) & f.mask
}

func (f *cuckoo) mayContain(s string) bool {
	fp, i1, i2 := f.indexes(s)
	return f.buckets[i1].has(fp) || f.buckets[i2].has(fp)
}

// insert returns false when the filter is too full. In that case one
// fingerprint may have been evicted and the filter must be rebuilt.
func (f *cuckoo) insert(s string) bool {
	fp, i1, i2 := f.indexes(s)
	if f.buckets[i1].put(fp) || f.buckets[i2].put(fp) {
		f.count++
		return true
	}
	i := i1
	if rand.IntN(2) == 1 {
		i = i2
	}
	for range cuckooMaxKicks {
		slot := rand.IntN(cuckooBucketSize)
		fp, f.buckets[i][slot] = f.buckets[i][slot], fp
		i = f.altIndex(i, fp)
		if f.buckets[i].put(fp) {
			f.count++
			return true
		}
	}
	return false
}

func (b *cuckooBucket) has(fp byte) bool {
	for _, v := range b {
		if v == fp {
			return true
		}
	}
	return false
}

func (b *cuckooBucket) put(fp byte) bool {
	for i, v := range b {
		if v == 0 {
			b[i] = fp
			return true
		}
	}
	return false
}

// CuckooFilterChecker is the cuckoo filter counterpart of BloomFilterChecker.
// When the filter fills up it doubles and is rebuilt from the backing set.
type CuckooFilterChecker struct {
	stats
	filter *cuckoo
	logins map[string]struct{}
}

func NewCuckooFilter(capacity int) *CuckooFilterChecker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &CuckooFilterChecker{
		filter: newCuckoo(capacity),
		logins: make(map[string]struct{}),
	}
}

func (c *CuckooFilterChecker) Name() string { return CuckooFilter }

func (c *CuckooFilterChecker) Add(login string) bool {
	c.comparisons++
	if c.filter.mayContain(login) {
		c.comparisons++
		if _, ok := c.logins[login]; ok {
			return false
		}
	}
	c.logins[login] = struct{}{}
	c.count++
	if !c.filter.insert(login) {
		c.rebuild()
	}
	return true
}

func (c *CuckooFilterChecker) Exists(login string) bool {
	c.comparisons++
	if !c.filter.mayContain(login) {
		return false
	}
	c.comparisons++
	_, ok := c.logins[login]
	return ok
}

// rebuild grows the filter until every stored login fits.
func (c *CuckooFilterChecker) rebuild() {
	size := len(c.filter.buckets) * cuckooBucketSize
	for {
		size *= 2
		f := newCuckoo(size)
		ok := true
		for login := range c.logins {
			if !f.insert(login) {
				ok = false
				break
			}
		}
		if ok {
			c.filter = f
			return
		}
	}
}
