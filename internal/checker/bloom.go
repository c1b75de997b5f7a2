package checker

import "math"

// bloom is a fixed-size Bloom filter using double hashing over FNV-1a.
// It never reports a false negative.
type bloom struct {
	bits    []uint64
	numBits uint64
	k       uint32
}

// bloomSize computes the optimal bit count and hash count for n elements at
// false positive rate p: m = -n*ln(p)/ln(2)^2, k = m/n*ln(2).
func bloomSize(n int, p float64) (uint64, uint32) {
	if n <= 0 {
		n = 1
	}
	m := -float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)
	numBits := max(((uint64(m)+63)/64)*64, 64)

	k := uint32(math.Ceil(m / float64(n) * math.Ln2))
	return numBits, min(max(k, 1), 16)
}

func newBloom(n int, p float64) *bloom {
	numBits, k := bloomSize(n, p)
	return &bloom{
		bits:    make([]uint64, numBits/64),
		numBits: numBits,
		k:       k,
	}
}

func (b *bloom) add(s string) {
	h1, h2 := hashPair(s)
	for i := uint32(0); i < b.k; i++ {
		bit := (h1 + uint64(i)*h2) % b.numBits
		b.bits[bit/64] |= 1 << (bit % 64)
	}
}

func (b *bloom) mayContain(s string) bool {
	h1, h2 := hashPair(s)
	for i := uint32(0); i < b.k; i++ {
		bit := (h1 + uint64(i)*h2) % b.numBits
		if b.bits[bit/64]&(1<<(bit%64)) == 0 {
			return false
		}
	}
	return true
}

// hashPair returns two FNV-1a hashes, the second over the reversed string
// with a different seed. h2 is forced odd.
func hashPair(s string) (h1, h2 uint64) {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h1 = offset
	for i := 0; i < len(s); i++ {
		h1 ^= uint64(s[i])
		h1 *= prime
	}
	h2 = offset ^ 0x5555555555555555
	for i := len(s) - 1; i >= 0; i-- {
		h2 ^= uint64(s[i])
		h2 *= prime
	}
	return h1, h2 | 1
}

// BloomFilterChecker answers negatives from a Bloom filter and confirms
// positives against a backing set, so it has no false positives either.
type BloomFilterChecker struct {
	stats
	filter *bloom
	logins map[string]struct{}
}

// NewBloomFilter sizes the filter for capacity logins at errorRate.
func NewBloomFilter(capacity int, errorRate float64) *BloomFilterChecker {
	o := Options{Capacity: capacity, ErrorRate: errorRate}.withDefaults()
	return &BloomFilterChecker{
		filter: newBloom(o.Capacity, o.ErrorRate),
		logins: make(map[string]struct{}),
	}
}

func (c *BloomFilterChecker) Name() string { return BloomFilter }

func (c *BloomFilterChecker) Add(login string) bool {
	c.comparisons++
	if c.filter.mayContain(login) {
		c.comparisons++
		if _, ok := c.logins[login]; ok {
			return false
		}
	}
	c.filter.add(login)
	c.logins[login] = struct{}{}
	c.count++
	return true
}

func (c *BloomFilterChecker) Exists(login string) bool {
	c.comparisons++
	if !c.filter.mayContain(login) {
		return false
	}
	c.comparisons++
	_, ok := c.logins[login]
	return ok
}
