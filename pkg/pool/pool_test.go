package pool

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

// batch mimics a reusable slice of logins with an index.
type batch struct {
	Logins []string
	Seen   map[string]struct{}
	Next   int
}

func (b *batch) Reset() {
	b.Logins = b.Logins[:0]
	clear(b.Seen)
	b.Next = 0
}

func newBatch() *batch {
	return &batch{
		Logins: make([]string, 0, 16),
		Seen:   make(map[string]struct{}),
	}
}

func TestPool_GetPut(t *testing.T) {
	p := New(newBatch)

	obj := p.Get()
	obj.Logins = append(obj.Logins, "alice", "bob")
	obj.Seen["alice"] = struct{}{}
	obj.Next = 2

	p.Put(obj)

	if len(obj.Logins) != 0 || len(obj.Seen) != 0 || obj.Next != 0 {
		t.Errorf("object not reset on Put: %+v", obj)
	}
	if obj.Seen == nil {
		t.Error("expected map to survive Reset")
	}

	obj2 := p.Get()
	if len(obj2.Logins) != 0 || obj2.Next != 0 {
		t.Errorf("expected clean object from Get, got %+v", obj2)
	}
}

func TestPool_KeepsCapacity(t *testing.T) {
	p := New(func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	})

	buf := p.Get()
	buf.Write(make([]byte, 100))
	p.Put(buf)

	if buf.Len() != 0 {
		t.Errorf("expected empty buffer after Put, got %d bytes", buf.Len())
	}
	if buf.Cap() < 4096 {
		t.Errorf("expected capacity to be kept, got %d", buf.Cap())
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	p := New(newBatch)

	const goroutines = 50
	const iterations = 100

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range iterations {
				obj := p.Get()
				if len(obj.Logins) != 0 || len(obj.Seen) != 0 {
					t.Errorf("dirty object from Get")
				}
				login := fmt.Sprintf("user%d_%d", id, j)
				obj.Logins = append(obj.Logins, login)
				obj.Seen[login] = struct{}{}
				p.Put(obj)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkPool_Buffer(b *testing.B) {
	p := New(func() *bytes.Buffer { return new(bytes.Buffer) })
	payload := make([]byte, 8<<10)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := p.Get()
			buf.Write(payload)
			p.Put(buf)
		}
	})
}

func BenchmarkPool_NoPool(b *testing.B) {
	payload := make([]byte, 8<<10)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := new(bytes.Buffer)
			buf.Write(payload)
		}
	})
}
