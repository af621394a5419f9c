package core

import (
	"sync"
	"testing"
)

func TestLoopRunsInPostOrder(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	var got []int
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() {
			got = append(got, i)
			wg.Done()
		})
	}
	wg.Wait()

	if len(got) != 100 {
		t.Fatalf("ran %d fns, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: got %d", i, v)
		}
	}
}

func TestLoopPostNeverInline(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	var order []string
	ok := l.Sync(func() {
		l.Post(func() { order = append(order, "reposted") })
		order = append(order, "first")
	})
	if !ok {
		t.Fatal("Sync returned false on a live loop")
	}
	l.Sync(func() {})

	if len(order) != 2 || order[0] != "first" || order[1] != "reposted" {
		t.Fatalf("got order %v, want [first reposted]", order)
	}
}

func TestLoopStopDrainsQueued(t *testing.T) {
	l := NewLoop()

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 10; i++ {
		l.Post(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	l.Stop()

	mu.Lock()
	defer mu.Unlock()
	if ran != 10 {
		t.Fatalf("ran %d queued fns after Stop, want 10", ran)
	}
}

func TestLoopSyncAfterStop(t *testing.T) {
	l := NewLoop()
	l.Stop()
	if l.Sync(func() {}) {
		t.Fatal("Sync returned true on a stopped loop")
	}
}
