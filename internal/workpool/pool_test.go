package workpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	p := New(0)
	defer p.Close()

	want := runtime.GOMAXPROCS(0)
	if p.Workers() != want {
		t.Errorf("Workers() = %d, want %d", p.Workers(), want)
	}
}

func TestNewNegativeDefaultsToGOMAXPROCS(t *testing.T) {
	p := New(-3)
	defer p.Close()

	want := runtime.GOMAXPROCS(0)
	if p.Workers() != want {
		t.Errorf("Workers() = %d, want %d", p.Workers(), want)
	}
}

func TestRunBatchExecutesEveryItem(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	p.RunBatch(work)

	if counter.Load() != int64(len(work)) {
		t.Errorf("counter = %d, want %d", counter.Load(), len(work))
	}
}

func TestRunBatchEmptyIsNoOp(t *testing.T) {
	p := New(4)
	defer p.Close()

	p.RunBatch(nil)
	p.RunBatch([]func(){})
}

func TestRunRangeCoversEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 97 // deliberately not a multiple of worker count
	var mu sync.Mutex
	seen := make([]bool, n)

	p.RunRange(n, func(start, end int) {
		mu.Lock()
		for i := start; i < end; i++ {
			seen[i] = true
		}
		mu.Unlock()
	})

	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d was never covered by RunRange", i)
		}
	}
}

func TestRunRangeZeroIsNoOp(t *testing.T) {
	p := New(4)
	defer p.Close()

	called := false
	p.RunRange(0, func(start, end int) { called = true })
	if called {
		t.Error("RunRange(0, ...) should not invoke fn")
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := New(4)
	p.Close()
	p.Close()
	p.Close()
}

func TestOperationsAfterCloseAreNoOps(t *testing.T) {
	p := New(4)
	p.Close()

	var executed atomic.Bool
	p.RunBatch([]func(){func() { executed.Store(true) }})

	time.Sleep(20 * time.Millisecond)
	if executed.Load() {
		t.Error("work executed on closed pool")
	}
}

func TestWorkStealingUnderUnevenLoad(t *testing.T) {
	p := New(4)
	defer p.Close()

	var fast, slow atomic.Int64
	work := make([]func(), 40)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() { fast.Add(1) }
		}
	}

	p.RunBatch(work)

	if slow.Load() != 4 {
		t.Errorf("slow = %d, want 4", slow.Load())
	}
	if fast.Load() != 36 {
		t.Errorf("fast = %d, want 36", fast.Load())
	}
}
