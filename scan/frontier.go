package scan

import (
	"container/heap"
	"sync"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/bloom"
)

// Resolution priorities. Direct dependencies resolve first so that policy
// violations in a project's own requirements surface before transitive
// noise when a run is cut short by the timeout.
const (
	PriorityDirect     = 10
	PriorityTransitive = 1
)

// Frontier is an in-memory resolution queue with priority ordering and
// Bloom filter deduplication by dependency key. It is safe for concurrent
// use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *depHeap
}

// NewFrontier creates a new Frontier sized for n expected dependencies
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &depHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a dependency to the frontier.
// Returns false if the dependency key has already been seen.
func (f *Frontier) Push(dep feluda.Dependency) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dep.Key()
	if f.seen.Test(key) {
		return false
	}
	f.seen.Add(key)

	priority := PriorityTransitive
	if dep.Direct {
		priority = PriorityDirect
	}
	heap.Push(f.queue, queuedDep{dep: dep, priority: priority})
	return true
}

// Pop returns the next dependency by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (feluda.Dependency, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return feluda.Dependency{}, false
	}
	qd, _ := heap.Pop(f.queue).(queuedDep)
	return qd.dep, true
}

// Len returns the number of dependencies in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the dependency has been processed or queued.
func (f *Frontier) Seen(dep feluda.Dependency) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(dep.Key())
}

type queuedDep struct {
	dep      feluda.Dependency
	priority int
}

// depHeap implements heap.Interface for the dependency priority queue.
// Higher priority dependencies are popped first.
type depHeap []queuedDep

func (h depHeap) Len() int { return len(h) }

// Less returns true if i has higher priority than j (max-heap).
func (h depHeap) Less(i, j int) bool {
	return h[i].priority > h[j].priority
}

func (h depHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *depHeap) Push(x any) {
	qd, _ := x.(queuedDep)
	*h = append(*h, qd)
}

func (h *depHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
