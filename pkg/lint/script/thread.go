package script

import (
	"sync"

	"go.starlark.net/starlark"
)

// maxSteps bounds the work a script may do for one file.
const maxSteps = 10_000_000

// ThreadPool recycles Starlark threads across lint calls.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
}

// NewThreadPool creates a pool holding at most maxSize idle threads.
func NewThreadPool(maxSize int) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10 // default pool size
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name is used for error reporting.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		thread.SetMaxExecutionSteps(thread.ExecutionSteps() + maxSteps)
		return thread
	}
	return newThread(name)
}

// Put returns a thread to the pool. If the pool is full, the thread is
// discarded. Threads whose execution failed must not be returned.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) >= p.maxSize {
		return
	}
	thread.Name = ""
	p.threads = append(p.threads, thread)
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

func newThread(name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name:  name,
		Print: func(*starlark.Thread, string) {},
	}
	thread.SetMaxExecutionSteps(maxSteps)
	return thread
}
