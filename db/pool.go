package db

import "sync"

// WorkerPool is a bounded set of reusable goroutines running background
// scan jobs. When every worker is busy, jobs overflow onto ephemeral
// goroutines so a caller is never queued behind a saturated pool.
type WorkerPool struct {
	mu     sync.Mutex
	active int
	max    int
	closed bool
	tasks  chan func()
}

// NewWorkerPool spawns size workers waiting for jobs on the task channel.
func NewWorkerPool(size int) *WorkerPool {
	p := &WorkerPool{
		max:   size,
		tasks: make(chan func()),
	}
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	for job := range p.tasks {
		job()
		p.mu.Lock()
		p.active--
		p.mu.Unlock()
	}
}

// Run executes job on a pooled worker when one is idle, otherwise on an
// ephemeral goroutine outside the pool's accounting.
//
// The hand-off happens under the lock: when active < max an idle worker
// is already parked on the task channel and needs no lock to receive, so
// the send cannot stall, and Close cannot close the channel mid-send.
func (p *WorkerPool) Run(job func()) {
	p.mu.Lock()
	if !p.closed && p.active < p.max {
		p.active++
		p.tasks <- job
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	go job()
}

// ActiveCount returns the number of jobs currently held by pooled workers.
// Overflow jobs are not counted.
func (p *WorkerPool) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Close stops the pooled workers once their current jobs finish. Jobs
// submitted after Close run on ephemeral goroutines.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
}
