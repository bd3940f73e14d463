// Package parallel runs independent flattening jobs on a fixed set of
// goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a work-stealing pool of goroutines.
//
// Each worker owns a queue; jobs are dealt round-robin and an idle worker
// steals from its neighbours, so one slow path does not hold up the batch.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is held shared while Run enqueues and exclusively while Close
	// stops the workers, so no job lands in a queue nobody drains.
	mu sync.RWMutex
}

// New starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)
	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			job()
		default:
			if job := p.steal(id); job != nil {
				job()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case job := <-own:
				job()
			}
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			job()
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run calls fn(i) for every i in [0, n) and waits for the calls that were
// started. Jobs not yet queued when ctx is cancelled are skipped and
// ctx.Err() is returned. Run on a closed pool does nothing. Run may race
// with Close: Close waits until Run has queued its jobs, and they all run.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return nil
	}

	var pending sync.WaitGroup
	var err error
	for i := range n {
		if err = ctx.Err(); err != nil {
			break
		}
		pending.Add(1)
		job := func() {
			defer pending.Done()
			fn(i)
		}
		select {
		case p.queues[i%p.workers] <- job:
		case <-ctx.Done():
			pending.Done()
		}
	}
	p.mu.RUnlock()
	pending.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// Map applies fn to every input on the pool and returns the results in
// input order.
func Map[T, R any](ctx context.Context, p *Pool, in []T, fn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	err := p.Run(ctx, len(in), func(i int) {
		out[i] = fn(in[i])
	})
	return out, err
}

// Close stops the pool after the queued jobs have run.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Pending returns an approximate count of queued jobs.
func (p *Pool) Pending() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
