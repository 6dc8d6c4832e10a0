// Package parallel runs independent jobs, such as one resize per input
// file, on a fixed set of goroutines.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is reported for jobs handed to a closed pool.
var ErrClosed = errors.New("parallel: worker pool closed")

// Job is one unit of work. It should return promptly once ctx is done.
type Job func(ctx context.Context) error

// WorkerPool is a pool of goroutines with one queue per worker.
//
// Jobs are distributed round-robin. A worker whose queue is empty steals
// from the others, so a batch with a few slow jobs still keeps every worker
// busy. Idle workers are woken whenever a job is queued anywhere.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds per-worker work queues.
	queues []chan func()

	// wake nudges idle workers to look for work to steal.
	wake chan struct{}

	// done signals workers to stop.
	done chan struct{}

	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		wake:    make(chan struct{}, workers),
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

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(own)
				return
			case work := <-own:
				work()
			case <-p.wake:
			}
		}
	}
}

// drainQueue runs whatever is left in queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run executes jobs and waits for all of them. errs[i] is the result of
// jobs[i]: a job that had not started when ctx was canceled reports
// ctx.Err(), a job that panicked reports the panic as an error, and every
// job handed to a closed pool reports ErrClosed.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) []error {
	errs := make([]error, len(jobs))
	if len(jobs) == 0 {
		return errs
	}
	if !p.IsRunning() {
		for i := range errs {
			errs[i] = ErrClosed
		}
		return errs
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		work := func() {
			defer pending.Done()
			errs[i] = runJob(ctx, i, job)
		}

		select {
		case p.queues[i%p.workers] <- work:
			select {
			case p.wake <- struct{}{}:
			default:
			}
		case <-p.done:
			errs[i] = ErrClosed
			pending.Done()
		}
	}

	pending.Wait()
	return errs
}

func runJob(ctx context.Context, i int, job Job) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel: job %d panicked: %v", i, r)
		}
	}()
	return job(ctx)
}

// Close stops accepting work, waits for queued jobs to finish and stops the
// workers. Close is safe to call multiple times but must not race with a
// Run that is still handing out jobs.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
