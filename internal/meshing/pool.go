package meshing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"voxelbox/internal/profiling"
)

// MeshJob represents a meshing job request stamped with the world version it reflects
type MeshJob struct {
	Version uint64
	Source  Source
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Version  uint64
	Geometry *Geometry
	Elapsed  time.Duration
}

// WorkerPool builds meshes off the simulation goroutine.
// At most one job is pending; a newer submission replaces it. Results whose
// version no longer matches the latest submission are dropped in Poll.
type WorkerPool struct {
	jobQueue chan MeshJob
	results  chan MeshResult
	latest   atomic.Uint64
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, 1),
		results:  make(chan MeshResult, workers+1),
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// Submit queues a rebuild for version, superseding any job still waiting.
func (p *WorkerPool) Submit(version uint64, src Source) {
	if p.closed.Load() {
		return
	}
	p.latest.Store(version)
	job := MeshJob{Version: version, Source: src}
	for {
		select {
		case p.jobQueue <- job:
			return
		default:
		}
		// Drop the stale pending job, if a worker has not taken it already.
		select {
		case <-p.jobQueue:
			profiling.MeshDiscarded()
		default:
		}
	}
}

// Latest returns the most recently submitted version.
func (p *WorkerPool) Latest() uint64 {
	return p.latest.Load()
}

// Poll drains finished builds and returns the one matching the latest submitted
// version, if it has arrived. Stale results are discarded silently.
func (p *WorkerPool) Poll() (*Geometry, bool) {
	var current *Geometry
	for {
		select {
		case res := <-p.results:
			if res.Version != p.latest.Load() {
				profiling.MeshDiscarded()
				continue
			}
			current = res.Geometry
		default:
			return current, current != nil
		}
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			// Skip work that was superseded while it sat in the queue.
			if job.Version != p.latest.Load() {
				profiling.MeshDiscarded()
				continue
			}
			start := time.Now()
			g := Build(job.Source)
			elapsed := time.Since(start)
			profiling.MeshBuilt(elapsed)

			select {
			case p.results <- MeshResult{Version: job.Version, Geometry: g, Elapsed: elapsed}:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown gracefully shuts down the worker pool
func (p *WorkerPool) Shutdown() {
	if p.closed.Swap(true) {
		return
	}
	p.cancel()
	p.wg.Wait()
}
