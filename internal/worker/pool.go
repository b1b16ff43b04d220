// Package worker persists finished analyses in the background.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
	"github.com/ewilliams-labs/enisai/internal/core/ports"
)

const saveTimeout = 5 * time.Second

// Pool manages background workers that write analyses to the repository.
type Pool struct {
	repo ports.AnalysisRepository
	log  *zap.Logger
	jobs chan domain.Analysis
	wg   sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.AnalysisRepository, queueSize int, log *zap.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{repo: repo, log: log, jobs: make(chan domain.Analysis, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to drain the queue. Later Record calls are dropped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Record queues an analysis without blocking.
func (p *Pool) Record(a domain.Analysis) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.log.Warn("worker: pool stopped, dropping analysis", zap.String("id", a.ID))
		return
	}

	select {
	case p.jobs <- a:
	default:
		p.log.Warn("worker: queue full, dropping analysis", zap.String("id", a.ID))
	}
}

func (p *Pool) processJob(a domain.Analysis) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.repo.Save(ctx, a); err != nil {
		p.log.Warn("worker: failed to save analysis", zap.String("id", a.ID), zap.Error(err))
		return
	}
	p.log.Debug("worker: saved analysis",
		zap.String("id", a.ID),
		zap.String("label", string(a.Classification.Label)),
	)
}
