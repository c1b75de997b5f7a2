package bench

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// WorkerPool runs queued tasks on a fixed number of goroutines.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup

	mu      sync.Mutex
	lastErr error
}

func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, 100),
	}
}

func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Stop closes the queue, waits for the workers and returns the last task error.
func (p *WorkerPool) Stop() error {
	close(p.tasks)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// EnqueueTask blocks while the queue is full. It returns ctx.Err() if ctx is
// done first.
func (p *WorkerPool) EnqueueTask(ctx context.Context, task Task) error {
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}

			if err := task(ctx); err != nil {
				log.Error().Err(err).Msg("task failed")
				p.mu.Lock()
				p.lastErr = err
				p.mu.Unlock()
			}
		case <-ctx.Done():
			return
		}
	}
}
