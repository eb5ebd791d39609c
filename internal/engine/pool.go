package engine

import (
	"context"
	"sync"
)

// pool is a fixed-size goroutine pool with a bounded input queue.
type pool[T any] struct {
	queue chan T
	work  func(ctx context.Context, t T)
	wg    sync.WaitGroup
}

// newPool starts n workers reading from a queue of the given capacity.
func newPool[T any](ctx context.Context, n, capacity int, work func(context.Context, T)) *pool[T] {
	p := &pool[T]{
		queue: make(chan T, capacity),
		work:  work,
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case t, ok := <-p.queue:
					if !ok {
						return
					}
					p.work(ctx, t)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	return p
}

// submit enqueues without blocking; false means the queue is full.
func (p *pool[T]) submit(t T) bool {
	select {
	case p.queue <- t:
		return true
	default:
		return false
	}
}

// drain closes the queue and waits for all workers to finish.
func (p *pool[T]) drain() {
	close(p.queue)
	p.wg.Wait()
}

func (p *pool[T]) queueLen() int { return len(p.queue) }
func (p *pool[T]) queueCap() int { return cap(p.queue) }
