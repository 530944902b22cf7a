package md2span

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions.
	MaxPoolSize = 16
)

// ConverterPool manages a bounded set of Converter instances for parallel
// processing. Converters are created lazily on first acquire.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n converters, each
// built with opts. The options are checked once up front so that lazy
// creation cannot fail later.
func NewConverterPool(n int, opts ...Option) (*ConverterPool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	probe, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}

	p := &ConverterPool{
		size:    n,
		opts:    opts,
		sem:     make(chan *Converter, n),
		created: 1,
	}
	// The probe becomes the first pooled converter.
	p.sem <- probe
	return p, nil
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks until a converter is released or ctx is done.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	// Try to get an existing converter (non-blocking)
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	// Check if we can create a new converter
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Options were validated by NewConverterPool.
		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a converter to the pool. Releasing after Close is a no-op.
// The send never blocks: at most size converters exist.
func (p *ConverterPool) Release(conv *Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || conv == nil {
		return
	}
	p.sem <- conv
}

// Close shuts the pool. Blocked and later Acquire calls return ErrPoolClosed.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.sem)
	// Idle converters would otherwise still be received from the closed channel.
	for range p.sem {
	}
	return nil
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
