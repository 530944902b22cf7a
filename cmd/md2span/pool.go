package main

import (
	"context"
	"log/slog"

	md2span "github.com/alnah/go-md2span"
	"github.com/alnah/go-md2span/internal/config"
)

// Renderer is the interface for one conversion pipeline.
type Renderer interface {
	Render(ctx context.Context, markdown string) (*md2span.StyledText, error)
	RenderTrimmed(ctx context.Context, markdown string) (*md2span.StyledText, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*md2span.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Renderer, error)
	Release(Renderer)
	Size() int
}

// converterPool adapts md2span.ConverterPool to Pool.
type converterPool struct {
	*md2span.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = converterPool{}

// newConverterPool creates a pool of converters configured from cfg.
// Layout errors surface here, before any file is read.
func newConverterPool(workers int, cfg *config.Config, logger *slog.Logger) (converterPool, error) {
	pool, err := md2span.NewConverterPool(md2span.ResolvePoolSize(workers), converterOptions(cfg, logger)...)
	if err != nil {
		return converterPool{}, err
	}
	return converterPool{pool}, nil
}

// converterOptions maps config fields to converter options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []md2span.Option {
	return []md2span.Option{
		md2span.WithLayout(md2span.Layout{
			Indent:       cfg.Layout.Indent,
			BulletRadius: cfg.Layout.BulletRadius,
		}),
		md2span.WithHardWraps(cfg.Render.HardWraps),
		md2span.WithRawHTML(cfg.Render.RawHTML),
		md2span.WithLogger(logger),
	}
}

// Acquire gets a converter, waiting until one is free or ctx is done.
func (p converterPool) Acquire(ctx context.Context) (Renderer, error) {
	conv, err := p.ConverterPool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire.
func (p converterPool) Release(r Renderer) {
	if conv, ok := r.(*md2span.Converter); ok {
		p.ConverterPool.Release(conv)
	}
}
