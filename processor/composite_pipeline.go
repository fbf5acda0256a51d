package processor

import (
	"context"
)

// CompositePipeline loads a set of scene files and reduces them to one
// median composite raster.
type CompositePipeline struct {
	Context   context.Context
	Error     chan error
	ConcLimit int
}

func InitCompositePipeline(ctx context.Context, concLimit int, errChan chan error) *CompositePipeline {
	return &CompositePipeline{
		Context:   ctx,
		Error:     errChan,
		ConcLimit: concLimit,
	}
}

func (p *CompositePipeline) Process(scenePaths []string) chan *Scene {
	loader := NewSceneLoader(p.Context, p.Error)
	go func() {
		for _, path := range scenePaths {
			loader.In <- path
		}
		close(loader.In)
	}()

	compositor := NewCompositor(p.Context, p.ConcLimit, p.Error)
	compositor.In = loader.Out

	go loader.Run(p.ConcLimit)
	go compositor.Run()

	return compositor.Out
}
