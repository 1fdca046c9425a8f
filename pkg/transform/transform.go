// Package transform provides reusable Frame transforms for cleaner
// authors: the orchestrator never applies these itself, a cleaner composes
// them inside its clean operation.
package transform

import (
	"context"

	"github.com/wdm0006/custodian/pkg/frame"
)

// Transform is a mutation or validation applied to a Frame.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

func (p *Pipeline) Run(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	var err error
	cur := f
	for _, t := range p.steps {
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
