// Package sampler provides GL sampler objects as context-bound resources.
package sampler

import (
	"context"
	"fmt"

	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics"
	"github.com/richinsley/goglresource/resource"
)

const kind = "sampler"

// Sampler is a sampler object created through a graphics.Context.
type Sampler struct {
	res  *resource.Resource[graphics.Sampler]
	opts Options
}

// New creates a sampler on gc. The native object is created once gc is
// ready; New itself does not block. An invalid configuration fails the
// sampler's readiness without any native call.
func New(gc graphics.Context, opts ...Option) *Sampler {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sampler{opts: o}
	if err := o.Validate(); err != nil {
		s.res = resource.Failed[graphics.Sampler](kind, gc, err)
		return s
	}
	s.res = resource.New(kind, gc, s.initialize)
	return s
}

func (s *Sampler) initialize(ctx context.Context, gc graphics.Context) (graphics.Sampler, error) {
	h, err := gc.CreateSampler()
	if err != nil {
		return 0, fmt.Errorf("failed to create sampler: %w", err)
	}

	o := s.opts
	ints := []struct {
		pname glenum.SamplerParam
		value int32
	}{
		{glenum.MinFilter, int32(o.MinFilter)},
		{glenum.MagFilter, int32(o.MagFilter)},
		{glenum.WrapS, int32(o.WrapS)},
		{glenum.WrapT, int32(o.WrapT)},
		{glenum.WrapR, int32(o.WrapR)},
		{glenum.CompareModeParam, int32(o.CompareMode)},
		{glenum.CompareFuncParam, int32(o.CompareFunc)},
	}
	for _, p := range ints {
		if err := gc.SamplerParameteri(h, p.pname, p.value); err != nil {
			return 0, fmt.Errorf("failed to set %v on sampler %d: %w", p.pname, h, err)
		}
	}
	if err := gc.SamplerParameterf(h, glenum.MinLOD, o.MinLOD); err != nil {
		return 0, fmt.Errorf("failed to set %v on sampler %d: %w", glenum.MinLOD, h, err)
	}
	if err := gc.SamplerParameterf(h, glenum.MaxLOD, o.MaxLOD); err != nil {
		return 0, fmt.Errorf("failed to set %v on sampler %d: %w", glenum.MaxLOD, h, err)
	}
	return h, nil
}

// Options returns the configuration the sampler was created with.
func (s *Sampler) Options() Options {
	return s.opts
}

// Ready waits until the sampler has been created.
func (s *Sampler) Ready(ctx context.Context) error {
	return s.res.Ready(ctx)
}

// Handle waits until the sampler has been created and returns its GL name.
func (s *Sampler) Handle(ctx context.Context) (graphics.Sampler, error) {
	return s.res.Handle(ctx)
}

// Delete waits until the sampler has been created and deletes it. The
// handle must not be used afterwards.
func (s *Sampler) Delete(ctx context.Context) error {
	return s.res.Release(ctx, func(gc graphics.Context, h graphics.Sampler) error {
		return gc.DeleteSampler(h)
	})
}
