package glcontext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goglresource/async"
	"github.com/richinsley/goglresource/sampler"
	"github.com/richinsley/goglresource/resource"
)

// idle returns a context whose GL thread never started.
func idle() *Context {
	c := &Context{
		ready:  async.NewFuture[Info](),
		calls:  make(chan func()),
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	close(c.exited)
	return c
}

func TestCallsBeforeReady(t *testing.T) {
	c := idle()
	_, err := c.CreateSampler()
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = c.CreateTexture()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestCloseFailsPendingResources(t *testing.T) {
	c := idle()
	s := sampler.New(c)
	c.Close()
	c.Close()

	assert.ErrorIs(t, c.Ready(context.Background()), ErrClosed)
	err := s.Ready(context.Background())
	assert.ErrorIs(t, err, resource.ErrContextUnavailable)
	assert.ErrorIs(t, err, ErrClosed)

	_, err = c.CreateSampler()
	assert.ErrorIs(t, err, ErrClosed)
}

// brokenSurface is a surface whose context can never be made current.
type brokenSurface struct {
	err      error
	detached int
}

func (s *brokenSurface) MakeCurrent() error             { return s.err }
func (s *brokenSurface) DetachCurrent()                 { s.detached++ }
func (s *brokenSurface) Shutdown()                      {}
func (s *brokenSurface) EndFrame()                      {}
func (s *brokenSurface) GetFramebufferSize() (int, int) { return 0, 0 }

func TestMakeCurrentFailureFailsReadiness(t *testing.T) {
	surface := &brokenSurface{err: errors.New("eglMakeCurrent failed: 0x3002")}
	c := New(surface)

	err := c.Ready(context.Background())
	require.ErrorIs(t, err, surface.err)
	_, err = c.Info(context.Background())
	assert.ErrorIs(t, err, surface.err)

	s := sampler.New(c)
	err = s.Ready(context.Background())
	assert.ErrorIs(t, err, resource.ErrContextUnavailable)
	assert.ErrorIs(t, err, surface.err)

	_, err = c.CreateSampler()
	assert.ErrorIs(t, err, surface.err)

	c.Close()
	assert.Zero(t, surface.detached)
}
