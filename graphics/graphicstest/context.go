// Package graphicstest provides an in-memory graphics.Context for tests.
//
// The context records every call, tracks the parameters of live objects and
// lets tests decide when (and whether) it becomes ready.
package graphicstest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/richinsley/goglresource/async"
	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics"
)

// Operation names used in Call.Op and FailOn.
const (
	OpCreateSampler     = "CreateSampler"
	OpSamplerParameteri = "SamplerParameteri"
	OpSamplerParameterf = "SamplerParameterf"
	OpDeleteSampler     = "DeleteSampler"
	OpCreateTexture     = "CreateTexture"
	OpTexImage2D        = "TexImage2D"
	OpTexParameteri     = "TexParameteri"
	OpGenerateMipmap    = "GenerateMipmap"
	OpDeleteTexture     = "DeleteTexture"
)

// ErrNotReady is returned by primitives called before the context is ready.
var ErrNotReady = errors.New("graphicstest: context not ready")

// Call is one recorded primitive call.
type Call struct {
	Op     string
	Handle uint32
	Target glenum.TextureTarget
	Param  glenum.SamplerParam
	Int    int32
	Float  float32
	Image  *graphics.TexImage
}

// Context is a recording graphics.Context. It is safe for concurrent use.
type Context struct {
	ready *async.Future[struct{}]

	mu         sync.Mutex
	next       uint32
	calls      []Call
	failOn     map[string]error
	params     map[uint32]map[glenum.SamplerParam]float64
	samplers   map[graphics.Sampler]bool
	textures   map[graphics.Texture]bool
	violations int
}

// New returns a context that is not ready yet; call Resolve to finish it.
func New() *Context {
	return &Context{
		ready:    async.NewFuture[struct{}](),
		next:     1,
		failOn:   map[string]error{},
		params:   map[uint32]map[glenum.SamplerParam]float64{},
		samplers: map[graphics.Sampler]bool{},
		textures: map[graphics.Texture]bool{},
	}
}

// NewReady returns a context that is already ready.
func NewReady() *Context {
	c := New()
	c.Resolve(nil)
	return c
}

// Resolve settles the context's readiness. A nil err makes it ready.
func (c *Context) Resolve(err error) {
	c.ready.Resolve(struct{}{}, err)
}

// FailOn makes every later call of op fail with err. A nil err clears it.
func (c *Context) FailOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failOn, op)
		return
	}
	c.failOn[op] = err
}

// Calls returns a copy of the call log.
func (c *Context) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallCount returns how many times op was called.
func (c *Context) CallCount(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// Violations returns the number of primitive calls made before the context
// was ready.
func (c *Context) Violations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.violations
}

// Params returns the current parameter values of a sampler or texture.
// Integer parameters are converted to float64.
func (c *Context) Params(handle uint32) map[glenum.SamplerParam]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[glenum.SamplerParam]float64{}
	for k, v := range c.params[handle] {
		out[k] = v
	}
	return out
}

// LiveSamplers returns the number of samplers created and not deleted.
func (c *Context) LiveSamplers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samplers)
}

// LiveTextures returns the number of textures created and not deleted.
func (c *Context) LiveTextures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

func (c *Context) Ready(ctx context.Context) error {
	_, err := c.ready.Wait(ctx)
	return err
}

// record logs call and returns the configured failure for its op, if any.
// c.mu must be held.
func (c *Context) record(call Call) error {
	c.calls = append(c.calls, call)
	if !c.ready.IsResolved() || c.ready.Err() != nil {
		c.violations++
		return ErrNotReady
	}
	return c.failOn[call.Op]
}

func (c *Context) setParam(handle uint32, pname glenum.SamplerParam, v float64) {
	p, ok := c.params[handle]
	if !ok {
		p = map[glenum.SamplerParam]float64{}
		c.params[handle] = p
	}
	p[pname] = v
}

func (c *Context) CreateSampler() (graphics.Sampler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpCreateSampler}); err != nil {
		return 0, err
	}
	s := graphics.Sampler(c.next)
	c.next++
	c.samplers[s] = true
	c.calls[len(c.calls)-1].Handle = uint32(s)
	return s, nil
}

func (c *Context) SamplerParameteri(s graphics.Sampler, pname glenum.SamplerParam, param int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpSamplerParameteri, Handle: uint32(s), Param: pname, Int: param}); err != nil {
		return err
	}
	if !c.samplers[s] {
		return fmt.Errorf("graphicstest: sampler %d does not exist", s)
	}
	c.setParam(uint32(s), pname, float64(param))
	return nil
}

func (c *Context) SamplerParameterf(s graphics.Sampler, pname glenum.SamplerParam, param float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpSamplerParameterf, Handle: uint32(s), Param: pname, Float: param}); err != nil {
		return err
	}
	if !c.samplers[s] {
		return fmt.Errorf("graphicstest: sampler %d does not exist", s)
	}
	c.setParam(uint32(s), pname, float64(param))
	return nil
}

func (c *Context) DeleteSampler(s graphics.Sampler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpDeleteSampler, Handle: uint32(s)}); err != nil {
		return err
	}
	delete(c.samplers, s)
	delete(c.params, uint32(s))
	return nil
}

func (c *Context) CreateTexture() (graphics.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpCreateTexture}); err != nil {
		return 0, err
	}
	t := graphics.Texture(c.next)
	c.next++
	c.textures[t] = true
	c.calls[len(c.calls)-1].Handle = uint32(t)
	return t, nil
}

func (c *Context) TexImage2D(t graphics.Texture, img graphics.TexImage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpTexImage2D, Handle: uint32(t), Target: img.Target, Image: &img}); err != nil {
		return err
	}
	if !c.textures[t] {
		return fmt.Errorf("graphicstest: texture %d does not exist", t)
	}
	return nil
}

func (c *Context) TexParameteri(t graphics.Texture, target glenum.TextureTarget, pname glenum.SamplerParam, param int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpTexParameteri, Handle: uint32(t), Target: target, Param: pname, Int: param}); err != nil {
		return err
	}
	if !c.textures[t] {
		return fmt.Errorf("graphicstest: texture %d does not exist", t)
	}
	c.setParam(uint32(t), pname, float64(param))
	return nil
}

func (c *Context) GenerateMipmap(t graphics.Texture, target glenum.TextureTarget) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record(Call{Op: OpGenerateMipmap, Handle: uint32(t), Target: target})
}

func (c *Context) DeleteTexture(t graphics.Texture) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpDeleteTexture, Handle: uint32(t)}); err != nil {
		return err
	}
	delete(c.textures, t)
	delete(c.params, uint32(t))
	return nil
}

var _ graphics.Context = (*Context)(nil)
