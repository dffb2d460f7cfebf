// Package glcontext implements graphics.Context on top of OpenGL 4.1 core.
//
// All GL calls are issued from one goroutine locked to its OS thread, on
// which the surface's GL context is current. Callers on any goroutine submit
// work to it and wait for the result.
package glcontext

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/goglresource/async"
	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics"
)

var (
	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("glcontext: context closed")
	// ErrNotReady is returned by calls made before the context is ready.
	ErrNotReady = errors.New("glcontext: context not ready")
)

// GLError is a non-zero glGetError result.
type GLError struct {
	Op   string
	Code uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: %s (0x%04X)", e.Op, errorName(e.Code), e.Code)
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL error"
	}
}

// Info identifies the driver behind a context.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
}

// Context is an OpenGL rendering context.
type Context struct {
	surface graphics.Surface
	ready   *async.Future[Info]

	calls     chan func()
	quit      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once
}

// New starts the GL thread for surface and returns immediately. The surface
// must not be current on any other thread. Readiness resolves once the
// surface is current on the GL thread and the GL function pointers are
// loaded.
func New(surface graphics.Surface) *Context {
	c := &Context{
		surface: surface,
		ready:   async.NewFuture[Info](),
		calls:   make(chan func()),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Context) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(c.exited)

	current := c.start()
	for {
		select {
		case f := <-c.calls:
			f()
		case <-c.quit:
			if current {
				c.surface.DetachCurrent()
			}
			return
		}
	}
}

// start makes the surface current, loads GL and settles readiness. It
// reports whether the surface became current.
func (c *Context) start() bool {
	if err := c.surface.MakeCurrent(); err != nil {
		log.WithError(err).Error("Failed to make surface current")
		c.ready.Resolve(Info{}, fmt.Errorf("failed to make surface current: %w", err))
		return false
	}
	if err := gl.Init(); err != nil {
		log.WithError(err).Error("OpenGL initialization failed")
		c.ready.Resolve(Info{}, fmt.Errorf("failed to initialize OpenGL: %w", err))
		return true
	}
	version := gl.GetString(gl.VERSION)
	if version == nil {
		log.Error("No current OpenGL context")
		c.ready.Resolve(Info{}, errors.New("failed to initialize OpenGL: no current context"))
		return true
	}

	// Pixel rows are tightly packed in all uploads.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	info := Info{
		Version:  gl.GoStr(version),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
	}
	log.Printf("OpenGL %s on %s", info.Version, info.Renderer)
	c.ready.Resolve(info, nil)
	return true
}

// Ready waits until the context can accept calls.
func (c *Context) Ready(ctx context.Context) error {
	_, err := c.ready.Wait(ctx)
	return err
}

// Info waits for readiness and returns the driver strings.
func (c *Context) Info(ctx context.Context) (Info, error) {
	return c.ready.Wait(ctx)
}

// Close stops the GL thread and releases the surface from it. It does not
// shut the surface down; windowing systems such as GLFW require that to
// happen on the main thread.
func (c *Context) Close() {
	c.closeOnce.Do(func() {
		c.ready.Resolve(Info{}, ErrClosed)
		close(c.quit)
		<-c.exited
	})
}

// do runs f on the GL thread and converts any GL error it raised.
func (c *Context) do(op string, f func()) error {
	if !c.ready.IsResolved() {
		return ErrNotReady
	}
	if err := c.ready.Err(); err != nil {
		return err
	}
	errc := make(chan error, 1)
	call := func() {
		f()
		errc <- checkError(op)
	}
	select {
	case c.calls <- call:
	case <-c.quit:
		return ErrClosed
	}
	return <-errc
}

// checkError drains the GL error queue and reports the first error.
func checkError(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return &GLError{Op: op, Code: code}
}

func (c *Context) CreateSampler() (graphics.Sampler, error) {
	var s uint32
	err := c.do("glGenSamplers", func() { gl.GenSamplers(1, &s) })
	return graphics.Sampler(s), err
}

func (c *Context) SamplerParameteri(s graphics.Sampler, pname glenum.SamplerParam, param int32) error {
	return c.do("glSamplerParameteri", func() {
		gl.SamplerParameteri(uint32(s), uint32(pname), param)
	})
}

func (c *Context) SamplerParameterf(s graphics.Sampler, pname glenum.SamplerParam, param float32) error {
	return c.do("glSamplerParameterf", func() {
		gl.SamplerParameterf(uint32(s), uint32(pname), param)
	})
}

func (c *Context) DeleteSampler(s graphics.Sampler) error {
	return c.do("glDeleteSamplers", func() {
		name := uint32(s)
		gl.DeleteSamplers(1, &name)
	})
}

func (c *Context) CreateTexture() (graphics.Texture, error) {
	var t uint32
	err := c.do("glGenTextures", func() { gl.GenTextures(1, &t) })
	return graphics.Texture(t), err
}

func (c *Context) TexImage2D(t graphics.Texture, img graphics.TexImage) error {
	return c.do("glTexImage2D", func() {
		var pixels unsafe.Pointer
		if len(img.Pixels) > 0 {
			pixels = gl.Ptr(img.Pixels)
		}
		gl.BindTexture(uint32(img.Target), uint32(t))
		gl.TexImage2D(
			uint32(img.Target),
			img.Level,
			int32(img.InternalFormat),
			img.Width,
			img.Height,
			0,
			uint32(img.Format),
			uint32(img.Type),
			pixels,
		)
		gl.BindTexture(uint32(img.Target), 0)
	})
}

func (c *Context) TexParameteri(t graphics.Texture, target glenum.TextureTarget, pname glenum.SamplerParam, param int32) error {
	return c.do("glTexParameteri", func() {
		gl.BindTexture(uint32(target), uint32(t))
		gl.TexParameteri(uint32(target), uint32(pname), param)
		gl.BindTexture(uint32(target), 0)
	})
}

func (c *Context) GenerateMipmap(t graphics.Texture, target glenum.TextureTarget) error {
	return c.do("glGenerateMipmap", func() {
		gl.BindTexture(uint32(target), uint32(t))
		gl.GenerateMipmap(uint32(target))
		gl.BindTexture(uint32(target), 0)
	})
}

func (c *Context) DeleteTexture(t graphics.Texture) error {
	return c.do("glDeleteTextures", func() {
		name := uint32(t)
		gl.DeleteTextures(1, &name)
	})
}

var _ graphics.Context = (*Context)(nil)
