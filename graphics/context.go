package graphics

import (
	"context"

	"github.com/richinsley/goglresource/glenum"
)

// Surface defines the interface for a native window or offscreen buffer that
// owns an OpenGL context.
type Surface interface {
	// MakeCurrent makes the surface's context current on the calling thread.
	MakeCurrent() error
	// DetachCurrent makes no context current on the calling thread.
	DetachCurrent()
	Shutdown()
	EndFrame()
	GetFramebufferSize() (int, int)
}

// Sampler is the GL name of a sampler object.
type Sampler uint32

// Texture is the GL name of a texture object.
type Texture uint32

// TexImage describes one TexImage2D upload.
type TexImage struct {
	Target         glenum.TextureTarget
	Level          int32
	InternalFormat glenum.StorageFormat
	Width, Height  int32
	Format         glenum.BaseFormat
	Type           glenum.DataType
	// Pixels may be nil to allocate storage without uploading data.
	Pixels []byte
}

// Context defines the interface for a rendering context that resources are
// created through.
//
// Ready blocks until the context can accept calls, or until ctx is done. It
// returns the same result on every call. None of the other methods may be
// called before Ready has returned nil.
type Context interface {
	Ready(ctx context.Context) error

	CreateSampler() (Sampler, error)
	SamplerParameteri(s Sampler, pname glenum.SamplerParam, param int32) error
	SamplerParameterf(s Sampler, pname glenum.SamplerParam, param float32) error
	DeleteSampler(s Sampler) error

	CreateTexture() (Texture, error)
	TexImage2D(t Texture, img TexImage) error
	TexParameteri(t Texture, target glenum.TextureTarget, pname glenum.SamplerParam, param int32) error
	GenerateMipmap(t Texture, target glenum.TextureTarget) error
	DeleteTexture(t Texture) error
}
