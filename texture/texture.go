// Package texture provides 2D GL textures as context-bound resources.
//
// The upload format and data type are not configured directly; they are
// inferred from the storage format through the formats table.
package texture

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/richinsley/goglresource/formats"
	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics"
	"github.com/richinsley/goglresource/resource"
)

const kind = "texture"

// Options is the configuration of a texture.
type Options struct {
	Format        glenum.StorageFormat
	Width, Height int
	// Pixels is uploaded as level 0. It must be laid out in the format's
	// base format and data type. A nil slice allocates storage only.
	Pixels []byte

	MinFilter glenum.TextureFilter
	MagFilter glenum.TextureFilter
	WrapS     glenum.WrapMode
	WrapT     glenum.WrapMode
	// Mipmaps generates the mip chain after upload. It is implied by a
	// mipmapping MinFilter.
	Mipmaps bool
}

// DefaultOptions returns an empty RGBA8 texture configuration with linear
// filtering and clamp-to-edge wrapping.
func DefaultOptions() Options {
	return Options{
		Format:    glenum.RGBA8,
		MinFilter: glenum.Linear,
		MagFilter: glenum.Linear,
		WrapS:     glenum.ClampToEdge,
		WrapT:     glenum.ClampToEdge,
	}
}

// Validate reports a configuration that cannot produce a complete texture.
func (o Options) Validate() error {
	info, ok := formats.Lookup(o.Format)
	if !ok {
		return fmt.Errorf("unknown storage format %v", o.Format)
	}
	if o.Width <= 0 || o.Height <= 0 || o.Width > math.MaxInt32 || o.Height > math.MaxInt32 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Pixels != nil {
		if want := formats.ImageSize(o.Format, o.Width, o.Height, 1); len(o.Pixels) != want {
			return fmt.Errorf("%v %dx%d needs %d bytes of pixel data, got %d", o.Format, o.Width, o.Height, want, len(o.Pixels))
		}
	}
	if o.MagFilter != glenum.Nearest && o.MagFilter != glenum.Linear {
		return fmt.Errorf("invalid mag filter %v", o.MagFilter)
	}
	if info.Integer && (o.MinFilter != glenum.Nearest || o.MagFilter != glenum.Nearest) {
		return errors.New("integer formats can only be sampled with NEAREST filtering")
	}
	return nil
}

func (o Options) mipmapped() bool {
	return o.Mipmaps || o.MinFilter.IsMipmapFilter()
}

// Option modifies Options.
type Option func(*Options)

// WithOptions replaces the whole configuration.
func WithOptions(o Options) Option { return func(dst *Options) { *dst = o } }

// WithFormat sets the storage format.
func WithFormat(f glenum.StorageFormat) Option { return func(o *Options) { o.Format = f } }

// WithSize sets the dimensions of level 0.
func WithSize(w, h int) Option { return func(o *Options) { o.Width, o.Height = w, h } }

// WithPixels sets the level 0 data.
func WithPixels(p []byte) Option { return func(o *Options) { o.Pixels = p } }

// WithFilter sets the minification and magnification filters.
func WithFilter(minify, magnify glenum.TextureFilter) Option {
	return func(o *Options) { o.MinFilter, o.MagFilter = minify, magnify }
}

// WithWrap sets the wrap mode of both axes.
func WithWrap(s, t glenum.WrapMode) Option {
	return func(o *Options) { o.WrapS, o.WrapT = s, t }
}

// WithMipmaps requests mip chain generation.
func WithMipmaps() Option { return func(o *Options) { o.Mipmaps = true } }

// Texture is a 2D texture created through a graphics.Context.
type Texture struct {
	res  *resource.Resource[graphics.Texture]
	opts Options
}

// New creates a texture on gc. Creation is deferred until gc is ready.
func New(gc graphics.Context, opts ...Option) *Texture {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newTexture(gc, o)
}

func newTexture(gc graphics.Context, o Options) *Texture {
	t := &Texture{opts: o}
	if err := o.Validate(); err != nil {
		t.res = resource.Failed[graphics.Texture](kind, gc, err)
		return t
	}
	t.res = resource.New(kind, gc, t.initialize)
	return t
}

func (t *Texture) initialize(ctx context.Context, gc graphics.Context) (graphics.Texture, error) {
	o := t.opts
	h, err := gc.CreateTexture()
	if err != nil {
		return 0, fmt.Errorf("failed to create texture: %w", err)
	}

	err = gc.TexImage2D(h, graphics.TexImage{
		Target:         glenum.Texture2D,
		InternalFormat: o.Format,
		Width:          int32(o.Width),
		Height:         int32(o.Height),
		Format:         formats.BaseFormatOf(o.Format),
		Type:           formats.DataTypeOf(o.Format),
		Pixels:         o.Pixels,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %v texture %d: %w", o.Format, h, err)
	}

	params := []struct {
		pname glenum.SamplerParam
		value int32
	}{
		{glenum.MinFilter, int32(o.MinFilter)},
		{glenum.MagFilter, int32(o.MagFilter)},
		{glenum.WrapS, int32(o.WrapS)},
		{glenum.WrapT, int32(o.WrapT)},
	}
	for _, p := range params {
		if err := gc.TexParameteri(h, glenum.Texture2D, p.pname, p.value); err != nil {
			return 0, fmt.Errorf("failed to set %v on texture %d: %w", p.pname, h, err)
		}
	}

	if o.mipmapped() {
		if err := gc.GenerateMipmap(h, glenum.Texture2D); err != nil {
			return 0, fmt.Errorf("failed to generate mipmaps for texture %d: %w", h, err)
		}
	}
	return h, nil
}

// Options returns the configuration the texture was created with.
func (t *Texture) Options() Options {
	return t.opts
}

// Ready waits until the texture has been created and uploaded.
func (t *Texture) Ready(ctx context.Context) error {
	return t.res.Ready(ctx)
}

// Handle waits until the texture has been created and returns its GL name.
func (t *Texture) Handle(ctx context.Context) (graphics.Texture, error) {
	return t.res.Handle(ctx)
}

// Delete waits until the texture has been created and deletes it.
func (t *Texture) Delete(ctx context.Context) error {
	return t.res.Release(ctx, func(gc graphics.Context, h graphics.Texture) error {
		return gc.DeleteTexture(h)
	})
}
