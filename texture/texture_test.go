package texture

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics/graphicstest"
)

// uploads returns the TexImage2D calls recorded by gc.
func uploads(gc *graphicstest.Context) []graphicstest.Call {
	var out []graphicstest.Call
	for _, c := range gc.Calls() {
		if c.Op == graphicstest.OpTexImage2D {
			out = append(out, c)
		}
	}
	return out
}

func TestUploadUsesInferredFormat(t *testing.T) {
	tests := []struct {
		format glenum.StorageFormat
		base   glenum.BaseFormat
		typ    glenum.DataType
		filter glenum.TextureFilter
	}{
		{glenum.RGBA8, glenum.RGBA, glenum.UnsignedByte, glenum.Linear},
		{glenum.RG16F, glenum.RG, glenum.HalfFloat, glenum.Linear},
		{glenum.R32UI, glenum.RedInteger, glenum.UnsignedInt, glenum.Nearest},
		{glenum.RGB9E5, glenum.RGB, glenum.UnsignedInt5999Rev, glenum.Linear},
		{glenum.Depth24Stencil8, glenum.DepthStencil, glenum.UnsignedInt248, glenum.Nearest},
	}
	for _, tc := range tests {
		t.Run(tc.format.String(), func(t *testing.T) {
			gc := graphicstest.NewReady()
			tex := New(gc, WithFormat(tc.format), WithSize(4, 2), WithFilter(tc.filter, tc.filter))
			require.NoError(t, tex.Ready(context.Background()))

			up := uploads(gc)
			require.Len(t, up, 1)
			img := up[0].Image
			assert.Equal(t, glenum.Texture2D, img.Target)
			assert.Equal(t, tc.format, img.InternalFormat)
			assert.Equal(t, tc.base, img.Format)
			assert.Equal(t, tc.typ, img.Type)
			assert.EqualValues(t, 4, img.Width)
			assert.EqualValues(t, 2, img.Height)
			assert.Nil(t, img.Pixels)
		})
	}
}

func TestParameters(t *testing.T) {
	gc := graphicstest.NewReady()
	tex := New(gc, WithSize(1, 1), WithFilter(glenum.LinearMipmapLinear, glenum.Nearest), WithWrap(glenum.Repeat, glenum.MirroredRepeat))
	h, err := tex.Handle(context.Background())
	require.NoError(t, err)

	p := gc.Params(uint32(h))
	assert.EqualValues(t, glenum.LinearMipmapLinear, p[glenum.MinFilter])
	assert.EqualValues(t, glenum.Nearest, p[glenum.MagFilter])
	assert.EqualValues(t, glenum.Repeat, p[glenum.WrapS])
	assert.EqualValues(t, glenum.MirroredRepeat, p[glenum.WrapT])
	assert.Equal(t, 1, gc.CallCount(graphicstest.OpGenerateMipmap))
}

func TestNoMipmapsByDefault(t *testing.T) {
	gc := graphicstest.NewReady()
	require.NoError(t, New(gc, WithSize(8, 8)).Ready(context.Background()))
	assert.Zero(t, gc.CallCount(graphicstest.OpGenerateMipmap))

	require.NoError(t, New(gc, WithSize(8, 8), WithMipmaps()).Ready(context.Background()))
	assert.Equal(t, 1, gc.CallCount(graphicstest.OpGenerateMipmap))
}

func TestValidation(t *testing.T) {
	huge := int64(math.MaxInt32) + 1
	tests := []struct {
		name string
		opts []Option
		msg  string
	}{
		{"no size", nil, "invalid size"},
		{"oversized", []Option{WithSize(int(huge), 1)}, "invalid size"},
		{"short pixels", []Option{WithSize(2, 2), WithPixels(make([]byte, 15))}, "needs 16 bytes"},
		{"integer linear", []Option{WithSize(2, 2), WithFormat(glenum.RGBA8UI)}, "NEAREST"},
		{"unknown format", []Option{WithSize(2, 2), WithFormat(glenum.StorageFormat(1))}, "unknown storage format"},
		{"mag mipmap", []Option{WithSize(2, 2), WithFilter(glenum.Linear, glenum.LinearMipmapLinear)}, "mag filter"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gc := graphicstest.NewReady()
			err := New(gc, tc.opts...).Ready(context.Background())
			assert.ErrorContains(t, err, tc.msg)
			assert.Empty(t, gc.Calls())
		})
	}
}

func TestDelete(t *testing.T) {
	gc := graphicstest.New()
	tex := New(gc, WithSize(2, 2))
	gc.Resolve(nil)
	require.NoError(t, tex.Delete(context.Background()))
	assert.Zero(t, gc.LiveTextures())
	assert.Zero(t, gc.Violations())
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestFromImage(t *testing.T) {
	gc := graphicstest.NewReady()
	tex := FromImage(gc, testImage(), true, WithFormat(glenum.SRGB8Alpha8))
	require.NoError(t, tex.Ready(context.Background()))

	up := uploads(gc)
	require.Len(t, up, 1)
	img := up[0].Image
	assert.Equal(t, glenum.SRGB8Alpha8, img.InternalFormat)
	assert.EqualValues(t, 2, img.Width)
	require.Len(t, img.Pixels, 16)
	// flipped: the blue pixel from the bottom row comes first
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[8:12])
}

func TestFromImageRejectsNonRGBA8Formats(t *testing.T) {
	gc := graphicstest.NewReady()
	tex := FromImage(gc, testImage(), false, WithFormat(glenum.RGBA16F))
	assert.ErrorContains(t, tex.Ready(context.Background()), "cannot upload RGBA image data")
	assert.Empty(t, gc.Calls())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), img.Bounds().Size())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
