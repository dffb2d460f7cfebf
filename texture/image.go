package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/richinsley/goglresource/formats"
	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/graphics"
	"github.com/richinsley/goglresource/resource"
)

// Load decodes an image file. PNG, JPEG, GIF, BMP, TIFF and WebP are
// supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "format": format, "size": img.Bounds().Size()}).Debug("image decoded")
	return img, nil
}

// toRGBA converts img to tightly packed RGBA, optionally flipped vertically
// so that the first row is the bottom of the image as GL expects.
func toRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flipY {
		rgba = vflip(rgba)
	}
	return rgba
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// FromImage creates a texture holding img. The storage format defaults to
// RGBA8 and may be changed with WithFormat to any format whose client data
// is RGBA unsigned bytes (for example SRGB8_ALPHA8). Size and pixel options
// are taken from the image.
func FromImage(gc graphics.Context, img image.Image, flipY bool, opts ...Option) *Texture {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	info, ok := formats.Lookup(o.Format)
	if !ok || info.Base != glenum.RGBA || info.Type != glenum.UnsignedByte {
		err := fmt.Errorf("cannot upload RGBA image data into %v", o.Format)
		return &Texture{res: resource.Failed[graphics.Texture](kind, gc, err), opts: o}
	}

	rgba := toRGBA(img, flipY)
	o.Width, o.Height = rgba.Rect.Dx(), rgba.Rect.Dy()
	o.Pixels = rgba.Pix
	return newTexture(gc, o)
}
