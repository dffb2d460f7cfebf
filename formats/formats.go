// Package formats maps every texture storage format to the base format and
// data type used to upload pixels into it.
//
// The table is closed: each member of glenum.StorageFormats has exactly one
// entry. Regular formats (R/RG/RGB/RGBA crossed with a bit depth and type
// suffix) are generated from their family; everything else is listed
// explicitly. The table is checked when the package is initialised, so a
// format added to glenum without an entry here stops the program at start.
package formats

import (
	"fmt"

	"github.com/richinsley/goglresource/glenum"
)

// Info describes a storage format.
type Info struct {
	Format glenum.StorageFormat
	Base   glenum.BaseFormat
	Type   glenum.DataType

	// Components is the number of channels in the base format.
	Components int
	// BytesPerPixel is the size of one pixel of client data uploaded with
	// Base and Type.
	BytesPerPixel int

	Integer    bool // unnormalized integer sampling
	Normalized bool // fixed-point normalized
	SRGB       bool
	Depth      bool
	Stencil    bool
}

// family is one regular format family, indexed by component count - 1.
type family struct {
	members   [4]glenum.StorageFormat
	typ       glenum.DataType
	size      int // bytes per component
	integer   bool
	normalize bool
}

var families = []family{
	{[4]glenum.StorageFormat{glenum.R8, glenum.RG8, glenum.RGB8, glenum.RGBA8}, glenum.UnsignedByte, 1, false, true},
	{[4]glenum.StorageFormat{glenum.R8SNorm, glenum.RG8SNorm, glenum.RGB8SNorm, glenum.RGBA8SNorm}, glenum.Byte, 1, false, true},
	{[4]glenum.StorageFormat{glenum.R16F, glenum.RG16F, glenum.RGB16F, glenum.RGBA16F}, glenum.HalfFloat, 2, false, false},
	{[4]glenum.StorageFormat{glenum.R32F, glenum.RG32F, glenum.RGB32F, glenum.RGBA32F}, glenum.Float, 4, false, false},
	{[4]glenum.StorageFormat{glenum.R8UI, glenum.RG8UI, glenum.RGB8UI, glenum.RGBA8UI}, glenum.UnsignedByte, 1, true, false},
	{[4]glenum.StorageFormat{glenum.R8I, glenum.RG8I, glenum.RGB8I, glenum.RGBA8I}, glenum.Byte, 1, true, false},
	{[4]glenum.StorageFormat{glenum.R16UI, glenum.RG16UI, glenum.RGB16UI, glenum.RGBA16UI}, glenum.UnsignedShort, 2, true, false},
	{[4]glenum.StorageFormat{glenum.R16I, glenum.RG16I, glenum.RGB16I, glenum.RGBA16I}, glenum.Short, 2, true, false},
	{[4]glenum.StorageFormat{glenum.R32UI, glenum.RG32UI, glenum.RGB32UI, glenum.RGBA32UI}, glenum.UnsignedInt, 4, true, false},
	{[4]glenum.StorageFormat{glenum.R32I, glenum.RG32I, glenum.RGB32I, glenum.RGBA32I}, glenum.Int, 4, true, false},
}

var (
	colorBases   = [4]glenum.BaseFormat{glenum.Red, glenum.RG, glenum.RGB, glenum.RGBA}
	integerBases = [4]glenum.BaseFormat{glenum.RedInteger, glenum.RGInteger, glenum.RGBInteger, glenum.RGBAInteger}
)

// irregular lists the formats that do not decompose into a family.
var irregular = []Info{
	{Format: glenum.AlphaFormat, Base: glenum.Alpha, Type: glenum.UnsignedByte, Components: 1, BytesPerPixel: 1, Normalized: true},
	{Format: glenum.LuminanceFormat, Base: glenum.Luminance, Type: glenum.UnsignedByte, Components: 1, BytesPerPixel: 1, Normalized: true},
	{Format: glenum.LuminanceAlphaFormat, Base: glenum.LuminanceAlpha, Type: glenum.UnsignedByte, Components: 2, BytesPerPixel: 2, Normalized: true},
	{Format: glenum.RGBFormat, Base: glenum.RGB, Type: glenum.UnsignedByte, Components: 3, BytesPerPixel: 3, Normalized: true},
	{Format: glenum.RGBAFormat, Base: glenum.RGBA, Type: glenum.UnsignedByte, Components: 4, BytesPerPixel: 4, Normalized: true},

	{Format: glenum.SRGB8, Base: glenum.RGB, Type: glenum.UnsignedByte, Components: 3, BytesPerPixel: 3, Normalized: true, SRGB: true},
	{Format: glenum.SRGB8Alpha8, Base: glenum.RGBA, Type: glenum.UnsignedByte, Components: 4, BytesPerPixel: 4, Normalized: true, SRGB: true},

	{Format: glenum.RGB565, Base: glenum.RGB, Type: glenum.UnsignedShort565, Components: 3, BytesPerPixel: 2, Normalized: true},
	{Format: glenum.RGBA4, Base: glenum.RGBA, Type: glenum.UnsignedShort4444, Components: 4, BytesPerPixel: 2, Normalized: true},
	{Format: glenum.RGB5A1, Base: glenum.RGBA, Type: glenum.UnsignedShort5551, Components: 4, BytesPerPixel: 2, Normalized: true},
	{Format: glenum.RGB10A2, Base: glenum.RGBA, Type: glenum.UnsignedInt2101010Rev, Components: 4, BytesPerPixel: 4, Normalized: true},
	{Format: glenum.RGB10A2UI, Base: glenum.RGBAInteger, Type: glenum.UnsignedInt2101010Rev, Components: 4, BytesPerPixel: 4, Integer: true},

	{Format: glenum.R11FG11FB10F, Base: glenum.RGB, Type: glenum.UnsignedInt10F11F11FRev, Components: 3, BytesPerPixel: 4},
	{Format: glenum.RGB9E5, Base: glenum.RGB, Type: glenum.UnsignedInt5999Rev, Components: 3, BytesPerPixel: 4},

	{Format: glenum.DepthComponent16, Base: glenum.DepthComponent, Type: glenum.UnsignedShort, Components: 1, BytesPerPixel: 2, Normalized: true, Depth: true},
	{Format: glenum.DepthComponent24, Base: glenum.DepthComponent, Type: glenum.UnsignedInt, Components: 1, BytesPerPixel: 4, Normalized: true, Depth: true},
	{Format: glenum.DepthComponent32F, Base: glenum.DepthComponent, Type: glenum.Float, Components: 1, BytesPerPixel: 4, Depth: true},
	{Format: glenum.Depth24Stencil8, Base: glenum.DepthStencil, Type: glenum.UnsignedInt248, Components: 2, BytesPerPixel: 4, Normalized: true, Depth: true, Stencil: true},
	{Format: glenum.Depth32FStencil8, Base: glenum.DepthStencil, Type: glenum.Float32UnsignedInt248Rev, Components: 2, BytesPerPixel: 8, Depth: true, Stencil: true},
}

var table map[glenum.StorageFormat]Info

func init() {
	t, err := build()
	if err != nil {
		panic("formats: " + err.Error())
	}
	table = t
}

// build expands the families, adds the irregular tail and checks the result
// against the enumeration.
func build() (map[glenum.StorageFormat]Info, error) {
	t := make(map[glenum.StorageFormat]Info)
	add := func(info Info) error {
		if _, dup := t[info.Format]; dup {
			return fmt.Errorf("%v mapped twice", info.Format)
		}
		t[info.Format] = info
		return nil
	}

	for _, fam := range families {
		for i, sf := range fam.members {
			n := i + 1
			base := colorBases[i]
			if fam.integer {
				base = integerBases[i]
			}
			err := add(Info{
				Format:        sf,
				Base:          base,
				Type:          fam.typ,
				Components:    n,
				BytesPerPixel: n * fam.size,
				Integer:       fam.integer,
				Normalized:    fam.normalize,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	for _, info := range irregular {
		if err := add(info); err != nil {
			return nil, err
		}
	}

	all := glenum.StorageFormats()
	for _, sf := range all {
		if _, ok := t[sf]; !ok {
			return nil, fmt.Errorf("no entry for %v", sf)
		}
	}
	if len(t) != len(all) {
		return nil, fmt.Errorf("%d entries for %d storage formats", len(t), len(all))
	}
	return t, nil
}

// Lookup returns the table entry for sf.
func Lookup(sf glenum.StorageFormat) (Info, bool) {
	info, ok := table[sf]
	return info, ok
}

// MustLookup is like Lookup but panics if sf is not a storage format.
func MustLookup(sf glenum.StorageFormat) Info {
	info, ok := table[sf]
	if !ok {
		panic(fmt.Sprintf("formats: %v is not a storage format", sf))
	}
	return info
}

// BaseFormatOf returns the base pixel format of sf.
func BaseFormatOf(sf glenum.StorageFormat) glenum.BaseFormat {
	return MustLookup(sf).Base
}

// DataTypeOf returns the default client data type for sf.
func DataTypeOf(sf glenum.StorageFormat) glenum.DataType {
	return MustLookup(sf).Type
}

// Formats returns the whole table in enumeration order.
func Formats() []Info {
	all := glenum.StorageFormats()
	out := make([]Info, len(all))
	for i, sf := range all {
		out[i] = table[sf]
	}
	return out
}

// ImageSize returns the number of bytes needed for a width x height x depth
// image of sf.
func ImageSize(sf glenum.StorageFormat, width, height, depth int) int {
	return MustLookup(sf).BytesPerPixel * width * height * depth
}
