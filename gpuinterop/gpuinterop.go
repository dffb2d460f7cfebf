// Package gpuinterop translates between the GL resource configuration used
// here and the WebGPU types of github.com/gogpu/gputypes, so that code
// targeting both backends can share one sampler and format description.
package gpuinterop

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/sampler"
)

// maxWebGPULOD is the largest lodMaxClamp WebGPU implementations accept
// without clamping.
const maxWebGPULOD = 32

var webgpuFormats = map[glenum.StorageFormat]gputypes.TextureFormat{
	glenum.R8:      gputypes.TextureFormatR8Unorm,
	glenum.R8SNorm: gputypes.TextureFormatR8Snorm,
	glenum.R8UI:    gputypes.TextureFormatR8Uint,
	glenum.R8I:     gputypes.TextureFormatR8Sint,
	glenum.R16UI:   gputypes.TextureFormatR16Uint,
	glenum.R16I:    gputypes.TextureFormatR16Sint,
	glenum.R16F:    gputypes.TextureFormatR16Float,
	glenum.R32F:    gputypes.TextureFormatR32Float,
	glenum.R32UI:   gputypes.TextureFormatR32Uint,
	glenum.R32I:    gputypes.TextureFormatR32Sint,

	glenum.RG8:      gputypes.TextureFormatRG8Unorm,
	glenum.RG8SNorm: gputypes.TextureFormatRG8Snorm,
	glenum.RG8UI:    gputypes.TextureFormatRG8Uint,
	glenum.RG8I:     gputypes.TextureFormatRG8Sint,
	glenum.RG16UI:   gputypes.TextureFormatRG16Uint,
	glenum.RG16I:    gputypes.TextureFormatRG16Sint,
	glenum.RG16F:    gputypes.TextureFormatRG16Float,
	glenum.RG32F:    gputypes.TextureFormatRG32Float,
	glenum.RG32UI:   gputypes.TextureFormatRG32Uint,
	glenum.RG32I:    gputypes.TextureFormatRG32Sint,

	glenum.RGBA8:       gputypes.TextureFormatRGBA8Unorm,
	glenum.SRGB8Alpha8: gputypes.TextureFormatRGBA8UnormSrgb,
	glenum.RGBA8SNorm:  gputypes.TextureFormatRGBA8Snorm,
	glenum.RGBA8UI:     gputypes.TextureFormatRGBA8Uint,
	glenum.RGBA8I:      gputypes.TextureFormatRGBA8Sint,
	glenum.RGBA16UI:    gputypes.TextureFormatRGBA16Uint,
	glenum.RGBA16I:     gputypes.TextureFormatRGBA16Sint,
	glenum.RGBA16F:     gputypes.TextureFormatRGBA16Float,
	glenum.RGBA32F:     gputypes.TextureFormatRGBA32Float,
	glenum.RGBA32UI:    gputypes.TextureFormatRGBA32Uint,
	glenum.RGBA32I:     gputypes.TextureFormatRGBA32Sint,

	glenum.RGB10A2:      gputypes.TextureFormatRGB10A2Unorm,
	glenum.RGB10A2UI:    gputypes.TextureFormatRGB10A2Uint,
	glenum.R11FG11FB10F: gputypes.TextureFormatRG11B10Ufloat,
	glenum.RGB9E5:       gputypes.TextureFormatRGB9E5Ufloat,

	glenum.DepthComponent16:  gputypes.TextureFormatDepth16Unorm,
	glenum.DepthComponent24:  gputypes.TextureFormatDepth24Plus,
	glenum.DepthComponent32F: gputypes.TextureFormatDepth32Float,
	glenum.Depth24Stencil8:   gputypes.TextureFormatDepth24PlusStencil8,
	glenum.Depth32FStencil8:  gputypes.TextureFormatDepth32FloatStencil8,
}

// TextureFormat returns the WebGPU format with the same layout as sf. Unpacked three
// component, packed 16-bit and legacy formats have no WebGPU equivalent.
func TextureFormat(sf glenum.StorageFormat) (gputypes.TextureFormat, bool) {
	f, ok := webgpuFormats[sf]
	return f, ok
}

// StorageFormat is the inverse of TextureFormat.
func StorageFormat(f gputypes.TextureFormat) (glenum.StorageFormat, bool) {
	for sf, wf := range webgpuFormats {
		if wf == f {
			return sf, true
		}
	}
	return 0, false
}

func addressMode(m glenum.WrapMode) gputypes.AddressMode {
	switch m {
	case glenum.Repeat:
		return gputypes.AddressModeRepeat
	case glenum.MirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func wrapMode(m gputypes.AddressMode) (glenum.WrapMode, error) {
	switch m {
	case gputypes.AddressModeRepeat:
		return glenum.Repeat, nil
	case gputypes.AddressModeMirrorRepeat:
		return glenum.MirroredRepeat, nil
	case gputypes.AddressModeClampToEdge, gputypes.AddressModeUndefined:
		return glenum.ClampToEdge, nil
	}
	return 0, fmt.Errorf("unsupported address mode %v", m)
}

var compareFunctions = map[glenum.CompareFunc]gputypes.CompareFunction{
	glenum.Never:    gputypes.CompareFunctionNever,
	glenum.Less:     gputypes.CompareFunctionLess,
	glenum.Equal:    gputypes.CompareFunctionEqual,
	glenum.LEqual:   gputypes.CompareFunctionLessEqual,
	glenum.Greater:  gputypes.CompareFunctionGreater,
	glenum.NotEqual: gputypes.CompareFunctionNotEqual,
	glenum.GEqual:   gputypes.CompareFunctionGreaterEqual,
	glenum.Always:   gputypes.CompareFunctionAlways,
}

// CompareFunction maps a GL comparison function to WebGPU.
func CompareFunction(fn glenum.CompareFunc) gputypes.CompareFunction {
	return compareFunctions[fn]
}

// filterModes splits a GL minification filter into the WebGPU minification
// and mipmap filters, and reports whether it samples mip levels at all.
func filterModes(f glenum.TextureFilter) (gputypes.FilterMode, gputypes.MipmapFilterMode, bool) {
	switch f {
	case glenum.Nearest:
		return gputypes.FilterModeNearest, gputypes.MipmapFilterModeNearest, false
	case glenum.NearestMipmapNearest:
		return gputypes.FilterModeNearest, gputypes.MipmapFilterModeNearest, true
	case glenum.NearestMipmapLinear:
		return gputypes.FilterModeNearest, gputypes.MipmapFilterModeLinear, true
	case glenum.LinearMipmapNearest:
		return gputypes.FilterModeLinear, gputypes.MipmapFilterModeNearest, true
	case glenum.LinearMipmapLinear:
		return gputypes.FilterModeLinear, gputypes.MipmapFilterModeLinear, true
	default:
		return gputypes.FilterModeLinear, gputypes.MipmapFilterModeNearest, false
	}
}

// SamplerDescriptor converts sampler options to a WebGPU sampler
// descriptor. A minification filter without mipmapping samples only the
// base level, which WebGPU expresses as a [0, 0] LOD range.
func SamplerDescriptor(o sampler.Options, label string) gputypes.SamplerDescriptor {
	minFilter, mipFilter, mipmapped := filterModes(o.MinFilter)
	magFilter := gputypes.FilterModeLinear
	if o.MagFilter == glenum.Nearest {
		magFilter = gputypes.FilterModeNearest
	}

	d := gputypes.SamplerDescriptor{
		Label:         label,
		AddressModeU:  addressMode(o.WrapS),
		AddressModeV:  addressMode(o.WrapT),
		AddressModeW:  addressMode(o.WrapR),
		MagFilter:     magFilter,
		MinFilter:     minFilter,
		MipmapFilter:  mipFilter,
		MaxAnisotropy: 1,
	}
	if mipmapped {
		hi := min(max(o.MaxLOD, 0), maxWebGPULOD)
		d.LodMinClamp = min(max(o.MinLOD, 0), hi)
		d.LodMaxClamp = hi
	}
	if o.CompareMode == glenum.CompareRefToTexture {
		d.Compare = CompareFunction(o.CompareFunc)
	}
	return d
}

// SamplerOptions converts a WebGPU sampler descriptor to sampler options.
// Anisotropy has no counterpart and is ignored.
func SamplerOptions(d gputypes.SamplerDescriptor) (sampler.Options, error) {
	o := sampler.DefaultOptions()

	var err error
	if o.WrapS, err = wrapMode(d.AddressModeU); err != nil {
		return o, err
	}
	if o.WrapT, err = wrapMode(d.AddressModeV); err != nil {
		return o, err
	}
	if o.WrapR, err = wrapMode(d.AddressModeW); err != nil {
		return o, err
	}

	o.MagFilter = glenum.Linear
	if d.MagFilter == gputypes.FilterModeNearest {
		o.MagFilter = glenum.Nearest
	}

	nearest := d.MinFilter == gputypes.FilterModeNearest
	switch {
	case d.LodMaxClamp == 0 && nearest:
		o.MinFilter = glenum.Nearest
	case d.LodMaxClamp == 0:
		o.MinFilter = glenum.Linear
	default:
		linearMip := d.MipmapFilter == gputypes.MipmapFilterModeLinear
		switch {
		case nearest && linearMip:
			o.MinFilter = glenum.NearestMipmapLinear
		case nearest:
			o.MinFilter = glenum.NearestMipmapNearest
		case linearMip:
			o.MinFilter = glenum.LinearMipmapLinear
		default:
			o.MinFilter = glenum.LinearMipmapNearest
		}
		o.MinLOD, o.MaxLOD = d.LodMinClamp, d.LodMaxClamp
	}

	if d.Compare != gputypes.CompareFunctionUndefined {
		found := false
		for fn, wf := range compareFunctions {
			if wf == d.Compare {
				o.CompareMode, o.CompareFunc = glenum.CompareRefToTexture, fn
				found = true
				break
			}
		}
		if !found {
			return o, fmt.Errorf("unsupported compare function %v", d.Compare)
		}
	}
	return o, o.Validate()
}
