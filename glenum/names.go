package glenum

import (
	"fmt"
	"slices"
	"strings"
)

// member pairs an enumeration value with its GL name.
type member[T ~uint32] struct {
	value T
	name  string
}

// table is the closed member list of one enumeration, in declaration order.
type table[T ~uint32] []member[T]

func (t table[T]) values() []T {
	out := make([]T, len(t))
	for i, m := range t {
		out[i] = m.value
	}
	return out
}

func (t table[T]) name(v T) string {
	for _, m := range t {
		if m.value == v {
			return m.name
		}
	}
	return fmt.Sprintf("0x%04X", uint32(v))
}

func (t table[T]) parse(kind, s string) (T, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "GL_")
	for _, m := range t {
		if m.name == key {
			return m.value, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

var filters = table[TextureFilter]{
	{Nearest, "NEAREST"},
	{Linear, "LINEAR"},
	{NearestMipmapNearest, "NEAREST_MIPMAP_NEAREST"},
	{LinearMipmapNearest, "LINEAR_MIPMAP_NEAREST"},
	{NearestMipmapLinear, "NEAREST_MIPMAP_LINEAR"},
	{LinearMipmapLinear, "LINEAR_MIPMAP_LINEAR"},
}

var wrapModes = table[WrapMode]{
	{Repeat, "REPEAT"},
	{ClampToEdge, "CLAMP_TO_EDGE"},
	{MirroredRepeat, "MIRRORED_REPEAT"},
}

var compareModes = table[CompareMode]{
	{CompareNone, "NONE"},
	{CompareRefToTexture, "COMPARE_REF_TO_TEXTURE"},
}

var compareFuncs = table[CompareFunc]{
	{Never, "NEVER"},
	{Less, "LESS"},
	{Equal, "EQUAL"},
	{LEqual, "LEQUAL"},
	{Greater, "GREATER"},
	{NotEqual, "NOTEQUAL"},
	{GEqual, "GEQUAL"},
	{Always, "ALWAYS"},
}

var samplerParams = table[SamplerParam]{
	{MagFilter, "TEXTURE_MAG_FILTER"},
	{MinFilter, "TEXTURE_MIN_FILTER"},
	{WrapS, "TEXTURE_WRAP_S"},
	{WrapT, "TEXTURE_WRAP_T"},
	{WrapR, "TEXTURE_WRAP_R"},
	{MinLOD, "TEXTURE_MIN_LOD"},
	{MaxLOD, "TEXTURE_MAX_LOD"},
	{CompareModeParam, "TEXTURE_COMPARE_MODE"},
	{CompareFuncParam, "TEXTURE_COMPARE_FUNC"},
}

var targets = table[TextureTarget]{
	{Texture2D, "TEXTURE_2D"},
	{Texture3D, "TEXTURE_3D"},
	{Texture2DArray, "TEXTURE_2D_ARRAY"},
	{TextureCubeMap, "TEXTURE_CUBE_MAP"},
}

var baseFormats = table[BaseFormat]{
	{Red, "RED"},
	{RG, "RG"},
	{RGB, "RGB"},
	{RGBA, "RGBA"},
	{RedInteger, "RED_INTEGER"},
	{RGInteger, "RG_INTEGER"},
	{RGBInteger, "RGB_INTEGER"},
	{RGBAInteger, "RGBA_INTEGER"},
	{Alpha, "ALPHA"},
	{Luminance, "LUMINANCE"},
	{LuminanceAlpha, "LUMINANCE_ALPHA"},
	{DepthComponent, "DEPTH_COMPONENT"},
	{DepthStencil, "DEPTH_STENCIL"},
}

var dataTypes = table[DataType]{
	{Byte, "BYTE"},
	{UnsignedByte, "UNSIGNED_BYTE"},
	{Short, "SHORT"},
	{UnsignedShort, "UNSIGNED_SHORT"},
	{Int, "INT"},
	{UnsignedInt, "UNSIGNED_INT"},
	{HalfFloat, "HALF_FLOAT"},
	{Float, "FLOAT"},
	{UnsignedShort565, "UNSIGNED_SHORT_5_6_5"},
	{UnsignedShort4444, "UNSIGNED_SHORT_4_4_4_4"},
	{UnsignedShort5551, "UNSIGNED_SHORT_5_5_5_1"},
	{UnsignedInt2101010Rev, "UNSIGNED_INT_2_10_10_10_REV"},
	{UnsignedInt10F11F11FRev, "UNSIGNED_INT_10F_11F_11F_REV"},
	{UnsignedInt5999Rev, "UNSIGNED_INT_5_9_9_9_REV"},
	{UnsignedInt248, "UNSIGNED_INT_24_8"},
	{Float32UnsignedInt248Rev, "FLOAT_32_UNSIGNED_INT_24_8_REV"},
}

var storageFormats = table[StorageFormat]{
	{R8, "R8"}, {RG8, "RG8"}, {RGB8, "RGB8"}, {RGBA8, "RGBA8"},
	{R8SNorm, "R8_SNORM"}, {RG8SNorm, "RG8_SNORM"}, {RGB8SNorm, "RGB8_SNORM"}, {RGBA8SNorm, "RGBA8_SNORM"},
	{R16F, "R16F"}, {RG16F, "RG16F"}, {RGB16F, "RGB16F"}, {RGBA16F, "RGBA16F"},
	{R32F, "R32F"}, {RG32F, "RG32F"}, {RGB32F, "RGB32F"}, {RGBA32F, "RGBA32F"},
	{R8UI, "R8UI"}, {RG8UI, "RG8UI"}, {RGB8UI, "RGB8UI"}, {RGBA8UI, "RGBA8UI"},
	{R8I, "R8I"}, {RG8I, "RG8I"}, {RGB8I, "RGB8I"}, {RGBA8I, "RGBA8I"},
	{R16UI, "R16UI"}, {RG16UI, "RG16UI"}, {RGB16UI, "RGB16UI"}, {RGBA16UI, "RGBA16UI"},
	{R16I, "R16I"}, {RG16I, "RG16I"}, {RGB16I, "RGB16I"}, {RGBA16I, "RGBA16I"},
	{R32UI, "R32UI"}, {RG32UI, "RG32UI"}, {RGB32UI, "RGB32UI"}, {RGBA32UI, "RGBA32UI"},
	{R32I, "R32I"}, {RG32I, "RG32I"}, {RGB32I, "RGB32I"}, {RGBA32I, "RGBA32I"},
	{AlphaFormat, "ALPHA"},
	{LuminanceFormat, "LUMINANCE"},
	{LuminanceAlphaFormat, "LUMINANCE_ALPHA"},
	{RGBFormat, "RGB"},
	{RGBAFormat, "RGBA"},
	{SRGB8, "SRGB8"},
	{SRGB8Alpha8, "SRGB8_ALPHA8"},
	{RGB565, "RGB565"},
	{RGBA4, "RGBA4"},
	{RGB5A1, "RGB5_A1"},
	{RGB10A2, "RGB10_A2"},
	{RGB10A2UI, "RGB10_A2UI"},
	{R11FG11FB10F, "R11F_G11F_B10F"},
	{RGB9E5, "RGB9_E5"},
	{DepthComponent16, "DEPTH_COMPONENT16"},
	{DepthComponent24, "DEPTH_COMPONENT24"},
	{DepthComponent32F, "DEPTH_COMPONENT32F"},
	{Depth24Stencil8, "DEPTH24_STENCIL8"},
	{Depth32FStencil8, "DEPTH32F_STENCIL8"},
}

func (f TextureFilter) String() string { return filters.name(f) }
func (m WrapMode) String() string      { return wrapModes.name(m) }
func (m CompareMode) String() string   { return compareModes.name(m) }
func (f CompareFunc) String() string   { return compareFuncs.name(f) }
func (p SamplerParam) String() string  { return samplerParams.name(p) }
func (t TextureTarget) String() string { return targets.name(t) }
func (f BaseFormat) String() string    { return baseFormats.name(f) }
func (t DataType) String() string      { return dataTypes.name(t) }
func (f StorageFormat) String() string { return storageFormats.name(f) }

// Member lists. Each returns a fresh slice in declaration order.

func TextureFilters() []TextureFilter { return filters.values() }
func WrapModes() []WrapMode           { return wrapModes.values() }
func CompareModes() []CompareMode     { return compareModes.values() }
func CompareFuncs() []CompareFunc     { return compareFuncs.values() }
func SamplerParams() []SamplerParam   { return samplerParams.values() }
func TextureTargets() []TextureTarget { return targets.values() }
func BaseFormats() []BaseFormat       { return baseFormats.values() }
func DataTypes() []DataType           { return dataTypes.values() }
func StorageFormats() []StorageFormat { return storageFormats.values() }

// IsMipmapFilter reports whether f samples from more than one mip level.
func (f TextureFilter) IsMipmapFilter() bool {
	return f != Nearest && f != Linear
}

// Valid reports whether f is a member of the enumeration.
func (f StorageFormat) Valid() bool {
	return slices.ContainsFunc(storageFormats, func(m member[StorageFormat]) bool { return m.value == f })
}

// ParseTextureFilter accepts a GL filter name such as "linear" or "GL_NEAREST".
func ParseTextureFilter(s string) (TextureFilter, error) { return filters.parse("texture filter", s) }

// ParseWrapMode accepts a GL wrap mode name. The short forms "clamp" and
// "mirror" are accepted as well.
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clamp":
		return ClampToEdge, nil
	case "mirror":
		return MirroredRepeat, nil
	}
	return wrapModes.parse("wrap mode", s)
}

func ParseCompareMode(s string) (CompareMode, error) { return compareModes.parse("compare mode", s) }
func ParseCompareFunc(s string) (CompareFunc, error) { return compareFuncs.parse("compare function", s) }

// ParseStorageFormat accepts a GL internal format name such as "RGBA8".
func ParseStorageFormat(s string) (StorageFormat, error) {
	return storageFormats.parse("storage format", s)
}
