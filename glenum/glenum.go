// Package glenum defines the typed OpenGL enumerations used by the resource
// layer. Every constant carries the numeric value of the GL constant it
// mirrors, so values can be handed to the driver without translation.
package glenum

// TextureFilter is a minification or magnification filter.
type TextureFilter uint32

const (
	Nearest              TextureFilter = 0x2600
	Linear               TextureFilter = 0x2601
	NearestMipmapNearest TextureFilter = 0x2700
	LinearMipmapNearest  TextureFilter = 0x2701
	NearestMipmapLinear  TextureFilter = 0x2702
	LinearMipmapLinear   TextureFilter = 0x2703
)

// WrapMode is a texture coordinate wrap mode.
type WrapMode uint32

const (
	Repeat         WrapMode = 0x2901
	ClampToEdge    WrapMode = 0x812F
	MirroredRepeat WrapMode = 0x8370
)

// CompareMode selects whether depth comparison is performed on sampling.
type CompareMode uint32

const (
	CompareNone         CompareMode = 0
	CompareRefToTexture CompareMode = 0x884E
)

// CompareFunc is the depth comparison function.
type CompareFunc uint32

const (
	Never    CompareFunc = 0x0200
	Less     CompareFunc = 0x0201
	Equal    CompareFunc = 0x0202
	LEqual   CompareFunc = 0x0203
	Greater  CompareFunc = 0x0204
	NotEqual CompareFunc = 0x0205
	GEqual   CompareFunc = 0x0206
	Always   CompareFunc = 0x0207
)

// SamplerParam names a sampling parameter. The same names are accepted by
// sampler objects and by texture objects.
type SamplerParam uint32

const (
	MagFilter        SamplerParam = 0x2800
	MinFilter        SamplerParam = 0x2801
	WrapS            SamplerParam = 0x2802
	WrapT            SamplerParam = 0x2803
	WrapR            SamplerParam = 0x8072
	MinLOD           SamplerParam = 0x813A
	MaxLOD           SamplerParam = 0x813B
	CompareModeParam SamplerParam = 0x884C
	CompareFuncParam SamplerParam = 0x884D
)

// TextureTarget is a texture binding point.
type TextureTarget uint32

const (
	Texture2D      TextureTarget = 0x0DE1
	Texture3D      TextureTarget = 0x806F
	Texture2DArray TextureTarget = 0x8C1A
	TextureCubeMap TextureTarget = 0x8513
)

// BaseFormat is the channel layout of pixel data, the "format" argument of
// the texture image calls.
type BaseFormat uint32

const (
	DepthComponent BaseFormat = 0x1902
	Red            BaseFormat = 0x1903
	Alpha          BaseFormat = 0x1906
	RGB            BaseFormat = 0x1907
	RGBA           BaseFormat = 0x1908
	Luminance      BaseFormat = 0x1909
	LuminanceAlpha BaseFormat = 0x190A
	RG             BaseFormat = 0x8227
	RGInteger      BaseFormat = 0x8228
	DepthStencil   BaseFormat = 0x84F9
	RedInteger     BaseFormat = 0x8D94
	RGBInteger     BaseFormat = 0x8D98
	RGBAInteger    BaseFormat = 0x8D99
)

// DataType is the component type of pixel data.
type DataType uint32

const (
	Byte                     DataType = 0x1400
	UnsignedByte             DataType = 0x1401
	Short                    DataType = 0x1402
	UnsignedShort            DataType = 0x1403
	Int                      DataType = 0x1404
	UnsignedInt              DataType = 0x1405
	Float                    DataType = 0x1406
	HalfFloat                DataType = 0x140B
	UnsignedShort4444        DataType = 0x8033
	UnsignedShort5551        DataType = 0x8034
	UnsignedShort565         DataType = 0x8363
	UnsignedInt2101010Rev    DataType = 0x8368
	UnsignedInt248           DataType = 0x84FA
	UnsignedInt10F11F11FRev  DataType = 0x8C3B
	UnsignedInt5999Rev       DataType = 0x8C3E
	Float32UnsignedInt248Rev DataType = 0x8DAD
)

// StorageFormat is a texture internal format.
type StorageFormat uint32

// Unsized legacy formats.
const (
	AlphaFormat          StorageFormat = 0x1906
	RGBFormat            StorageFormat = 0x1907
	RGBAFormat           StorageFormat = 0x1908
	LuminanceFormat      StorageFormat = 0x1909
	LuminanceAlphaFormat StorageFormat = 0x190A
)

// Normalized unsigned byte formats.
const (
	R8    StorageFormat = 0x8229
	RG8   StorageFormat = 0x822B
	RGB8  StorageFormat = 0x8051
	RGBA8 StorageFormat = 0x8058
)

// Normalized signed byte formats.
const (
	R8SNorm    StorageFormat = 0x8F94
	RG8SNorm   StorageFormat = 0x8F95
	RGB8SNorm  StorageFormat = 0x8F96
	RGBA8SNorm StorageFormat = 0x8F97
)

// Float formats.
const (
	R16F    StorageFormat = 0x822D
	RG16F   StorageFormat = 0x822F
	RGB16F  StorageFormat = 0x881B
	RGBA16F StorageFormat = 0x881A
	R32F    StorageFormat = 0x822E
	RG32F   StorageFormat = 0x8230
	RGB32F  StorageFormat = 0x8815
	RGBA32F StorageFormat = 0x8814
)

// Integer formats.
const (
	R8UI     StorageFormat = 0x8232
	RG8UI    StorageFormat = 0x8238
	RGB8UI   StorageFormat = 0x8D7D
	RGBA8UI  StorageFormat = 0x8D7C
	R8I      StorageFormat = 0x8231
	RG8I     StorageFormat = 0x8237
	RGB8I    StorageFormat = 0x8D8F
	RGBA8I   StorageFormat = 0x8D8E
	R16UI    StorageFormat = 0x8234
	RG16UI   StorageFormat = 0x823A
	RGB16UI  StorageFormat = 0x8D77
	RGBA16UI StorageFormat = 0x8D76
	R16I     StorageFormat = 0x8233
	RG16I    StorageFormat = 0x8239
	RGB16I   StorageFormat = 0x8D89
	RGBA16I  StorageFormat = 0x8D88
	R32UI    StorageFormat = 0x8236
	RG32UI   StorageFormat = 0x823C
	RGB32UI  StorageFormat = 0x8D71
	RGBA32UI StorageFormat = 0x8D70
	R32I     StorageFormat = 0x8235
	RG32I    StorageFormat = 0x823B
	RGB32I   StorageFormat = 0x8D83
	RGBA32I  StorageFormat = 0x8D82
)

// sRGB, packed and shared-exponent formats.
const (
	SRGB8        StorageFormat = 0x8C41
	SRGB8Alpha8  StorageFormat = 0x8C43
	RGB565       StorageFormat = 0x8D62
	RGBA4        StorageFormat = 0x8056
	RGB5A1       StorageFormat = 0x8057
	RGB10A2      StorageFormat = 0x8059
	RGB10A2UI    StorageFormat = 0x906F
	R11FG11FB10F StorageFormat = 0x8C3A
	RGB9E5       StorageFormat = 0x8C3D
)

// Depth and depth-stencil formats.
const (
	DepthComponent16  StorageFormat = 0x81A5
	DepthComponent24  StorageFormat = 0x81A6
	DepthComponent32F StorageFormat = 0x8CAC
	Depth24Stencil8   StorageFormat = 0x88F0
	Depth32FStencil8  StorageFormat = 0x8CAD
)
