package glenum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkUnique[T ~uint32](t *testing.T, kind string, tab table[T]) {
	t.Helper()
	values := map[T]string{}
	names := map[string]bool{}
	for _, m := range tab {
		if prev, ok := values[m.value]; ok {
			t.Errorf("%s: value 0x%04X used by both %s and %s", kind, uint32(m.value), prev, m.name)
		}
		if names[m.name] {
			t.Errorf("%s: name %s listed twice", kind, m.name)
		}
		values[m.value] = m.name
		names[m.name] = true
	}
}

func TestMemberListsAreClosedSets(t *testing.T) {
	checkUnique(t, "filters", filters)
	checkUnique(t, "wrap modes", wrapModes)
	checkUnique(t, "compare modes", compareModes)
	checkUnique(t, "compare funcs", compareFuncs)
	checkUnique(t, "sampler params", samplerParams)
	checkUnique(t, "targets", targets)
	checkUnique(t, "base formats", baseFormats)
	checkUnique(t, "data types", dataTypes)
	checkUnique(t, "storage formats", storageFormats)

	assert.Len(t, StorageFormats(), 59)
	assert.Len(t, BaseFormats(), 13)
	assert.Len(t, DataTypes(), 16)
}

// The legacy luminance formats are absent from core-profile headers, so they
// are pinned to the values from the GL registry here.
func TestLegacyFormatValues(t *testing.T) {
	assert.EqualValues(t, 0x1906, AlphaFormat)
	assert.EqualValues(t, 0x1909, LuminanceFormat)
	assert.EqualValues(t, 0x190A, LuminanceAlphaFormat)
	assert.EqualValues(t, 0x1909, Luminance)
	assert.EqualValues(t, 0x190A, LuminanceAlpha)
}

func TestString(t *testing.T) {
	assert.Equal(t, "LINEAR", Linear.String())
	assert.Equal(t, "CLAMP_TO_EDGE", ClampToEdge.String())
	assert.Equal(t, "LEQUAL", LEqual.String())
	assert.Equal(t, "RGBA_INTEGER", RGBAInteger.String())
	assert.Equal(t, "R11F_G11F_B10F", R11FG11FB10F.String())
	assert.Equal(t, "0x1234", StorageFormat(0x1234).String())
}

func TestParse(t *testing.T) {
	f, err := ParseTextureFilter("gl_linear_mipmap_linear")
	require.NoError(t, err)
	assert.Equal(t, LinearMipmapLinear, f)

	w, err := ParseWrapMode("clamp")
	require.NoError(t, err)
	assert.Equal(t, ClampToEdge, w)

	w, err = ParseWrapMode("REPEAT")
	require.NoError(t, err)
	assert.Equal(t, Repeat, w)

	sf, err := ParseStorageFormat(" rgba16f ")
	require.NoError(t, err)
	assert.Equal(t, RGBA16F, sf)

	fn, err := ParseCompareFunc("notequal")
	require.NoError(t, err)
	assert.Equal(t, NotEqual, fn)

	_, err = ParseStorageFormat("RGBA7")
	assert.ErrorContains(t, err, "unknown storage format")
}

func TestIsMipmapFilter(t *testing.T) {
	assert.False(t, Nearest.IsMipmapFilter())
	assert.False(t, Linear.IsMipmapFilter())
	assert.True(t, NearestMipmapLinear.IsMipmapFilter())
	assert.True(t, LinearMipmapNearest.IsMipmapFilter())
}

func TestValid(t *testing.T) {
	for _, f := range StorageFormats() {
		assert.True(t, f.Valid(), f.String())
	}
	assert.False(t, StorageFormat(0).Valid())
}
