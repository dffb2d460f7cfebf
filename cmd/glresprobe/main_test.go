package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richinsley/goglresource/formats"
	"github.com/richinsley/goglresource/glenum"
)

func TestPrintFormats(t *testing.T) {
	var buf bytes.Buffer
	printFormats(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(glenum.StorageFormats())+1)
	assert.True(t, strings.HasPrefix(lines[0], "FORMAT"))

	var rgba8 string
	for _, l := range lines {
		if strings.HasPrefix(l, "RGBA8 ") {
			rgba8 = l
		}
	}
	assert.Equal(t, []string{"RGBA8", "RGBA", "UNSIGNED_BYTE", "4", "4", "normalized", "RGBA8Unorm"}, strings.Fields(rgba8))
}

func TestFlags(t *testing.T) {
	assert.Equal(t, "integer", flags(formats.MustLookup(glenum.R32UI)))
	assert.Equal(t, "depth,stencil", flags(formats.MustLookup(glenum.Depth32FStencil8)))
	assert.Equal(t, "normalized,srgb", flags(formats.MustLookup(glenum.SRGB8Alpha8)))
}
