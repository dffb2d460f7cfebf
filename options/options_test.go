package options

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goglresource/glenum"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	o, err := Load([]string{"-env", ""}, noEnv)
	require.NoError(t, err)

	want := Default()
	want.EnvFile = ""
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayering(t *testing.T) {
	config := writeFile(t, "probe.toml", `
width = 640
height = 480
log_level = "debug"
min_filter = "NEAREST"
wrap = "REPEAT"
compare_mode = "COMPARE_REF_TO_TEXTURE"
compare_func = "LESS"
`)
	dotenv := writeFile(t, ".env", "GLRES_HEIGHT=300\nGLRES_WRAP=mirror\nGLRES_LOG_FORMAT=json\n")
	env := envMap(map[string]string{
		"GLRES_WRAP":         "clamp",
		"GLRES_HEADLESS":     "true",
		"GLRES_COMPARE_FUNC": "GREATER",
	})

	o, err := Load([]string{"-config", config, "-env", dotenv, "-width", "320"}, env)
	require.NoError(t, err)

	assert.Equal(t, 320, o.Width, "flag beats file")
	assert.Equal(t, 300, o.Height, "dotenv beats file")
	assert.Equal(t, "clamp", o.Wrap, "environment beats dotenv")
	assert.Equal(t, "json", o.LogFormat)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "NEAREST", o.MinFilter)
	assert.True(t, o.Headless)

	s, err := o.SamplerOptions()
	require.NoError(t, err)
	assert.Equal(t, glenum.Nearest, s.MinFilter)
	assert.Equal(t, glenum.ClampToEdge, s.WrapR)
	assert.Equal(t, glenum.CompareRefToTexture, s.CompareMode)
	assert.Equal(t, glenum.Greater, s.CompareFunc, "environment beats file")
}

func TestMissingDotenvIsIgnored(t *testing.T) {
	_, err := Load([]string{"-env", filepath.Join(t.TempDir(), "absent.env")}, noEnv)
	assert.NoError(t, err)
}

func TestUnknownConfigKey(t *testing.T) {
	config := writeFile(t, "probe.toml", "widht = 10\n")
	_, err := Load([]string{"-config", config, "-env", ""}, noEnv)
	assert.ErrorContains(t, err, "widht")
}

func TestInvalidValues(t *testing.T) {
	for name, args := range map[string][]string{
		"size":       {"-width", "0"},
		"log level":  {"-log-level", "loud"},
		"log format": {"-log-format", "xml"},
		"filter":     {"-min-filter", "CUBIC"},
		"mag filter": {"-mag-filter", "LINEAR_MIPMAP_LINEAR"},
		"format":     {"-format", "RGBA7"},
		"compare":    {"-compare-mode", "COMPARE_R_TO_TEXTURE"},
		"comparison": {"-compare-func", "LEQ"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(append(args, "-env", ""), noEnv)
			assert.Error(t, err)
		})
	}
}

func TestBadEnvironmentValue(t *testing.T) {
	_, err := Load([]string{"-env", ""}, envMap(map[string]string{"GLRES_WIDTH": "wide"}))
	assert.ErrorContains(t, err, "GLRES_WIDTH")
}

func TestCommandLineOnlyFlagsIgnoreEnvironment(t *testing.T) {
	o, err := Load([]string{"-env", ""}, envMap(map[string]string{"GLRES_FORMATS": "true"}))
	require.NoError(t, err)
	assert.False(t, o.Formats)
}

func TestHelp(t *testing.T) {
	_, err := Load([]string{"-h"}, noEnv)
	assert.ErrorIs(t, err, flag.ErrHelp)

	var buf bytes.Buffer
	Usage(&buf)
	assert.Contains(t, buf.String(), "-min-filter")
	assert.Contains(t, buf.String(), "-compare-func")
	assert.Contains(t, buf.String(), "GLRES_")
}

func TestTextureOptions(t *testing.T) {
	o := Default()
	o.Format = "SRGB8_ALPHA8"
	o.Mipmaps = true
	opts, err := o.TextureOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}
