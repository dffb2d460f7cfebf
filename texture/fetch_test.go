package texture

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/tex.png" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "goglresource", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/png")
		assert.NoError(t, png.Encode(w, testImage()))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestOpenDownloadsAndCaches(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("GLRES_CACHE_DIR", cache)
	srv, hits := imageServer(t)

	img, err := Open(context.Background(), srv.URL+"/tex.png", true)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), img.Bounds().Size())

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))

	_, err = Open(context.Background(), srv.URL+"/tex.png", true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load(), "second open is served from the cache")
}

func TestOpenWithoutCache(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("GLRES_CACHE_DIR", cache)
	srv, hits := imageServer(t)

	for i := 0; i < 2; i++ {
		_, err := Open(context.Background(), srv.URL+"/tex.png", false)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, hits.Load())

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenReplacesCorruptCacheEntry(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("GLRES_CACHE_DIR", cache)
	srv, hits := imageServer(t)
	url := srv.URL + "/tex.png"

	require.NoError(t, os.WriteFile(filepath.Join(cache, cacheName(url)), []byte("not an image"), 0644))
	_, err := Open(context.Background(), url, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	_, err = Load(filepath.Join(cache, cacheName(url)))
	assert.NoError(t, err)
}

func TestOpenBadStatus(t *testing.T) {
	t.Setenv("GLRES_CACHE_DIR", t.TempDir())
	srv, _ := imageServer(t)
	_, err := Open(context.Background(), srv.URL+"/missing.png", true)
	assert.ErrorContains(t, err, "404")
}

func TestOpenRejectsOversizedDownload(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("GLRES_CACHE_DIR", cache)
	srv, hits := imageServer(t)

	limit := maxDownloadSize
	maxDownloadSize = 16
	t.Cleanup(func() { maxDownloadSize = limit })

	_, err := Open(context.Background(), srv.URL+"/tex.png", true)
	assert.ErrorContains(t, err, "exceeds 16 bytes")
	assert.EqualValues(t, 1, hits.Load())

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenLocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	img, err := Open(context.Background(), path, true)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), img.Bounds().Size())
	assert.False(t, IsURL(path))
}

func TestCacheNameIsStable(t *testing.T) {
	a := cacheName("https://example.com/a/tex.jpg?v=1")
	assert.Equal(t, a, cacheName("https://example.com/a/tex.jpg?v=1"))
	assert.NotEqual(t, a, cacheName("https://example.com/b/tex.jpg?v=1"))
	assert.Equal(t, ".jpg", filepath.Ext(a))
}
