package texture

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// maxDownloadSize caps the size of a downloaded image.
var maxDownloadSize int64 = 64 << 20

var httpClient = &http.Client{
	Transport: &headerTransport{Transport: http.DefaultTransport},
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "goglresource")
	return t.Transport.RoundTrip(req)
}

// CacheDir returns the directory downloaded images are cached in, creating
// it if needed. GLRES_CACHE_DIR overrides the OS default.
func CacheDir() (string, error) {
	if dir := os.Getenv("GLRES_CACHE_DIR"); dir != "" {
		return ensureDir(dir)
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			return "", fmt.Errorf("LOCALAPPDATA environment variable not set")
		}
	case "darwin":
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("HOME environment variable not set")
		}
		base = filepath.Join(home, "Library", "Caches")
	default: // linux, bsd, etc.
		base = os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home := os.Getenv("HOME")
			if home == "" {
				return "", fmt.Errorf("HOME environment variable not set")
			}
			base = filepath.Join(home, ".cache")
		}
	}
	return ensureDir(filepath.Join(base, "goglresource", "media"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory at %s: %w", dir, err)
	}
	return dir, nil
}

// cacheName keeps the extension of the URL path so the cached file is
// recognizable, and hashes the full URL to avoid collisions.
func cacheName(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:8])
	if u, err := url.Parse(rawURL); err == nil {
		name += path.Ext(u.Path)
	}
	return name
}

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Open decodes an image from a local path or an http(s) URL. Downloads are
// kept in CacheDir when useCache is set; an undecodable cache entry is
// downloaded again.
func Open(ctx context.Context, src string, useCache bool) (image.Image, error) {
	if !IsURL(src) {
		return Load(src)
	}

	var cachePath string
	if useCache {
		dir, err := CacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not get cache directory: %w", err)
		}
		cachePath = filepath.Join(dir, cacheName(src))
		if img, err := Load(cachePath); err == nil {
			log.WithFields(log.Fields{"url": src, "path": cachePath}).Debug("Using cached image")
			return img, nil
		} else if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", cachePath).Warn("Could not decode cached image, downloading again")
		}
	}

	data, err := download(ctx, src)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode downloaded image from %s: %w", src, err)
	}
	log.WithFields(log.Fields{"url": src, "format": format, "bytes": len(data)}).Debug("Downloaded image")

	if cachePath != "" {
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			log.WithError(err).WithField("path", cachePath).Warn("Failed to save image to cache")
		}
	}
	return img, nil
}

func download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: bad response status: %s", src, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", src, err)
	}
	if int64(len(data)) > maxDownloadSize {
		return nil, fmt.Errorf("failed to download %s: response exceeds %d bytes", src, maxDownloadSize)
	}
	return data, nil
}
