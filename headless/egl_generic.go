//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/goglresource/graphics"
)

func New(width, height int) (graphics.Surface, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
