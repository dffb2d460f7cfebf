package sampler

import (
	"fmt"
	"math"
	"slices"

	"github.com/richinsley/goglresource/glenum"
)

// Options is the configuration of a sampler. It is captured by value when
// the sampler is created and never changes afterwards.
type Options struct {
	MinFilter glenum.TextureFilter
	MagFilter glenum.TextureFilter

	WrapS glenum.WrapMode
	WrapT glenum.WrapMode
	WrapR glenum.WrapMode

	MinLOD float32
	MaxLOD float32

	CompareMode glenum.CompareMode
	CompareFunc glenum.CompareFunc
}

// Default level-of-detail range, matching the GL initial state.
const (
	DefaultMinLOD = -1000
	DefaultMaxLOD = 1000
)

// DefaultOptions returns the default sampler configuration: linear
// filtering, clamp-to-edge on all axes, the full LOD range and no depth
// comparison.
func DefaultOptions() Options {
	return Options{
		MinFilter:   glenum.Linear,
		MagFilter:   glenum.Linear,
		WrapS:       glenum.ClampToEdge,
		WrapT:       glenum.ClampToEdge,
		WrapR:       glenum.ClampToEdge,
		MinLOD:      DefaultMinLOD,
		MaxLOD:      DefaultMaxLOD,
		CompareMode: glenum.CompareNone,
		CompareFunc: glenum.LEqual,
	}
}

// Validate reports a configuration the driver would reject.
func (o Options) Validate() error {
	if !slices.Contains(glenum.TextureFilters(), o.MinFilter) {
		return fmt.Errorf("invalid min filter %v", o.MinFilter)
	}
	if o.MagFilter != glenum.Nearest && o.MagFilter != glenum.Linear {
		return fmt.Errorf("invalid mag filter %v", o.MagFilter)
	}
	for _, w := range []glenum.WrapMode{o.WrapS, o.WrapT, o.WrapR} {
		if !slices.Contains(glenum.WrapModes(), w) {
			return fmt.Errorf("invalid wrap mode %v", w)
		}
	}
	if !slices.Contains(glenum.CompareModes(), o.CompareMode) {
		return fmt.Errorf("invalid compare mode %v", o.CompareMode)
	}
	if !slices.Contains(glenum.CompareFuncs(), o.CompareFunc) {
		return fmt.Errorf("invalid compare function %v", o.CompareFunc)
	}
	if math.IsNaN(float64(o.MinLOD)) || math.IsNaN(float64(o.MaxLOD)) {
		return fmt.Errorf("lod range %g..%g is not a number", o.MinLOD, o.MaxLOD)
	}
	if o.MinLOD > o.MaxLOD {
		return fmt.Errorf("min lod %g is above max lod %g", o.MinLOD, o.MaxLOD)
	}
	return nil
}

// Option modifies Options.
type Option func(*Options)

// WithOptions replaces the whole configuration.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

func WithMinFilter(f glenum.TextureFilter) Option {
	return func(o *Options) { o.MinFilter = f }
}

func WithMagFilter(f glenum.TextureFilter) Option {
	return func(o *Options) { o.MagFilter = f }
}

// WithFilter sets both the minification and magnification filters.
func WithFilter(minify, magnify glenum.TextureFilter) Option {
	return func(o *Options) { o.MinFilter, o.MagFilter = minify, magnify }
}

// WithWrap sets the wrap mode of all three axes.
func WithWrap(s, t, r glenum.WrapMode) Option {
	return func(o *Options) { o.WrapS, o.WrapT, o.WrapR = s, t, r }
}

func WithWrapS(m glenum.WrapMode) Option { return func(o *Options) { o.WrapS = m } }
func WithWrapT(m glenum.WrapMode) Option { return func(o *Options) { o.WrapT = m } }
func WithWrapR(m glenum.WrapMode) Option { return func(o *Options) { o.WrapR = m } }

// WithLOD sets the level-of-detail range.
func WithLOD(lo, hi float32) Option {
	return func(o *Options) { o.MinLOD, o.MaxLOD = lo, hi }
}

// WithCompare enables or disables depth comparison.
func WithCompare(mode glenum.CompareMode, fn glenum.CompareFunc) Option {
	return func(o *Options) { o.CompareMode, o.CompareFunc = mode, fn }
}
