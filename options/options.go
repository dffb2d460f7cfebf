package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/goglresource/glenum"
	"github.com/richinsley/goglresource/sampler"
	"github.com/richinsley/goglresource/texture"
)

// EnvPrefix prefixes the environment variable of every flag, e.g.
// GLRES_LOG_LEVEL for -log-level.
const EnvPrefix = "GLRES_"

type ProbeOptions struct {
	Width    int  `toml:"width"`
	Height   int  `toml:"height"`
	Visible  bool `toml:"visible"`
	Headless bool `toml:"headless"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // text or json

	ImagePath string `toml:"image"` // path or http(s) URL
	Cache     bool   `toml:"cache"`
	FlipY     bool   `toml:"flip_y"`
	Format    string `toml:"format"`
	Mipmaps   bool   `toml:"mipmaps"`
	MinFilter string `toml:"min_filter"`
	MagFilter string `toml:"mag_filter"`
	Wrap      string `toml:"wrap"`

	CompareMode string `toml:"compare_mode"`
	CompareFunc string `toml:"compare_func"`

	// Command line only.
	ConfigFile string `toml:"-"`
	EnvFile    string `toml:"-"`
	Formats    bool   `toml:"-"`
}

func Default() ProbeOptions {
	return ProbeOptions{
		Width:     1280,
		Height:    720,
		LogLevel:  "info",
		LogFormat: "text",
		Cache:     true,
		FlipY:     true,
		Format:    "RGBA8",
		MinFilter: "LINEAR",
		MagFilter: "LINEAR",
		Wrap:      "CLAMP_TO_EDGE",
		EnvFile:   ".env",

		CompareMode: "NONE",
		CompareFunc: "LEQUAL",
	}
}

// flagSet binds every option to a flag whose default is the current value.
func (o *ProbeOptions) flagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&o.ConfigFile, "config", o.ConfigFile, "TOML configuration file")
	flags.StringVar(&o.EnvFile, "env", o.EnvFile, "dotenv file with GLRES_* variables")
	flags.BoolVar(&o.Formats, "formats", o.Formats, "Print the storage format table and exit")

	flags.IntVar(&o.Width, "width", o.Width, "Width of the surface")
	flags.IntVar(&o.Height, "height", o.Height, "Height of the surface")
	flags.BoolVar(&o.Visible, "visible", o.Visible, "Show the window")
	flags.BoolVar(&o.Headless, "headless", o.Headless, "Use an EGL pbuffer instead of a window")
	flags.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&o.LogFormat, "log-format", o.LogFormat, "Log format (text or json)")

	flags.StringVar(&o.ImagePath, "image", o.ImagePath, "Image file or http(s) URL to upload as a texture")
	flags.BoolVar(&o.Cache, "cache", o.Cache, "Cache downloaded images")
	flags.BoolVar(&o.FlipY, "flip", o.FlipY, "Flip the image vertically before upload")
	flags.StringVar(&o.Format, "format", o.Format, "Texture storage format")
	flags.BoolVar(&o.Mipmaps, "mipmaps", o.Mipmaps, "Generate texture mipmaps")
	flags.StringVar(&o.MinFilter, "min-filter", o.MinFilter, "Minification filter")
	flags.StringVar(&o.MagFilter, "mag-filter", o.MagFilter, "Magnification filter")
	flags.StringVar(&o.Wrap, "wrap", o.Wrap, "Wrap mode on all axes")
	flags.StringVar(&o.CompareMode, "compare-mode", o.CompareMode, "Depth compare mode (NONE or COMPARE_REF_TO_TEXTURE)")
	flags.StringVar(&o.CompareFunc, "compare-func", o.CompareFunc, "Depth compare function")
	return flags
}

// envExempt lists flags that only make sense on the command line.
var envExempt = map[string]bool{"config": true, "env": true, "formats": true}

func envName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Usage writes the flag documentation to w.
func Usage(w io.Writer) {
	o := Default()
	flags := o.flagSet("glresprobe")
	flags.SetOutput(w)
	fmt.Fprintln(w, "OpenGL resource probe")
	flags.PrintDefaults()
	fmt.Fprintf(w, "Every flag except -config, -env and -formats can also be set through %s<FLAG>.\n", EnvPrefix)
}

// Load builds the options from, in increasing precedence, the defaults, the
// TOML file named by -config, the dotenv file named by -env, the
// environment as seen through lookup, and the command line. It returns
// flag.ErrHelp when args ask for help.
func Load(args []string, lookup func(string) (string, bool)) (ProbeOptions, error) {
	// The first pass only locates the configuration sources.
	src := Default()
	if err := src.flagSet("glresprobe").Parse(args); err != nil {
		return src, err
	}

	o := Default()
	if src.ConfigFile != "" {
		if err := o.LoadFile(src.ConfigFile); err != nil {
			return o, err
		}
	}

	env, err := readEnvFile(src.EnvFile)
	if err != nil {
		return o, err
	}
	if err := o.applyEnv(func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return o, err
	}

	if err := o.flagSet("glresprobe").Parse(args); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// LoadFile overlays the settings of a TOML file. Unknown keys are an error.
func (o *ProbeOptions) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(o); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%s: %s", path, strict.String())
		}
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	log.WithField("path", path).Debug("Loaded config file")
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

func (o *ProbeOptions) applyEnv(lookup func(string) (string, bool)) error {
	flags := o.flagSet("env")
	var errs []error
	flags.VisitAll(func(f *flag.Flag) {
		if envExempt[f.Name] {
			return
		}
		key := envName(f.Name)
		v, ok := lookup(key)
		if !ok {
			return
		}
		if err := flags.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return errors.Join(errs...)
}

// Validate checks every value that is parsed lazily by the accessors below.
func (o ProbeOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if _, err := log.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", o.LogFormat)
	}
	if _, err := o.SamplerOptions(); err != nil {
		return err
	}
	if _, err := glenum.ParseStorageFormat(o.Format); err != nil {
		return err
	}
	return nil
}

// ConfigureLogging applies the log level and format to the standard logger.
func (o ProbeOptions) ConfigureLogging() error {
	level, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if o.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// SamplerOptions returns the sampler configuration named by the filter, wrap
// and compare settings.
func (o ProbeOptions) SamplerOptions() (sampler.Options, error) {
	s := sampler.DefaultOptions()
	var err error
	if s.MinFilter, err = glenum.ParseTextureFilter(o.MinFilter); err != nil {
		return s, err
	}
	if s.MagFilter, err = glenum.ParseTextureFilter(o.MagFilter); err != nil {
		return s, err
	}
	wrap, err := glenum.ParseWrapMode(o.Wrap)
	if err != nil {
		return s, err
	}
	s.WrapS, s.WrapT, s.WrapR = wrap, wrap, wrap
	if s.CompareMode, err = glenum.ParseCompareMode(o.CompareMode); err != nil {
		return s, err
	}
	if s.CompareFunc, err = glenum.ParseCompareFunc(o.CompareFunc); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// TextureOptions returns the texture settings for the -image upload.
func (o ProbeOptions) TextureOptions() ([]texture.Option, error) {
	s, err := o.SamplerOptions()
	if err != nil {
		return nil, err
	}
	format, err := glenum.ParseStorageFormat(o.Format)
	if err != nil {
		return nil, err
	}
	opts := []texture.Option{
		texture.WithFormat(format),
		texture.WithFilter(s.MinFilter, s.MagFilter),
		texture.WithWrap(s.WrapS, s.WrapT),
	}
	if o.Mipmaps {
		opts = append(opts, texture.WithMipmaps())
	}
	return opts, nil
}
