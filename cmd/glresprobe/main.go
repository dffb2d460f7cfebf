package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/richinsley/goglresource/formats"
	"github.com/richinsley/goglresource/glcontext"
	"github.com/richinsley/goglresource/glfwcontext"
	"github.com/richinsley/goglresource/gpuinterop"
	"github.com/richinsley/goglresource/graphics"
	"github.com/richinsley/goglresource/headless"
	"github.com/richinsley/goglresource/options"
	"github.com/richinsley/goglresource/sampler"
	"github.com/richinsley/goglresource/texture"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Load(os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		options.Usage(os.Stdout)
		return
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := opts.ConfigureLogging(); err != nil {
		log.Fatalf("Invalid log settings: %v", err)
	}

	if opts.Formats {
		printFormats(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("Probe failed: %v", err)
	}
}

// printFormats writes one row per storage format.
func printFormats(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tBASE\tTYPE\tCOMPONENTS\tBYTES\tFLAGS\tWEBGPU")
	for _, info := range formats.Formats() {
		webgpu := "-"
		if f, ok := gpuinterop.TextureFormat(info.Format); ok {
			webgpu = f.String()
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t%d\t%d\t%s\t%s\n",
			info.Format, info.Base, info.Type, info.Components, info.BytesPerPixel, flags(info), webgpu)
	}
	tw.Flush()
}

func flags(info formats.Info) string {
	var f []string
	for _, bit := range []struct {
		set  bool
		name string
	}{
		{info.Integer, "integer"},
		{info.Normalized, "normalized"},
		{info.SRGB, "srgb"},
		{info.Depth, "depth"},
		{info.Stencil, "stencil"},
	} {
		if bit.set {
			f = append(f, bit.name)
		}
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}

// openSurface creates the surface on the main thread and returns the
// function that tears it down there again.
func openSurface(opts options.ProbeOptions) (graphics.Surface, *glfwcontext.Window, func(), error) {
	if opts.Headless {
		s, err := headless.New(opts.Width, opts.Height)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, nil, s.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	win, err := glfwcontext.New(opts.Width, opts.Height, opts.Visible, "glresprobe")
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	return win, win, func() {
		win.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func run(ctx context.Context, opts options.ProbeOptions) error {
	surface, win, shutdown, err := openSurface(opts)
	if err != nil {
		return err
	}
	defer shutdown()

	gc := glcontext.New(surface)
	defer gc.Close()

	samplerOpts, err := opts.SamplerOptions()
	if err != nil {
		return err
	}
	smp := sampler.New(gc, sampler.WithOptions(samplerOpts))

	var tex *texture.Texture
	if opts.ImagePath != "" {
		img, err := texture.Open(ctx, opts.ImagePath, opts.Cache)
		if err != nil {
			return err
		}
		texOpts, err := opts.TextureOptions()
		if err != nil {
			return err
		}
		tex = texture.FromImage(gc, img, opts.FlipY, texOpts...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := gc.Info(gctx)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"version": info.Version, "renderer": info.Renderer, "vendor": info.Vendor}).Info("Context ready")
		return nil
	})
	g.Go(func() error {
		h, err := smp.Handle(gctx)
		if err != nil {
			return err
		}
		d := gpuinterop.SamplerDescriptor(smp.Options(), "glresprobe")
		log.WithFields(log.Fields{
			"handle":     h,
			"min_filter": smp.Options().MinFilter,
			"mag_filter": smp.Options().MagFilter,
			"webgpu_min": d.MinFilter,
			"webgpu_mip": d.MipmapFilter,
		}).Info("Sampler ready")
		return nil
	})
	if tex != nil {
		g.Go(func() error {
			h, err := tex.Handle(gctx)
			if err != nil {
				return err
			}
			o := tex.Options()
			fields := log.Fields{"handle": h, "format": o.Format, "width": o.Width, "height": o.Height}
			if f, ok := gpuinterop.TextureFormat(o.Format); ok {
				fields["webgpu_format"] = f
			}
			log.WithFields(fields).Info("Texture ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if win != nil && opts.Visible {
		log.Info("Close the window or press Escape to exit")
		for !win.ShouldClose() && ctx.Err() == nil {
			win.WaitEvents(0.1)
		}
	}

	// Release handles even after an interrupt.
	var errs []error
	if err := smp.Delete(context.Background()); err != nil {
		errs = append(errs, err)
	}
	if tex != nil {
		if err := tex.Delete(context.Background()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
