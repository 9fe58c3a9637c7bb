package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pkg/profile"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene     string
	config    string
	width     int
	samples   int
	workers   int
	depth     int
	seed      int64
	out       string
	png       string
	thumbnail int
	profile   string
	help      bool

	set map[string]bool // flags given explicitly on the command line
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&opts.config, "config", "", "YAML scene file (overrides -scene)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed; worker w uses seed+w")
	fs.StringVar(&opts.out, "out", "", "PPM output file (default stdout)")
	fs.StringVar(&opts.png, "png", "", "Also write a PNG to this file")
	fs.IntVar(&opts.thumbnail, "thumbnail", 0, "Also write a PNG thumbnail of this width next to -png")
	fs.StringVar(&opts.profile, "profile", "", "Write a profile to the current directory: cpu or mem")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if opts.help {
		printHelp(stderr, fs)
		return opts, nil
	}
	if opts.thumbnail > 0 && opts.png == "" {
		return nil, errors.New("-thumbnail requires -png")
	}
	if opts.width < 0 || opts.samples < 0 || opts.depth < 0 || opts.thumbnail < 0 {
		return nil, errors.New("-width, -samples, -depth and -thumbnail must not be negative")
	}
	if opts.profile != "" && opts.profile != "cpu" && opts.profile != "mem" {
		return nil, errors.Errorf("unknown profile mode %q (expected cpu or mem)", opts.profile)
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %-8s - %s\n", name, scene.Description(name))
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	errorColor := color.New(color.FgRed, color.Bold)

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		errorColor.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts.help {
		return 0
	}

	switch opts.profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := render(ctx, opts, stdout, stderr); err != nil {
		errorColor.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func render(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	logger := renderer.NewDefaultLogger(stderr)

	selected, config, err := loadScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d spheres)\n", selected.Name, selected.World.Len())

	out, closeFiles, err := openOutputs(opts, stdout)
	if err != nil {
		return err
	}
	defer closeFiles()

	r := renderer.NewRenderer(selected.World, selected.Camera, config, logger)
	stats, err := r.Render(ctx, out)
	if err != nil {
		return errors.Wrap(err, "render")
	}

	color.New(color.FgGreen).Fprintf(stderr, "Rendered %dx%d, %d samples per pixel, mean luminance %.3f (stddev %.3f)\n",
		stats.Width, stats.Height, stats.TotalSamples, stats.MeanLuminance, stats.LuminanceStdDev)
	return nil
}

// loadScene builds the scene and the render configuration. Values given on
// the command line win over the scene file, which wins over scene defaults.
func loadScene(opts *options) (*scene.Scene, renderer.Config, error) {
	config := renderer.DefaultConfig()
	cameraOverride := geometry.CameraConfig{Width: opts.width}

	var selected *scene.Scene
	if opts.config != "" {
		f, err := scene.LoadFile(opts.config)
		if err != nil {
			return nil, config, err
		}
		selected, err = f.Build(scene.NameFromPath(opts.config), cameraOverride)
		if err != nil {
			return nil, config, errors.Wrapf(err, "build %s", opts.config)
		}
		if f.Render.Workers > 0 {
			config.NumWorkers = f.Render.Workers
		}
		config.Seed = f.Render.Seed
	} else {
		var err error
		selected, err = scene.Load(opts.scene, scene.Options{Camera: cameraOverride, Seed: opts.seed})
		if err != nil {
			return nil, config, err
		}
	}

	if selected.SamplingConfig.SamplesPerPixel > 0 {
		config.SamplesPerPixel = selected.SamplingConfig.SamplesPerPixel
	}
	if selected.SamplingConfig.MaxDepth > 0 {
		config.MaxDepth = selected.SamplingConfig.MaxDepth
	}

	if opts.set["samples"] && opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.set["workers"] {
		config.NumWorkers = opts.workers
	}
	if opts.set["depth"] && opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	if opts.set["seed"] {
		config.Seed = opts.seed
	}

	return selected, config, nil
}

// openOutputs assembles the row writers. The returned func closes any files
// that were opened.
func openOutputs(opts *options, stdout io.Writer) (renderer.RowWriter, func(), error) {
	var files []*os.File
	closeFiles := func() {
		for _, f := range files {
			f.Close()
		}
	}
	create := func(path string) (*os.File, error) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.Wrapf(err, "create directory %s", dir)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "create %s", path)
		}
		files = append(files, f)
		return f, nil
	}

	ppmTarget := stdout
	if opts.out != "" {
		f, err := create(opts.out)
		if err != nil {
			closeFiles()
			return nil, nil, err
		}
		ppmTarget = f
	}
	writers := []renderer.RowWriter{output.NewPPMWriter(ppmTarget)}

	if opts.png != "" {
		f, err := create(opts.png)
		if err != nil {
			closeFiles()
			return nil, nil, err
		}
		pngWriter := output.NewPNGWriter(f)

		if opts.thumbnail > 0 {
			thumb, err := create(thumbnailPath(opts.png))
			if err != nil {
				closeFiles()
				return nil, nil, err
			}
			pngWriter.WithThumbnail(thumb, opts.thumbnail)
		}
		writers = append(writers, pngWriter)
	}

	if len(writers) == 1 {
		return writers[0], closeFiles, nil
	}
	return output.NewMultiWriter(writers...), closeFiles, nil
}

// thumbnailPath turns "out/render.png" into "out/render_thumb.png"
func thumbnailPath(pngPath string) string {
	ext := filepath.Ext(pngPath)
	return strings.TrimSuffix(pngPath, ext) + "_thumb" + ext
}
