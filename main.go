package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/spf13/cobra"
)

var version = "dev"

const (
	defaultWidth  = 400
	defaultAspect = 16.0 / 9.0
)

func main() {
	// Ctrl-C stops the render between passes; the partial result is still saved
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pathtracer",
		Short: "Progressive Monte Carlo path tracer",
		Long: "Renders scenes of spheres with diffuse, metal and glass materials lit by a sky gradient.\n" +
			"Each sample per pixel is an independent full-image pass; passes run in parallel and are averaged.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newScenesCmd(), newCompareCmd())
	return root
}

// renderOptions holds the render command flags
type renderOptions struct {
	scene    string
	sceneDir string
	output   string

	width  int
	height int
	aspect float64

	samples int
	depth   int
	workers int
	seed    int64
	srgb    bool

	checkpoint string
	resume     bool
	interval   time.Duration
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to PNG or OpenEXR",
		Example: "  pathtracer render --scene glass --samples 100 -o glass.png\n" +
			"  pathtracer render --scene scenes/three-spheres.json --width 800 -o out.exr\n" +
			"  pathtracer render --scene spheregrid --checkpoint grid.ptck --resume",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scene, "scene", "default", "Built-in scene name, scene file name in --dir, or path to a .json scene file")
	flags.StringVar(&opts.sceneDir, "dir", "scenes", "Directory searched for scene files by name")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file, .png or .exr (default output/<scene>/render_<timestamp>.png)")
	flags.IntVar(&opts.width, "width", 0, "Image width in pixels (overrides the scene)")
	flags.IntVar(&opts.height, "height", 0, "Image height in pixels (overrides the scene)")
	flags.Float64Var(&opts.aspect, "aspect", 0, "Aspect ratio, width/height (overrides the scene)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flags.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flags.Int64Var(&opts.seed, "seed", renderer.DefaultProgressiveConfig().Seed, "Base random seed; pass i uses seed+i")
	flags.BoolVar(&opts.srgb, "srgb", false, "Gamma-encode PNG output as sRGB instead of writing linear values")
	flags.StringVar(&opts.checkpoint, "checkpoint", "", "Write accumulated passes to this file when the render ends or is interrupted")
	flags.BoolVar(&opts.resume, "resume", false, "Continue from --checkpoint if it exists")
	flags.DurationVar(&opts.interval, "progress", 2*time.Second, "Progress report interval (0 disables)")

	return cmd
}

func newScenesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenes(cmd.OutOrStdout(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "scenes", "Directory to scan for .json scene files")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Print the RMSE between two images of the same size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.OutOrStdout(), args[0], args[1], threshold)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Fail if the RMSE exceeds this value (0 = never fail)")

	return cmd
}

// createScene resolves a scene by path, built-in name, or file name in dir
func createScene(name, dir string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is empty")
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return loaders.LoadScene(name)
	}

	if s, err := scene.Lookup(name); err == nil {
		return s, nil
	}

	// "file:<name>" is the ID reported by the scenes command
	path := filepath.Join(dir, strings.TrimPrefix(name, "file:")+".json")
	if _, err := os.Stat(path); err == nil {
		return loaders.LoadScene(path)
	}

	return nil, fmt.Errorf("unknown scene %q (run 'pathtracer scenes' to list them)", name)
}

// cameraConfig applies the size flags to the scene's camera. A size flag
// replaces the scene's value; the scene's aspect ratio is kept unless
// overridden.
func cameraConfig(s *scene.Scene, opts renderOptions) geometry.CameraConfig {
	config := s.CameraConfig
	if config.ImageWidth == 0 && config.ImageHeight == 0 {
		config.ImageWidth = defaultWidth
		if config.AspectRatio == 0 {
			config.AspectRatio = defaultAspect
		}
	}

	if opts.width == 0 && opts.height == 0 && opts.aspect == 0 {
		return config
	}

	sceneWidth, sceneHeight, err := config.ImageSize()
	width, height, aspect := opts.width, opts.height, opts.aspect
	if err == nil {
		if aspect == 0 {
			aspect = float64(sceneWidth) / float64(sceneHeight)
		}
		if width == 0 && height == 0 {
			width = sceneWidth
		}
	}
	config.ImageWidth, config.ImageHeight, config.AspectRatio = width, height, aspect
	return config
}

func runRender(ctx context.Context, opts renderOptions, out io.Writer) error {
	logger := renderer.NewWriterLogger(out)

	s, err := createScene(opts.scene, opts.sceneDir)
	if err != nil {
		return err
	}

	camera, err := geometry.NewCamera(cameraConfig(s, opts))
	if err != nil {
		return err
	}

	sampling := s.SamplingConfig
	if opts.samples > 0 {
		sampling.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		sampling.MaxDepth = opts.depth
	}

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	pr, err := renderer.NewProgressiveRaytracer(s, camera, sampling, config, logger)
	if err != nil {
		return err
	}

	if opts.resume {
		if opts.checkpoint == "" {
			return errors.New("--resume requires --checkpoint")
		}
		acc, err := renderer.LoadAccumulator(opts.checkpoint)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Printf("No checkpoint at %s, starting fresh\n", opts.checkpoint)
		case err != nil:
			return err
		default:
			if err := pr.Resume(acc); err != nil {
				return err
			}
			logger.Printf("Resuming %d passes from %s\n", acc.Passes(), opts.checkpoint)
		}
	}

	output := opts.output
	if output == "" {
		output = defaultOutputPath(opts.scene, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	if opts.interval > 0 {
		go pr.Progress().Watch(watchCtx, opts.interval, func(done, total int64) {
			logger.Printf("Progress: %5.1f%% (%d/%d pixels)\n", 100*pr.Progress().Fraction(), done, total)
		})
	}
	acc, stats, renderErr := pr.Render(ctx)
	stopWatch()
	if acc == nil {
		return renderErr
	}

	if opts.checkpoint != "" {
		if err := acc.Save(opts.checkpoint); err != nil {
			return err
		}
		logger.Printf("Checkpoint with %d passes saved to %s\n", acc.Passes(), opts.checkpoint)
	}

	if acc.Passes() > 0 {
		transfer := imageio.TransferLinear
		if opts.srgb {
			transfer = imageio.TransferSRGB
		}
		if err := imageio.Save(output, acc.Image(), transfer); err != nil {
			return err
		}
		logger.Printf("Render saved as %s (%s)\n", output, transfer)
	}

	if renderErr != nil {
		return fmt.Errorf("render interrupted after %d of %d passes: %w", acc.Passes(), sampling.SamplesPerPixel, renderErr)
	}

	logger.Printf("%d samples in %v, %.1f samples/s\n",
		stats.TotalSamples, stats.Elapsed.Round(time.Millisecond), float64(stats.TotalSamples)/max(stats.Elapsed.Seconds(), 1e-9))
	return nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	name = strings.TrimPrefix(name, "file:")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func runScenes(out io.Writer, dir string) error {
	fmt.Fprintln(out, "Built-in scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(out, "  %-14s %s\n", info.ID, info.Description)
	}

	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	fmt.Fprintf(out, "\nScene files in %s:\n", dir)
	for _, info := range files {
		fmt.Fprintf(out, "  %-24s %s", info.ID, info.DisplayName)
		if info.Description != "" {
			fmt.Fprintf(out, ": %s", info.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runCompare(out io.Writer, pathA, pathB string, threshold float64) error {
	a, err := imageio.Load(pathA)
	if err != nil {
		return err
	}
	b, err := imageio.Load(pathB)
	if err != nil {
		return err
	}

	rmse, err := imageio.Compare(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "RMSE: %.6f\n", rmse)

	if threshold > 0 && rmse > threshold {
		return fmt.Errorf("rmse %.6f exceeds threshold %.6f", rmse, threshold)
	}
	return nil
}
