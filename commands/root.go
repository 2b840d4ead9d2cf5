package commands

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/overlayfx/go-chat-overlay/internal/core/fade"
	"github.com/overlayfx/go-chat-overlay/internal/core/model"
	"github.com/overlayfx/go-chat-overlay/internal/data/loader"
	"github.com/overlayfx/go-chat-overlay/internal/render"
	"github.com/overlayfx/go-chat-overlay/internal/util"
)

var (
	// Logging related
	debug bool

	// Input data
	dataFile string

	// Playback position
	timeSpec   string
	frameIndex int
	frameRate  float64
	frameCount int

	// Output
	outPath string
	watch   bool

	// Render configuration
	sizeSpec    string
	margin      int
	fontSize    float64
	bgColor     string
	authorColor string
	textColor   string
	fadeInTime  float64
	holdTime    float64
	fadeOutTime float64

	rootCmd = &cobra.Command{
		Use:   "go-chat-overlay [flags]",
		Short: "Chat transcript overlay renderer",
		Long: `go-chat-overlay renders a timestamped chat transcript as an overlay image
for a given playback time. Messages fade in, hold, and fade out; each one is
drawn as a rounded panel with word-wrapped text.

Examples:
  go-chat-overlay --data chat.xml --time 90 --out overlay.png
  go-chat-overlay --data chat.xml --frame 2250 --fps 25 --out overlay.png
  go-chat-overlay --data chat.xml --time 1:30 --frames 50 --fps 25 --out 'frame_%04d.png'
  go-chat-overlay --data chat.jsonl --time 90 --out overlay.png --watch
  go-chat-overlay preview --data chat.xml --time 90`,
		RunE: runRender,
	}
)

const defaultLogFile = "~/.go-chat-overlay/logs/app.log"

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "",
		"Path to the chat transcript (popcorn XML or JSON lines)")

	// Playback position
	rootCmd.PersistentFlags().StringVarP(&timeSpec, "time", "t", "",
		"Playback time (seconds, m:ss or h:mm:ss)")
	rootCmd.PersistentFlags().IntVar(&frameIndex, "frame", -1,
		"Playback position as a frame index (used with --fps)")
	rootCmd.PersistentFlags().Float64Var(&frameRate, "fps", 25,
		"Frame rate for --frame and --frames")

	// Timings
	rootCmd.PersistentFlags().Float64Var(&fadeInTime, "fade-in", 1,
		"Fade-in duration in seconds")
	rootCmd.PersistentFlags().Float64Var(&holdTime, "hold", 15,
		"Hold duration in seconds")
	rootCmd.PersistentFlags().Float64Var(&fadeOutTime, "fade-out", 1,
		"Fade-out duration in seconds")

	// Output configuration
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "overlay.png",
		"Output PNG path (printf pattern when rendering multiple frames)")
	rootCmd.Flags().IntVar(&frameCount, "frames", 1,
		"Number of consecutive frames to render")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Re-render whenever the transcript file changes")

	// Render configuration
	rootCmd.Flags().StringVar(&sizeSpec, "size", "640x360",
		"Overlay size as WIDTHxHEIGHT")
	rootCmd.Flags().IntVar(&margin, "margin", 10,
		"Panel margin in pixels")
	rootCmd.Flags().Float64Var(&fontSize, "font-size", 16,
		"Text size in pixels")
	rootCmd.Flags().StringVar(&bgColor, "bg", "#80808080",
		"Panel background color (#rrggbb or #rrggbbaa)")
	rootCmd.Flags().StringVar(&authorColor, "author-color", "#a00000",
		"Author name color (#rrggbb)")
	rootCmd.Flags().StringVar(&textColor, "text-color", "#000000",
		"Message text color (#rrggbb)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runRender(cmd *cobra.Command, args []string) error {
	initLogging()

	if dataFile == "" {
		return fmt.Errorf("--data is required")
	}

	renderer, err := buildRenderer()
	if err != nil {
		return err
	}

	if err := renderer.LoadTimeline(expandPath(dataFile)); err != nil {
		// Failed load means an empty timeline, not a dead program
		util.LogWarnf("Transcript load failed, rendering empty overlay: %v", err)
	}

	startTime, err := resolveStartTime()
	if err != nil {
		return err
	}

	if err := renderFrames(renderer, startTime); err != nil {
		return err
	}

	if watch {
		return watchAndRender(renderer, startTime)
	}
	return nil
}

// renderFrames renders frameCount consecutive frames starting at startTime.
func renderFrames(renderer *render.Renderer, startTime float64) error {
	for i := 0; i < frameCount; i++ {
		t := startTime + float64(i)/frameRate
		usedHeight, err := renderer.Render(t)
		if err != nil {
			return err
		}
		path := framePath(outPath, i, frameCount)
		if err := writePNG(renderer, usedHeight, path); err != nil {
			return err
		}
		util.LogInfof("Rendered t=%.3fs (used height %dpx) to %s", t, usedHeight, path)
	}
	return nil
}

func watchAndRender(renderer *render.Renderer, startTime float64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := loader.Watch(ctx, expandPath(dataFile), func(timeline model.Timeline) {
		renderer.SetTimeline(timeline)
		if err := renderFrames(renderer, startTime); err != nil {
			util.LogErrorf("Re-render failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	util.LogInfof("Watching %s, press Ctrl-C to stop", dataFile)
	<-ctx.Done()
	return nil
}

func buildRenderer() (*render.Renderer, error) {
	width, height, err := parseSize(sizeSpec)
	if err != nil {
		return nil, err
	}
	bg, err := util.ParseHexColor(bgColor)
	if err != nil {
		return nil, err
	}
	author, err := util.ParseHexColor(authorColor)
	if err != nil {
		return nil, err
	}
	text, err := util.ParseHexColor(textColor)
	if err != nil {
		return nil, err
	}

	renderer := render.New()
	renderer.SetSize(width, height)
	renderer.SetMargin(margin)
	renderer.SetFontSize(fontSize)
	renderer.SetBackgroundColor(bg)
	renderer.SetAuthorColor([3]float64{author[0], author[1], author[2]})
	renderer.SetTextColor([3]float64{text[0], text[1], text[2]})
	renderer.SetTiming(fade.Timing{FadeIn: fadeInTime, Hold: holdTime, FadeOut: fadeOutTime})
	return renderer, nil
}

// resolveStartTime picks the playback position from --time or --frame/--fps.
func resolveStartTime() (float64, error) {
	if timeSpec != "" {
		return util.ParsePlaybackTime(timeSpec)
	}
	if frameIndex >= 0 {
		return util.FrameTime(frameIndex, frameRate)
	}
	return 0, nil
}

// writePNG snapshots the renderer surface into a PNG file. The surface view
// is only valid until the next render call, so this runs before any further
// rendering.
func writePNG(renderer *render.Renderer, usedHeight int, path string) error {
	width, height := renderer.Width(), renderer.Height()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if usedHeight > 0 {
		copy(img.Pix, renderer.Data())
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// framePath expands the output path for frame i: printf patterns are
// honored, otherwise an index suffix is inserted for multi-frame runs.
func framePath(pattern string, i, total int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	if total <= 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

func parseSize(spec string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(spec)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", spec)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	return width, height, nil
}

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	util.InitLogger(logLevel, expandPath(defaultLogFile), debug)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
