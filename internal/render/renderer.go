// Package render owns the chat overlay renderer: a cached pixel surface, the
// fade/layout pipeline that paints active messages onto it, and the locked
// entry points a host calls per frame.
package render

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/overlayfx/go-chat-overlay/internal/compose"
	"github.com/overlayfx/go-chat-overlay/internal/core/fade"
	"github.com/overlayfx/go-chat-overlay/internal/core/model"
	"github.com/overlayfx/go-chat-overlay/internal/data/loader"
	"github.com/overlayfx/go-chat-overlay/internal/util"
)

// ErrAllocate reports that the render surface or its text faces could not be
// created. Distinguishable from host-side failures via errors.Is.
var ErrAllocate = errors.New("render: surface allocation failed")

// Renderer turns a chat timeline into overlay frames. All mutable state (the
// timeline, the configuration and the cached surface) is guarded by a single
// mutex; every setter and every render call holds it for its full duration,
// so rendering is serialized per Renderer while distinct Renderers stay
// independent.
//
// The pixel buffer returned by Data is valid only until the next render call;
// callers copy out what they need before releasing control.
type Renderer struct {
	mu sync.Mutex

	timeline model.Timeline
	cfg      Config
	surf     *surface
}

// New creates a Renderer with the default configuration and an empty timeline.
func New() *Renderer {
	return &Renderer{cfg: DefaultConfig()}
}

// SetTimeline replaces the timeline wholesale. The entries are sorted by time
// to uphold the timeline invariant regardless of source order.
func (r *Renderer) SetTimeline(timeline model.Timeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timeline.Sort()
	r.timeline = timeline
}

// LoadTimeline loads the transcript at path. On failure the previous timeline
// is discarded and the renderer continues with an empty one; the load error is
// returned for reporting.
func (r *Renderer) LoadTimeline(path string) error {
	timeline, err := loader.Load(path)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.timeline = nil
		return err
	}
	r.timeline = timeline
	return nil
}

// SetSize updates the output dimensions, clamped to the supported range.
// A change invalidates the cached surface.
func (r *Renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width = clampInt(width, MinWidth, MaxWidth)
	height = clampInt(height, MinHeight, MaxHeight)
	if width != r.cfg.Width || height != r.cfg.Height {
		r.cfg.Width = width
		r.cfg.Height = height
		r.surf = nil
	}
}

// SetMargin updates the panel margin in pixels. A change invalidates the
// cached surface.
func (r *Renderer) SetMargin(margin int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	margin = clampInt(margin, MinMargin, MaxMargin)
	if margin != r.cfg.Margin {
		r.cfg.Margin = margin
		r.surf = nil
	}
}

// SetFontSize updates the text size in pixels. A change invalidates the
// cached surface since the layout faces are sized to it.
func (r *Renderer) SetFontSize(size float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size = clampFloat(size, MinFontSize, MaxFontSize)
	if size != r.cfg.FontSize {
		r.cfg.FontSize = size
		r.surf = nil
	}
}

// SetBackgroundColor sets the panel RGBA color. Takes effect next render.
func (r *Renderer) SetBackgroundColor(c [4]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Background = c
}

// SetAuthorColor sets the author-name RGB color. Takes effect next render.
func (r *Renderer) SetAuthorColor(c [3]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Author = c
}

// SetTextColor sets the message-text RGB color. Takes effect next render.
func (r *Renderer) SetTextColor(c [3]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Text = c
}

// SetTiming sets the fade-in/hold/fade-out durations, clamped to the
// supported ranges.
func (r *Renderer) SetTiming(t fade.Timing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Timing = t.Clamp()
}

// Config returns a copy of the current configuration.
func (r *Renderer) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Width returns the configured output width in pixels.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Width
}

// Height returns the configured output height in pixels.
func (r *Renderer) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Height
}

// Stride returns the byte distance between surface rows.
func (r *Renderer) Stride() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surf != nil {
		return r.surf.stride()
	}
	return r.cfg.Width * 4
}

// Data returns a read-only view of the raw surface pixels (premultiplied
// RGBA, top-down rows). It is nil before the first render and stays valid
// only until the next render call.
func (r *Renderer) Data() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surf == nil {
		return nil
	}
	return r.surf.data()
}

// Render draws the messages active at the given playback time onto the
// cached surface and returns the used height in pixels: the sum of each
// active entry's layout step scaled by its reveal progress, capped at the
// surface height since rows past the bottom edge are never painted. An empty
// active set returns 0 without touching or allocating the surface.
func (r *Renderer) Render(timeSec float64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.render(timeSec)
}

// render requires r.mu held.
func (r *Renderer) render(timeSec float64) (int, error) {
	active := r.timeline.ActiveRange(timeSec, r.cfg.Timing.Window())
	if len(active) == 0 {
		return 0, nil
	}

	if err := r.ensureSurface(); err != nil {
		return 0, err
	}

	cursor := 0.0
	total := 0.0
	for _, entry := range active {
		alpha, progress := fade.Opacity(entry.Time, timeSec, r.cfg.Timing)
		if alpha <= fade.MinVisibleAlpha {
			continue
		}
		step := r.surf.drawEntry(entry, alpha, r.cfg, cursor)
		cursor += float64(step)
		total += progress * float64(step)
	}

	used := int(math.Round(total))
	if used > r.cfg.Height {
		used = r.cfg.Height
	}
	return used, nil
}

// ensureSurface makes the cached surface match the current dimensions:
// cleared for reuse when still valid, recreated otherwise.
func (r *Renderer) ensureSurface() error {
	if r.surf != nil && r.surf.validFor(r.cfg.Width, r.cfg.Height, r.cfg.Margin, r.cfg.FontSize) {
		r.surf.clear()
		return nil
	}

	util.LogDebugf("Creating %dx%d render surface (margin %d, font %.1fpx)",
		r.cfg.Width, r.cfg.Height, r.cfg.Margin, r.cfg.FontSize)

	surf, err := newSurface(r.cfg.Width, r.cfg.Height, r.cfg.Margin, r.cfg.FontSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocate, err)
	}
	r.surf = surf
	return nil
}

// RenderInto renders the frame at the given playback time directly into a
// host buffer: the requested window is clipped to the image bounds and
// cleared, then the used region of the surface is blitted with the
// compositor's flip and channel-reorder semantics. The whole sequence runs
// under a single lock acquisition so the surface is never exposed unlocked.
//
// An incompatible target fails before any pixel write.
func (r *Renderer) RenderInto(timeSec float64, img compose.Image, window compose.Rect) error {
	if err := img.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	window = window.Intersect(img.Bounds)
	compose.Clear(img, window)

	usedHeight, err := r.render(timeSec)
	if err != nil {
		return err
	}
	if usedHeight > 0 {
		compose.Blit(r.surf.data(), r.surf.stride(), r.cfg.Width, usedHeight, img, window)
	}
	return nil
}
