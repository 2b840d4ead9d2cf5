package render

import "github.com/overlayfx/go-chat-overlay/internal/core/fade"

// Configuration bounds. Out-of-range values are clamped at the setter
// boundary so the render path can assume valid state.
const (
	MinWidth  = 100
	MaxWidth  = 3840
	MinHeight = 100
	MaxHeight = 2160

	MinMargin = 0
	MaxMargin = 200

	MinFontSize = 8
	MaxFontSize = 64
)

// Config holds the mutable render parameters of one Renderer.
type Config struct {
	Width    int
	Height   int
	Margin   int
	FontSize float64

	// Background is RGBA; Author and Text carry RGB only, their alpha is
	// driven by the fade model at paint time.
	Background [4]float64
	Author     [3]float64
	Text       [3]float64

	Timing fade.Timing
}

// DefaultConfig returns the renderer defaults: a 640x360 overlay with a grey
// translucent panel, dark red author names and black text.
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     360,
		Margin:     10,
		FontSize:   16,
		Background: [4]float64{0.5, 0.5, 0.5, 0.5},
		Author:     [3]float64{0.628, 0, 0},
		Text:       [3]float64{0, 0, 0},
		Timing:     fade.Timing{FadeIn: 1, Hold: 15, FadeOut: 1},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
