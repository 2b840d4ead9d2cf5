// Package fade computes per-message opacity for the fade-in/hold/fade-out
// animation model.
package fade

// MinVisibleAlpha is the threshold below which a message is treated as
// invisible and contributes no layout height.
const MinVisibleAlpha = 1.0 / 255

// Supported phase-duration ranges in seconds. Values outside them are clamped
// at the configuration boundary, never rejected at render time.
const (
	MinFadeTime = 0.1
	MaxFadeTime = 10.0
	MinHoldTime = 1.0
	MaxHoldTime = 120.0
)

// Timing holds the three animation phase durations in seconds.
type Timing struct {
	FadeIn  float64
	Hold    float64
	FadeOut float64
}

// Window is the total time span during which a message is eligible to be
// drawn after its start time.
func (t Timing) Window() float64 {
	return t.FadeIn + t.Hold + t.FadeOut
}

// Clamp returns a copy of t with every phase bounded to its supported range.
func (t Timing) Clamp() Timing {
	return Timing{
		FadeIn:  clampRange(t.FadeIn, MinFadeTime, MaxFadeTime),
		Hold:    clampRange(t.Hold, MinHoldTime, MaxHoldTime),
		FadeOut: clampRange(t.FadeOut, MinFadeTime, MaxFadeTime),
	}
}

// Opacity returns the alpha and reveal progress of a message that started at
// entryTime, evaluated at query time. Both values are clamped to [0,1].
//
// Progress is the fraction of the message's final stacking height that counts
// toward the next message's vertical offset; it tracks alpha during fade-in
// (producing the scroll-up reveal) and stays at 1 afterwards.
func Opacity(entryTime, query float64, t Timing) (alpha, progress float64) {
	holdStart := entryTime + t.FadeIn
	fadeOutStart := holdStart + t.Hold

	alpha, progress = 1, 1
	switch {
	case query < holdStart:
		alpha = (query - entryTime) / t.FadeIn
		progress = alpha
	case query > fadeOutStart:
		alpha = 1 - (query-fadeOutStart)/t.FadeOut
	}
	return clamp01(alpha), clamp01(progress)
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
