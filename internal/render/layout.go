package render

import (
	"math"
	"strings"

	"github.com/overlayfx/go-chat-overlay/internal/core/model"
)

// placedSpan is one styled run of text with its x offset inside the line.
type placedSpan struct {
	text string
	bold bool
	x    float64
}

type textLine struct {
	spans []placedSpan
	width float64
}

type styledWord struct {
	text string
	bold bool
}

// layoutMessage word-wraps "[author] text" into lines no wider than the
// surface's text budget and returns the lines plus the bounding text box in
// pixels. Breaks happen on word boundaries first, falling back to per-rune
// breaks for words wider than the budget.
func (s *surface) layoutMessage(author, text string) (lines []textLine, textWidth, textHeight int) {
	maxWidth := float64(s.width - 2*s.margin)

	words := make([]styledWord, 0, 8)
	words = append(words, styledWord{text: "[" + author + "]", bold: true})
	for _, w := range strings.Fields(text) {
		words = append(words, styledWord{text: w})
	}

	spaceWidth := s.advance(" ", false)

	var cur textLine
	flush := func() {
		lines = append(lines, cur)
		cur = textLine{}
	}

	for _, w := range words {
		wordWidth := s.advance(w.text, w.bold)

		pad := 0.0
		if len(cur.spans) > 0 {
			pad = spaceWidth
		}

		switch {
		case cur.width+pad+wordWidth <= maxWidth:
			cur.spans = append(cur.spans, placedSpan{text: w.text, bold: w.bold, x: cur.width + pad})
			cur.width += pad + wordWidth

		case wordWidth <= maxWidth:
			flush()
			cur.spans = append(cur.spans, placedSpan{text: w.text, bold: w.bold})
			cur.width = wordWidth

		default:
			// Word wider than the budget: hard-break on runes
			if len(cur.spans) > 0 {
				flush()
			}
			runes := []rune(w.text)
			for start := 0; start < len(runes); {
				n, chunkWidth := 1, s.advance(string(runes[start]), w.bold)
				for start+n < len(runes) {
					rw := s.advance(string(runes[start+n]), w.bold)
					if chunkWidth+rw > maxWidth {
						break
					}
					chunkWidth += rw
					n++
				}
				cur.spans = append(cur.spans, placedSpan{text: string(runes[start : start+n]), bold: w.bold})
				cur.width = chunkWidth
				start += n
				if start < len(runes) {
					flush()
				}
			}
		}
	}
	if len(cur.spans) > 0 || len(lines) == 0 {
		flush()
	}

	var widest float64
	for _, ln := range lines {
		if ln.width > widest {
			widest = ln.width
		}
	}
	return lines, int(math.Ceil(widest)), len(lines) * s.lineHeight
}

// drawEntry paints one message at vertical offset y: a rounded background
// panel sized to the wrapped text plus margin, then the text itself. The
// panel and text alphas are modulated by the message alpha. Returns the
// vertical space consumed.
func (s *surface) drawEntry(entry model.ChatEntry, alpha float64, cfg Config, y float64) int {
	lines, textWidth, textHeight := s.layoutMessage(entry.Author, entry.Text)

	m := float64(s.margin)

	// Background panel, corner radius fixed at 1.5x margin
	s.dc.SetRGBA(
		cfg.Background[0],
		cfg.Background[1],
		cfg.Background[2],
		cfg.Background[3]*alpha,
	)
	s.dc.DrawRoundedRectangle(m, y, float64(textWidth)+2*m, float64(textHeight)+2*m, 1.5*m)
	s.dc.Fill()

	// Text, inset one margin from the panel edge
	for i, ln := range lines {
		baseline := y + m + float64(i*s.lineHeight) + s.ascent
		for _, sp := range ln.spans {
			if sp.bold {
				s.dc.SetFontFace(s.bold)
				s.dc.SetRGBA(cfg.Author[0], cfg.Author[1], cfg.Author[2], alpha)
			} else {
				s.dc.SetFontFace(s.regular)
				s.dc.SetRGBA(cfg.Text[0], cfg.Text[1], cfg.Text[2], alpha)
			}
			s.dc.DrawString(sp.text, 2*m+sp.x, baseline)
		}
	}

	return textHeight + 3*s.margin
}
