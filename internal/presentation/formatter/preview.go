// Package formatter renders chat timeline state as terminal text.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/overlayfx/go-chat-overlay/internal/core/fade"
	"github.com/overlayfx/go-chat-overlay/internal/core/model"
)

const (
	minAuthorColumn = 6
	maxAuthorColumn = 20
)

// PreviewFormatter formats the messages active at a query time as an aligned
// table, truncated to a display width.
type PreviewFormatter struct {
	maxWidth int
}

// NewPreviewFormatter creates a formatter for the given display width.
func NewPreviewFormatter(maxWidth int) *PreviewFormatter {
	if maxWidth < 40 {
		maxWidth = 40
	}
	return &PreviewFormatter{maxWidth: maxWidth}
}

// Format returns the preview table for the entries of the timeline active at
// query time under the given fade timings. Invisible entries (alpha at or
// below the visibility threshold) are marked but kept, since they still
// occupy a slot in the active window.
func (f *PreviewFormatter) Format(timeline model.Timeline, query float64, timing fade.Timing) string {
	active := timeline.ActiveRange(query, timing.Window())
	if len(active) == 0 {
		return fmt.Sprintf("No active messages at %.2fs\n", query)
	}

	authorWidth := minAuthorColumn
	for _, entry := range active {
		if w := runewidth.StringWidth(entry.Author); w > authorWidth {
			authorWidth = w
		}
	}
	if authorWidth > maxAuthorColumn {
		authorWidth = maxAuthorColumn
	}

	// TIME(8) + ALPHA(5) + author + 3 separators
	messageWidth := f.maxWidth - 8 - 5 - authorWidth - 3
	if messageWidth < 10 {
		messageWidth = 10
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%8s %5s %s %s\n",
		"TIME", "ALPHA",
		runewidth.FillRight("AUTHOR", authorWidth),
		"MESSAGE")

	for _, entry := range active {
		alpha, _ := fade.Opacity(entry.Time, query, timing)
		alphaCol := fmt.Sprintf("%4.0f%%", alpha*100)
		if alpha <= fade.MinVisibleAlpha {
			alphaCol = "   --"
		}
		fmt.Fprintf(&b, "%8.2f %s %s %s\n",
			entry.Time,
			alphaCol,
			runewidth.FillRight(runewidth.Truncate(entry.Author, authorWidth, "…"), authorWidth),
			runewidth.Truncate(entry.Text, messageWidth, "…"))
	}
	return b.String()
}
