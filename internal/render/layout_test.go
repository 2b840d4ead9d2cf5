package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface(t *testing.T, width, height, margin int) *surface {
	t.Helper()
	s, err := newSurface(width, height, margin, 16)
	require.NoError(t, err)
	return s
}

func joinedText(lines []textLine) string {
	var parts []string
	for _, ln := range lines {
		for _, sp := range ln.spans {
			parts = append(parts, sp.text)
		}
	}
	return strings.Join(parts, "")
}

func TestLayoutSingleLine(t *testing.T) {
	s := newTestSurface(t, 640, 360, 10)

	lines, width, height := s.layoutMessage("alice", "hi")
	require.Len(t, lines, 1)
	assert.Equal(t, s.lineHeight, height)
	assert.Positive(t, width)
	assert.LessOrEqual(t, width, 640-2*10)

	// Author tag comes first, in bold
	require.NotEmpty(t, lines[0].spans)
	assert.Equal(t, "[alice]", lines[0].spans[0].text)
	assert.True(t, lines[0].spans[0].bold)
	assert.False(t, lines[0].spans[1].bold)
}

func TestLayoutWrapsOnWordBoundaries(t *testing.T) {
	s := newTestSurface(t, 200, 360, 10)
	maxWidth := float64(200 - 2*10)

	lines, width, height := s.layoutMessage("bob", strings.Repeat("word ", 20))
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, len(lines)*s.lineHeight, height)
	assert.LessOrEqual(t, float64(width), maxWidth)

	for i, ln := range lines {
		assert.LessOrEqual(t, ln.width, maxWidth, "line %d", i)
		for _, sp := range ln.spans {
			// Words are kept whole when they fit the budget
			assert.NotContains(t, sp.text, " ")
		}
	}
}

func TestLayoutBreaksOverlongWordsPerRune(t *testing.T) {
	s := newTestSurface(t, 150, 360, 10)
	maxWidth := float64(150 - 2*10)
	longWord := strings.Repeat("x", 120)

	lines, _, _ := s.layoutMessage("c", longWord)
	assert.Greater(t, len(lines), 1)

	for i, ln := range lines {
		assert.LessOrEqual(t, ln.width, maxWidth, "line %d", i)
	}
	// Every rune of the word survives the hard breaks
	assert.Equal(t, "[c]"+longWord, joinedText(lines))
}

func TestLayoutEmptyMessage(t *testing.T) {
	s := newTestSurface(t, 640, 360, 10)

	lines, width, height := s.layoutMessage("dora", "")
	require.Len(t, lines, 1)
	assert.Equal(t, "[dora]", lines[0].spans[0].text)
	assert.Positive(t, width)
	assert.Equal(t, s.lineHeight, height)
}

func TestSurfaceValidFor(t *testing.T) {
	s := newTestSurface(t, 640, 360, 10)

	assert.True(t, s.validFor(640, 360, 10, 16))
	assert.False(t, s.validFor(641, 360, 10, 16))
	assert.False(t, s.validFor(640, 359, 10, 16))
	assert.False(t, s.validFor(640, 360, 11, 16))
	assert.False(t, s.validFor(640, 360, 10, 17))
}

func TestSurfaceClear(t *testing.T) {
	s := newTestSurface(t, 64, 64, 4)

	s.dc.SetRGBA(1, 0, 0, 1)
	s.dc.DrawRectangle(0, 0, 64, 64)
	s.dc.Fill()

	s.clear()
	for _, b := range s.data() {
		require.Equal(t, byte(0), b)
	}
}
