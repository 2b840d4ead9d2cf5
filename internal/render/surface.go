package render

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

// surface is the reusable render target: a premultiplied RGBA canvas plus the
// font faces used to lay text out on it. It is valid only for the dimensions
// it was created with and is recreated whenever those change.
type surface struct {
	dc      *gg.Context
	regular font.Face
	bold    font.Face

	width    int
	height   int
	margin   int
	fontSize float64

	lineHeight int
	ascent     float64
}

func newSurface(width, height, margin int, fontSize float64) (*surface, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}
	regular, err := opentype.NewFace(regularFont, opts)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.NewFace(boldFont, opts)
	if err != nil {
		return nil, err
	}

	metrics := regular.Metrics()

	return &surface{
		dc:         gg.NewContext(width, height),
		regular:    regular,
		bold:       bold,
		width:      width,
		height:     height,
		margin:     margin,
		fontSize:   fontSize,
		lineHeight: metrics.Height.Ceil(),
		ascent:     float64(metrics.Ascent) / 64,
	}, nil
}

// validFor reports whether the surface can be reused for the given output
// parameters. Checked at the top of every render call.
func (s *surface) validFor(width, height, margin int, fontSize float64) bool {
	return s.width == width &&
		s.height == height &&
		s.margin == margin &&
		s.fontSize == fontSize
}

// clear resets every pixel to fully transparent without reallocating.
func (s *surface) clear() {
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
}

func (s *surface) image() *image.RGBA {
	return s.dc.Image().(*image.RGBA)
}

func (s *surface) data() []byte {
	return s.image().Pix
}

func (s *surface) stride() int {
	return s.image().Stride
}

// advance measures the horizontal extent of text in the given style.
func (s *surface) advance(text string, bold bool) float64 {
	face := s.regular
	if bold {
		face = s.bold
	}
	return float64(font.MeasureString(face, text)) / 64
}
