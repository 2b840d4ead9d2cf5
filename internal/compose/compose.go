// Package compose copies rendered overlay surfaces into host-owned pixel
// buffers, handling vertical flip, channel reorder and rectangle clipping.
//
// The surface side stores rows top-down in RGBA order but is addressed
// bottom-to-top relative to its used height; the destination is top-down with
// the red and blue channels swapped (BGRA hosts). Green and alpha pass
// through verbatim, and all data stays alpha-premultiplied.
package compose

import "errors"

// ErrIncompatibleTarget reports a destination buffer whose pixel format is
// not the single supported 8-bit, 4-channel layout. It is returned before any
// pixel is written.
var ErrIncompatibleTarget = errors.New("compose: unsupported target pixel format")

// Format identifies a destination pixel layout.
type Format string

// FormatRGBA8 is the only supported destination format: 8 bits per channel,
// 4 bytes per pixel, alpha-premultiplied.
const FormatRGBA8 Format = "rgba8"

const bytesPerPixel = 4

// Rect is a half-open pixel rectangle [X1,X2) x [Y1,Y2).
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	if o.X1 > r.X1 {
		r.X1 = o.X1
	}
	if o.Y1 > r.Y1 {
		r.Y1 = o.Y1
	}
	if o.X2 < r.X2 {
		r.X2 = o.X2
	}
	if o.Y2 < r.Y2 {
		r.Y2 = o.Y2
	}
	return r
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent of r.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Image is a host-owned destination buffer. Pix is addressed top-down with
// pixel (0,0) at Pix[0]; Stride is the byte distance between row starts and
// may exceed the row width.
type Image struct {
	Pix    []byte
	Stride int
	Bounds Rect
	Format Format
}

// Validate checks that the destination can be written at all. It must be
// called (and pass) before any pixel write.
func (img Image) Validate() error {
	if img.Format != FormatRGBA8 {
		return ErrIncompatibleTarget
	}
	if img.Stride < img.Bounds.Width()*bytesPerPixel {
		return ErrIncompatibleTarget
	}
	return nil
}

// Clear zero-fills (fully transparent) the rows of img covered by r, clipped
// to the image bounds.
func Clear(img Image, r Rect) {
	r = r.Intersect(img.Bounds)
	if r.Empty() {
		return
	}
	for y := r.Y1; y < r.Y2; y++ {
		ofs := y*img.Stride + r.X1*bytesPerPixel
		row := img.Pix[ofs : ofs+r.Width()*bytesPerPixel]
		for i := range row {
			row[i] = 0
		}
	}
}

// Blit copies the used region of a rendered surface into img, limited to the
// request rectangle. The source is read bottom-to-top relative to usedHeight,
// so destination row r.Y1 receives source row usedHeight-r.Y1-1. Channels 0
// and 2 are swapped per pixel; channels 1 and 3 are copied as-is. A request
// that clips to nothing is a no-op.
//
// usedHeight is capped to the rows src actually holds, so a caller-side
// overestimate can never read past the buffer.
func Blit(src []byte, srcStride, srcWidth, usedHeight int, img Image, request Rect) {
	if srcStride <= 0 {
		return
	}
	if maxRows := len(src) / srcStride; usedHeight > maxRows {
		usedHeight = maxRows
	}

	r := request.
		Intersect(img.Bounds).
		Intersect(Rect{X1: 0, Y1: 0, X2: srcWidth, Y2: usedHeight})
	if r.Empty() {
		return
	}

	srcOfs := (usedHeight-r.Y1-1)*srcStride + r.X1*bytesPerPixel
	dstOfs := r.Y1*img.Stride + r.X1*bytesPerPixel

	for y := r.Y1; y < r.Y2; y++ {
		so, do := srcOfs, dstOfs
		for x := r.X1; x < r.X2; x++ {
			img.Pix[do+0] = src[so+2]
			img.Pix[do+1] = src[so+1]
			img.Pix[do+2] = src[so+0]
			img.Pix[do+3] = src[so+3]
			so += bytesPerPixel
			do += bytesPerPixel
		}
		srcOfs -= srcStride
		dstOfs += img.Stride
	}
}
