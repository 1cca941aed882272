package video

import "github.com/pkg/errors"

type Rect struct {
	X, Y, W, H int
}

// Inset shrinks r by n on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Surface is a view of pixel memory owned by someone else, typically a
// shared memory mapping.
type Surface struct {
	Format *PixelFormat
	W, H   int
	Pitch  int

	mem []byte
}

// NewSurface wraps mem as a w x h image of the given format. mem must hold
// at least Pitch*h bytes.
func NewSurface(mem []byte, w, h int, format *PixelFormat) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("invalid surface size %dx%d", w, h)
	}
	pitch := w * int(format.BytesPerPixel)
	if len(mem) < pitch*h {
		return nil, errors.Errorf("surface %dx%d needs %d bytes, have %d", w, h, pitch*h, len(mem))
	}
	return &Surface{Format: format, W: w, H: h, Pitch: pitch, mem: mem[:pitch*h]}, nil
}

func (s *Surface) Bounds() Rect {
	return Rect{W: s.W, H: s.H}
}

// Size is the number of bytes covered by the surface.
func (s *Surface) Size() int {
	return s.Pitch * s.H
}

func (s *Surface) Bytes() []byte {
	return s.mem
}

// Pixels returns the pixel words, row after row.
func (s *Surface) Pixels() []uint32 {
	return Pixels(s.mem)
}

// Fill sets every byte of the surface to v.
func (s *Surface) Fill(v byte) {
	for i := range s.mem {
		s.mem[i] = v
	}
}
