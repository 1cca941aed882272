// Package video holds the pixel formats, the pixel memory views and the
// software painter used to fill shared buffers.
package video

import "unsafe"

type PixelFormat struct {
	// Format is the wl_shm format code.
	Format                      uint32
	BitsPerPixel, BytesPerPixel uint8
	RMask, GMask, BMask, AMask  uint32
	RShift, GShift, BShift, AShift uint8
}

// XRGB8888 is a 32-bit pixel stored as one native-endian word: 8 bits
// unused (but set to 0xFF by the painter), then red, green and blue.
var XRGB8888 = &PixelFormat{
	Format:        1,
	BitsPerPixel:  32,
	BytesPerPixel: 4,
	AMask:         0xFF000000,
	RMask:         0x00FF0000,
	GMask:         0x0000FF00,
	BMask:         0x000000FF,
	AShift:        24,
	RShift:        16,
	GShift:        8,
}

type Color struct {
	R, G, B, A uint8
}

// Map packs c into a pixel word of format pf.
func (pf *PixelFormat) Map(c Color) uint32 {
	return uint32(c.A)<<pf.AShift&pf.AMask |
		uint32(c.R)<<pf.RShift&pf.RMask |
		uint32(c.G)<<pf.GShift&pf.GMask |
		uint32(c.B)<<pf.BShift&pf.BMask
}

// Unmap is the inverse of Map.
func (pf *PixelFormat) Unmap(p uint32) Color {
	return Color{
		R: uint8(p & pf.RMask >> pf.RShift),
		G: uint8(p & pf.GMask >> pf.GShift),
		B: uint8(p & pf.BMask >> pf.BShift),
		A: uint8(p & pf.AMask >> pf.AShift),
	}
}

// Pixels reinterprets b as 32-bit pixel words without copying. Trailing
// bytes that do not make a whole word are not included.
func Pixels(b []byte) []uint32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}
