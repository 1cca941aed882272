package video

// PaintRings draws the animated concentric ring pattern for frame time t
// into the width x height image pixels, leaving a border of padding pixels
// untouched. The result depends only on the arguments.
//
// Pixels are classified by their squared distance from the center of the
// padded area: an inner disc, a 32 pixel wide ring and the outside each
// scroll a gray-ish gradient at a different speed. The alpha byte is 0xFF
// except on the two diagonals, which are left transparent.
func PaintRings(pixels []uint32, padding, width, height int, t uint32) {
	halfh := padding + (height-padding*2)/2
	halfw := padding + (width-padding*2)/2

	or := halfw
	if halfh < or {
		or = halfh
	}
	or -= 8
	ir := or - 32
	outer := uint32(or * or)
	inner := uint32(ir * ir)

	for y := padding; y < height-padding; y++ {
		row := pixels[y*width : (y+1)*width]
		y2 := (y - halfh) * (y - halfh)

		for x := padding; x < width-padding; x++ {
			r2 := uint32((x-halfw)*(x-halfw) + y2)

			var v uint32
			switch {
			case r2 < inner:
				v = (r2/32 + t/64) * 0x0080401
			case r2 < outer:
				v = (uint32(y) + t/32) * 0x0080401
			default:
				v = (uint32(x) + t/16) * 0x0080401
			}
			v &= 0x00ffffff

			if abs(x-y) > 6 && abs(x+y-height) > 6 {
				v |= 0xff000000
			}
			row[x] = v
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
