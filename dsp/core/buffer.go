package core

// LoadBlock fills dst from src starting at off and zero-pads whatever src
// cannot supply. It returns the number of samples taken from src. Host
// blocks shorter than the processing slice read as silence this way.
func LoadBlock(dst, src []float64, off int) int {
	n := 0
	if off >= 0 && off < len(src) {
		n = copy(dst, src[off:])
	}
	clear(dst[n:])
	return n
}
