package audio

import "math"

// volumeBase is the exponent base used by the beep volume effect. Base 2
// means one unit of gain doubles or halves the perceived volume.
const volumeBase = 2

// Clamp forces a linear volume into [0, 1]: negative values become 0,
// values above 1 become 1, everything else passes through unchanged.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// gain converts a linear volume in (0, 1] to the logarithmic scale used by
// effects.Volume. Zero volume is handled by muting the streamer instead, so
// gain never sees it.
func gain(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}
