package behavior

import "math"

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MapRange linearly maps v from [inLo, inHi] to [outLo, outHi].
// The output is not clamped. An inverted output range yields an inverse map.
func MapRange(v, inLo, inHi, outLo, outHi float64) (float64, error) {
	if inHi == inLo {
		return outLo, ErrDegenerateRange
	}
	return mapRange(v, inLo, inHi, outLo, outHi), nil
}

// mapRange is MapRange for source ranges already checked by Config.Validate.
func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

// roundDelay rounds a frame delay to the nearest whole frame, never below 1.
func roundDelay(v float64) int {
	d := int(math.Round(v))
	if d < 1 {
		return 1
	}
	return d
}
