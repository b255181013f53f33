package emath

import "math"

// Some functions that only operate on basic types, that are useful

// Clamp pins `f` into [min,max]. NaN comes back as `min`.
func Clamp(f, min, max float64) float64 {
	if !(f > min) { return min }
	if f > max    { return max }
	return f
}

// IsPositive is true for finite values strictly greater than zero.
func IsPositive(f float64) bool {
	return f > 0.0 && !math.IsInf(f, 1)
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}
