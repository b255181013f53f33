package emath

// Three-channel vectors, used for per-pixel color samples and per-band scalings

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it. Index 0 is red, 1 green, 2 blue.
type Vec3 f64.Vec3

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

// Mult multiplies channel by channel.
func (a Vec3)Mult(b Vec3) Vec3 {
	return Vec3{a[0]*b[0], a[1]*b[1], a[2]*b[2]}
}

func (v Vec3)Scale(f float64) Vec3 {
	return Vec3{v[0]*f, v[1]*f, v[2]*f}
}

func (v Vec3)Sum() float64 {
	return v[0] + v[1] + v[2]
}

func (v Vec3)Max() float64 {
	return math.Max(v[0], math.Max(v[1], v[2]))
}

// FloorAt also maps NaN channels to `min`.
func (v *Vec3)FloorAt(min float64) {
	if !(v[0] > min) { v[0] = min }
	if !(v[1] > min) { v[1] = min }
	if !(v[2] > min) { v[2] = min }
}
