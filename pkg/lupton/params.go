package lupton

import(
	"fmt"
	"math"
	"runtime"

	"github.com/abworrall/lupton-rgb/pkg/emath"
)

var(
	// DefaultBandScalings calibrates the relative sensitivities of the
	// red, green and blue bands.
	DefaultBandScalings = emath.Vec3{1.000, 1.176, 1.818}
)

// Params holds everything that controls the mapping. The zero value is
// not usable; start from DefaultParams.
type Params struct {
	// Beta scales the radius: radius = Beta * (r + g + b). This is a
	// multiplication; there is no divide-by-beta variant.
	Beta               float64
	Alpha              float64     // strength of the asinh nonlinearity
	Q                  float64     // softening parameter
	BandScalings       emath.Vec3  // per-channel multipliers, applied before the stretch
	OversaturateFactor float64     // brightness boost after the global max normalization

	// How many goroutines to spread the pixels over; 0 means GOMAXPROCS.
	// It never changes the output.
	Workers            int
}

func DefaultParams() Params {
	return Params{
		Beta:               3.0,
		Alpha:              0.06,
		Q:                  3.5,
		BandScalings:       DefaultBandScalings,
		OversaturateFactor: 2.0,
	}
}

func (p Params)String() string {
	return fmt.Sprintf("beta=%g, alpha=%g, Q=%g, scalings=[%g,%g,%g], oversaturate=%g",
		p.Beta, p.Alpha, p.Q, p.BandScalings[0], p.BandScalings[1], p.BandScalings[2], p.OversaturateFactor)
}

// Validate returns an *InvalidParameterError for the first unusable parameter.
func (p Params)Validate() error {
	checks := []struct{
		name string
		val  float64
	}{
		{"beta", p.Beta},
		{"alpha", p.Alpha},
		{"Q", p.Q},
		{"bandscalings[0]", p.BandScalings[0]},
		{"bandscalings[1]", p.BandScalings[1]},
		{"bandscalings[2]", p.BandScalings[2]},
		{"oversaturatefactor", p.OversaturateFactor},
	}

	for _, c := range checks {
		if !emath.IsPositive(c.val) {
			return &InvalidParameterError{Name: c.name, Value: c.val}
		}
	}

	if p.Workers < 0 {
		return &InvalidParameterError{Name: "workers", Value: float64(p.Workers)}
	}

	return nil
}

func (p Params)numWorkers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ScaleSample takes a raw sample in [0,255] to the scaled, non-negative
// band values the radius is computed from. Samples that are not finite
// come back as zero.
func (p Params)ScaleSample(sample emath.Vec3) emath.Vec3 {
	v := emath.Vec3{sample[0] / 255.0, sample[1] / 255.0, sample[2] / 255.0}.Mult(p.BandScalings)
	v.FloorAt(0.0) // no negative flux; NaN goes too
	for c := range v {
		if math.IsInf(v[c], 1) { v[c] = 0.0 }
	}
	return v
}

// Radius of an already scaled sample.
func (p Params)Radius(scaled emath.Vec3) float64 {
	return p.Beta * scaled.Sum()
}
