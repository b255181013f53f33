package lupton

// Lupton et al. (2004), PASP, 116, 133: map three band images into RGB by
// stretching the summed intensity with asinh, while every channel of a
// pixel shares the same multiplicative factor. That keeps the colour
// ratios of each pixel, and so its chromaticity.

import(
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/lupton-rgb/pkg/emath"
)

// NonlinearityFactor is asinh(alpha*Q*radius) / (Q*radius), or zero when
// radius <= 0 or is not finite. Multiplying a pixel by it takes the radius to
// asinh(alpha*Q*radius)/Q, which grows ~linearly for faint pixels and
// logarithmically for bright ones.
func NonlinearityFactor(radius, alpha, q float64) float64 {
	if !(radius > 0.0) || math.IsInf(radius, 1) {
		return 0.0
	}
	return math.Asinh(alpha*q*radius) / (q*radius)
}

// Map returns a new batch holding the Lupton RGB mapping of `b`; `b` is
// left alone. Every output value is in [0,255], and the output has the
// same shape as the input. An all-zero batch maps to an all-zero batch.
//
// Per pixel: samples are divided by 255, scaled by p.BandScalings, and
// floored at zero; radius = p.Beta * (r+g+b); all three channels are
// multiplied by NonlinearityFactor(radius). Then the whole batch is
// divided by its single largest value (over all images and channels),
// multiplied by 255*p.OversaturateFactor, and clipped to [0,255].
//
// Samples that are NaN or infinite are treated as zero. A pixel whose
// samples are finite but so large that its radius overflows gets a factor
// of zero, and so comes out black.
func Map(b *Batch, p Params) (*Batch, error) {
	if err := checkInputs(b, p); err != nil {
		return nil, err
	}

	out := b.Clone()
	mapValidated(out, p)
	return out, nil
}

// MapInPlace is Map, but overwrites the samples of `b` to save an allocation.
func MapInPlace(b *Batch, p Params) error {
	if err := checkInputs(b, p); err != nil {
		return err
	}

	mapValidated(b, p)
	return nil
}

func checkInputs(b *Batch, p Params) error {
	if b == nil {
		return &ShapeError{Reason: "nil batch"}
	}
	if err := b.Validate(); err != nil {
		return err
	}
	return p.Validate()
}

func mapValidated(b *Batch, p Params) {
	spans := partition(b.NumPixels(), p.numWorkers())
	if len(spans) == 0 {
		return
	}

	// Pass 1: the per-pixel stretch; each span also finds its own max.
	partialMax := make([]float64, len(spans))
	parallelFor(spans, func(i int, s span) {
		partialMax[i] = stretchPixels(b.Pix[s.start*NumChannels : s.end*NumChannels], p)
	})

	// The only batch-wide step: one max over everything.
	globalMax := floats.Max(partialMax)

	// Pass 2: normalize, boost, clip.
	scale := 255.0 * p.OversaturateFactor
	parallelFor(spans, func(_ int, s span) {
		normalizePixels(b.Pix[s.start*NumChannels : s.end*NumChannels], globalMax, scale)
	})
}

// stretchPixels applies the asinh stretch to interleaved RGB samples in
// place, returning the largest stretched value (zero if there are none).
func stretchPixels(pix []float64, p Params) float64 {
	max := 0.0

	for i:=0; i+2<len(pix); i+=NumChannels {
		v := p.ScaleSample(emath.Vec3{pix[i], pix[i+1], pix[i+2]})
		v = v.Scale(NonlinearityFactor(p.Radius(v), p.Alpha, p.Q))

		pix[i], pix[i+1], pix[i+2] = v[0], v[1], v[2]
		if m := v.Max(); m > max { max = m }
	}

	return max
}

// normalizePixels divides by the global max and scales into [0,255]. A
// zero max means every stretched value was zero, so the output is too.
func normalizePixels(pix []float64, globalMax, scale float64) {
	if !(globalMax > 0.0) {
		for i := range pix { pix[i] = 0.0 }
		return
	}

	for i := range pix {
		pix[i] = emath.Clamp(pix[i] / globalMax * scale, 0.0, 255.0)
	}
}
