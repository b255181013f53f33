package rgbimage

import(
	"fmt"

	"github.com/codahale/hdrhistogram"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/lupton-rgb/pkg/lupton"
)

const(
	radiusUnits     = 1e6  // radii are recorded as integer millionths
	maxRadiusUnits  = 1e10
)

// Stats summarizes a mapping run: how the radii were spread, how the
// output values landed, and whether the colors survived.
type Stats struct {
	Radius          *hdrhistogram.Histogram   // radius of every lit pixel, in millionths
	Channels        [3]histogram.Histogram    // output values, per channel

	NumPixels       int
	NumLit          int                       // pixels with radius > 0
	NumClipped      int                       // output samples that hit 255

	// Mean HSV saturation over lit pixels, of the scaled input and of the
	// output. Clipping is the only thing that should move these apart.
	SaturationIn    float64
	SaturationOut   float64
}

// ComputeStats compares a batch with its mapped output.
func ComputeStats(in, out *lupton.Batch, p lupton.Params) Stats {
	s := Stats{
		Radius: hdrhistogram.New(1, maxRadiusUnits, 3),
		Channels: [3]histogram.Histogram{
			histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256},
			histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256},
			histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256},
		},
		NumPixels: in.NumPixels(),
	}

	for n:=0; n<in.N; n++ {
		for y:=0; y<in.H; y++ {
			for x:=0; x<in.W; x++ {
				o := out.At(n, y, x)
				for c:=0; c<3; c++ {
					s.Channels[c].Add(histogram.ScalarVal(int(o[c])))
					if o[c] >= 255.0 { s.NumClipped++ }
				}

				scaled := p.ScaleSample(in.At(n, y, x))
				radius := p.Radius(scaled)
				if !(radius > 0.0) {
					continue
				}

				s.NumLit++
				units := int64(radius * radiusUnits)
				if units < 1 { units = 1 }
				if units > maxRadiusUnits { units = maxRadiusUnits }
				s.Radius.RecordValue(units)

				_, satIn, _ := colorful.Color{R: scaled[0], G: scaled[1], B: scaled[2]}.Hsv()
				_, satOut, _ := colorful.Color{R: o[0] / 255.0, G: o[1] / 255.0, B: o[2] / 255.0}.Hsv()
				s.SaturationIn += satIn
				s.SaturationOut += satOut
			}
		}
	}

	if s.NumLit > 0 {
		s.SaturationIn /= float64(s.NumLit)
		s.SaturationOut /= float64(s.NumLit)
	}

	return s
}

// RadiusAtQuantile takes a percentile in [0,100].
func (s Stats)RadiusAtQuantile(q float64) float64 {
	if s.NumLit == 0 { return 0.0 }
	return float64(s.Radius.ValueAtQuantile(q)) / radiusUnits
}

func (s Stats)String() string {
	str := fmt.Sprintf("Stats: %d pixels, %d lit, %d samples clipped\n", s.NumPixels, s.NumLit, s.NumClipped)
	str += fmt.Sprintf("  radius p50=%.4f p99=%.4f max=%.4f\n",
		s.RadiusAtQuantile(50), s.RadiusAtQuantile(99), s.RadiusAtQuantile(100))
	str += fmt.Sprintf("  mean saturation in=%.4f out=%.4f\n", s.SaturationIn, s.SaturationOut)
	for c, name := range []string{"R", "G", "B"} {
		str += fmt.Sprintf("  %s: %v\n", name, s.Channels[c])
	}
	return str
}
