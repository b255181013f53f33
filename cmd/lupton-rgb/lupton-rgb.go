package main

import(
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abworrall/lupton-rgb/pkg/emath"
	"github.com/abworrall/lupton-rgb/pkg/lupton"
	"github.com/abworrall/lupton-rgb/pkg/rgbimage"
)

var(
	fVerbosity int
	fOutput string
	fQuality int
	fHDROutput string

	fBeta float64
	fAlpha float64
	fQ float64
	fScales string
	fOversaturate float64
	fWorkers int
)

func init() {
	d := lupton.DefaultParams()

	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get (2 also dumps radius grids)")
	flag.StringVar(&fOutput, "o", "out.jpg", "output file (.jpg or .png); numbered if there are several frames")
	flag.IntVar(&fQuality, "quality", rgbimage.DefaultJPEGQuality, "JPEG quality, 1-100")
	flag.StringVar(&fHDROutput, "hdr", "", "if set, also write the mapped frames to this Radiance .hdr file")

	flag.Float64Var(&fBeta, "beta", d.Beta, "multiplies the summed band values to give the radius")
	flag.Float64Var(&fAlpha, "alpha", d.Alpha, "strength of the asinh nonlinearity")
	flag.Float64Var(&fQ, "q", d.Q, "softening parameter of the asinh stretch")
	flag.StringVar(&fScales, "scales", fmt.Sprintf("%g,%g,%g", d.BandScalings[0], d.BandScalings[1], d.BandScalings[2]),
		"per band scalings, as r,g,b")
	flag.Float64Var(&fOversaturate, "oversaturate", d.OversaturateFactor, "values are scaled by 255*this before clipping")
	flag.IntVar(&fWorkers, "workers", 0, "goroutines to map with (0 means GOMAXPROCS)")
}

func parseScales(s string) (emath.Vec3, error) {
	v := emath.Vec3{}
	bits := strings.Split(s, ",")
	if len(bits) != 3 {
		return v, fmt.Errorf("-scales '%s': want three comma separated values", s)
	}
	for i, bit := range bits {
		f, err := strconv.ParseFloat(strings.TrimSpace(bit), 64)
		if err != nil {
			return v, fmt.Errorf("-scales '%s': %v", s, err)
		}
		v[i] = f
	}
	return v, nil
}

// applyFlags copies over only the flags given on the command line, so
// they override a config file passed among the args without defaults
// clobbering it.
func applyFlags(c *rgbimage.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":            c.Verbosity = fVerbosity
		case "o":            c.Output.Filename = fOutput
		case "quality":      c.Output.Quality = fQuality
		case "hdr":          c.Output.HDRFilename = fHDROutput
		case "beta":         c.Params.Beta = fBeta
		case "alpha":        c.Params.Alpha = fAlpha
		case "q":            c.Params.Q = fQ
		case "oversaturate": c.Params.OversaturateFactor = fOversaturate
		case "workers":      c.Params.Workers = fWorkers
		case "scales":
			if v, e := parseScales(fScales); e != nil {
				err = e
			} else {
				c.Params.BandScalings = v
			}
		}
	})
	if err != nil {
		return err
	}
	return c.Params.Validate()
}

func main() {
	flag.Parse()
	log.Printf("lupton-rgb starting\n")

	img := rgbimage.NewRGBImage()
	if err := img.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	if err := applyFlags(&img.Config); err != nil {
		log.Fatal(err)
	}

	if img.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", img.Config.AsYaml())
		log.Printf("%s", img)
	}

	if err := img.Map(); err != nil {
		log.Fatal(err)
	}
	if err := img.Save(); err != nil {
		log.Fatal(err)
	}
}
