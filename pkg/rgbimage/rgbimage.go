package rgbimage

import(
	"fmt"
	"image"
	"log"

	"github.com/abworrall/lupton-rgb/pkg/emath"
	"github.com/abworrall/lupton-rgb/pkg/lupton"
)

// RGBImage holds the input frames, stacks them into one batch, and maps
// that batch into displayable RGB with the Lupton et al. (2004) asinh
// stretch. All frames share one brightness normalization.
type RGBImage struct {
	Layers   []Layer         // In load order; each becomes one image of the batch
	Config

	Stacked  *lupton.Batch   // The raw samples of every layer, in [0,255]
	Mapped   *lupton.Batch   // The output of the mapper, in [0,255]
}

func NewRGBImage() RGBImage {
	return RGBImage{
		Layers: []Layer{},
		Config: NewConfig(),
	}
}

func (ri RGBImage)String() string {
	str := fmt.Sprintf("RGBImage (%d layers) [\n", len(ri.Layers))
	for _, l := range ri.Layers {
		str += fmt.Sprintf("  %s\n", l)
	}
	return str + "]\n"
}

func (ri *RGBImage)AddLayer(l Layer) {
	ri.Layers = append(ri.Layers, l)
}

// Stack turns the layers into a single batch; they must all be the same size.
func (ri *RGBImage)Stack() error {
	if len(ri.Layers) == 0 {
		return fmt.Errorf("RGBImage.Stack: no layers loaded")
	}

	imgs := make([]image.Image, len(ri.Layers))
	for i, l := range ri.Layers {
		imgs[i] = l.Image
	}

	b, err := lupton.NewBatchFromImages(imgs...)
	if err != nil {
		return fmt.Errorf("RGBImage.Stack: %w", err)
	}
	ri.Stacked = b

	// The mapping normalizes the batch as a whole, so frames shot at
	// different exposures are not brought to a common brightness.
	for i:=1; i<len(ri.Layers); i++ {
		e0, ei := ri.Layers[0].Exposure, ri.Layers[i].Exposure
		if e0.Known() && ei.Known() && e0 != ei {
			log.Printf("Warning: %s (%s) and %s (%s) have different exposures, shutter %gs vs %gs\n",
				ri.Layers[0].Filename(), e0, ri.Layers[i].Filename(), ei, e0.Seconds(), ei.Seconds())
		}
	}

	log.Printf("Stacked %d layers into %s\n", len(ri.Layers), b)
	return nil
}

// Map runs the mapper over the stacked batch.
func (ri *RGBImage)Map() error {
	if ri.Stacked == nil {
		if err := ri.Stack(); err != nil {
			return err
		}
	}

	log.Printf("Mapping %s: %s\n", ri.Stacked, ri.Params)
	out, err := lupton.Map(ri.Stacked, ri.Params)
	if err != nil {
		return fmt.Errorf("RGBImage.Map: %w", err)
	}
	ri.Mapped = out

	if ri.Verbosity > 0 {
		log.Printf("%s", ri.Stats())
	}
	if ri.Verbosity > 1 {
		if err := ri.DumpRadiusGrids("radius"); err != nil {
			log.Printf("RGBImage.Map, radius dump: %v\n", err)
		}
	}

	return nil
}

func (ri *RGBImage)Stats() Stats {
	return ComputeStats(ri.Stacked, ri.Mapped, ri.Params)
}

// Save writes each mapped frame to its own file, and optionally the
// frames as Radiance HDR too.
func (ri *RGBImage)Save() error {
	if ri.Mapped == nil {
		return fmt.Errorf("RGBImage.Save: nothing mapped yet")
	}

	n := ri.Mapped.N
	for i:=0; i<n; i++ {
		filename := FrameFilename(ri.Output.Filename, i, n)
		if err := writeImage(ri.Mapped.Frame(i).ToRGBA(), filename, ri.Output.Quality); err != nil {
			return fmt.Errorf("RGBImage.Save: %w", err)
		}
		log.Printf("Wrote %s\n", filename)
	}

	if ri.Output.HDRFilename != "" {
		for i:=0; i<n; i++ {
			filename := FrameFilename(ri.Output.HDRFilename, i, n)
			if err := WriteHDR(ri.Mapped.Frame(i), filename); err != nil {
				return fmt.Errorf("RGBImage.Save, HDR: %w", err)
			}
			log.Printf("Wrote %s\n", filename)
		}
	}

	return nil
}

// RadiusGrid returns the per-pixel radius of frame `n` of the stacked
// batch, the quantity the asinh stretch is driven by.
func (ri *RGBImage)RadiusGrid(n int) emath.FloatGrid {
	b := ri.Stacked
	g := emath.NewFloatGrid(b.W, b.H)
	for y:=0; y<b.H; y++ {
		for x:=0; x<b.W; x++ {
			g.Set(x, y, ri.Params.Radius(ri.Params.ScaleSample(b.At(n, y, x))))
		}
	}
	return g
}

// DumpRadiusGrids writes a greyscale PNG of each frame's radius grid,
// named `<prefix>-000.png` etc.
func (ri *RGBImage)DumpRadiusGrids(prefix string) error {
	for n:=0; n<ri.Stacked.N; n++ {
		g := ri.RadiusGrid(n)
		title := fmt.Sprintf("radius, frame %d: %s", n, g.Stats())
		if err := g.ToImg(title, fmt.Sprintf("%s-%03d.png", prefix, n)); err != nil {
			return err
		}
	}
	return nil
}
