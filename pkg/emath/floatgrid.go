package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, with some operations. We use it to
// look at single-channel intermediate values (e.g. the per-pixel
// radius) of a frame.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

// Max returns the largest value in the grid; an empty grid has a max of zero.
func (fg *FloatGrid)Max() float64 {
	if len(fg.values) == 0 { return 0.0 }
	return floats.Max(fg.values)
}

func (fg *FloatGrid)Min() float64 {
	if len(fg.values) == 0 { return 0.0 }
	return floats.Min(fg.values)
}

func (fg *FloatGrid)Stats() string {
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), fg.Min(), fg.Max())
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision. The title is drawn in the top left corner.
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.Min(), fg.Max()
	span := max - min
	if span <= 0.0 { span = 1.0 }

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64(Clamp((lum - min) / span, 0.0, 1.0))
			g16 := uint16(math.Round(gray * 65535.0))
			img.Set(x, y, color.RGBA64{g16, g16, g16, 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("FloatGrid.ToImg, save '%s': %v", filename, err)
	}
	return nil
}
