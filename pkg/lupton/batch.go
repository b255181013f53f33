package lupton

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/lupton-rgb/pkg/emath"
)

const NumChannels = 3

// A Batch holds N images, each H pixels high and W pixels wide, with
// three channels (red, green, blue) per pixel. It is a dense (N, H, W, 3)
// array with the channels interleaved; samples are nominally in [0,255].
type Batch struct {
	N, H, W  int
	Pix      []float64 // sample (n,y,x,c) lives at ((n*H + y)*W + x)*3 + c
}

// NewBatch returns an all-zero batch.
func NewBatch(n, h, w int) *Batch {
	return &Batch{N: n, H: h, W: w, Pix: make([]float64, n*h*w*NumChannels)}
}

// NewBatchFromShape wraps `pix` (not copied) as a batch of the given
// shape, which must be (N, H, W, 3).
func NewBatchFromShape(shape []int, pix []float64) (*Batch, error) {
	if len(shape) != 4 {
		return nil, &ShapeError{Shape: shape, Reason: fmt.Sprintf("have %d dimensions, want 4", len(shape))}
	}
	b := &Batch{N: shape[0], H: shape[1], W: shape[2], Pix: pix}
	if shape[3] != NumChannels {
		return nil, &ShapeError{Shape: shape, Reason: fmt.Sprintf("channel dimension is %d, want %d", shape[3], NumChannels)}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBatchFromBands builds a single-image batch out of three separate
// band images, given as [y][x] planes in [0,255].
func NewBatchFromBands(r, g, b [][]float64) (*Batch, error) {
	h := len(r)
	w := 0
	if h > 0 { w = len(r[0]) }

	bands := [NumChannels][][]float64{r, g, b}
	for c, band := range bands {
		if len(band) != h {
			return nil, &ShapeError{Shape: []int{1, h, w, NumChannels},
				Reason: fmt.Sprintf("band %d has %d rows, want %d", c, len(band), h)}
		}
		for y, row := range band {
			if len(row) != w {
				return nil, &ShapeError{Shape: []int{1, h, w, NumChannels},
					Reason: fmt.Sprintf("band %d row %d has %d columns, want %d", c, y, len(row), w)}
			}
		}
	}

	out := NewBatch(1, h, w)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			out.Set(0, y, x, emath.Vec3{r[y][x], g[y][x], b[y][x]})
		}
	}
	return out, nil
}

// NewBatchFromImages stacks same-sized images into a batch. Ordinary
// images have their 16 bit channels mapped onto [0,255]; HDR images
// (`hdr.Image`) have their float channels multiplied by 255 and may
// exceed 255. Alpha is ignored.
func NewBatchFromImages(imgs ...image.Image) (*Batch, error) {
	if len(imgs) == 0 {
		return NewBatch(0, 0, 0), nil
	}

	bounds := imgs[0].Bounds()
	out := NewBatch(len(imgs), bounds.Dy(), bounds.Dx())

	for n, img := range imgs {
		b := img.Bounds()
		if b.Dx() != out.W || b.Dy() != out.H {
			return nil, &ShapeError{Shape: out.Shape(),
				Reason: fmt.Sprintf("image %d is %dx%d, want %dx%d", n, b.Dx(), b.Dy(), out.W, out.H)}
		}

		hdrImg, isHDR := img.(hdr.Image)
		for y:=0; y<out.H; y++ {
			for x:=0; x<out.W; x++ {
				if isHDR {
					r, g, bl, _ := hdrImg.HDRAt(b.Min.X + x, b.Min.Y + y).HDRRGBA()
					out.Set(n, y, x, emath.Vec3{r * 255.0, g * 255.0, bl * 255.0})
				} else {
					r, g, bl, _ := img.At(b.Min.X + x, b.Min.Y + y).RGBA()
					out.Set(n, y, x, emath.Vec3{float64(r) / 257.0, float64(g) / 257.0, float64(bl) / 257.0})
				}
			}
		}
	}

	return out, nil
}

func (b *Batch)Shape() []int    { return []int{b.N, b.H, b.W, NumChannels} }
func (b *Batch)NumPixels() int  { return b.N * b.H * b.W }

func (b *Batch)String() string {
	return fmt.Sprintf("Batch%v", b.Shape())
}

// Validate checks the dimensions against the storage.
func (b *Batch)Validate() error {
	if b.N < 0 || b.H < 0 || b.W < 0 {
		return &ShapeError{Shape: b.Shape(), Reason: "negative dimension"}
	}
	if !fitsInInt(b.N, b.H, b.W, NumChannels) {
		return &ShapeError{Shape: b.Shape(), Reason: "too many samples to address"}
	}
	if want := b.NumPixels() * NumChannels; len(b.Pix) != want {
		return &ShapeError{Shape: b.Shape(), Reason: fmt.Sprintf("have %d samples, want %d", len(b.Pix), want)}
	}
	return nil
}

// fitsInInt is false if the product of the (non-negative) dims overflows an int.
func fitsInInt(dims ...int) bool {
	for _, d := range dims {
		if d == 0 { return true }
	}
	p := 1
	for _, d := range dims {
		if p > math.MaxInt / d { return false }
		p *= d
	}
	return true
}

// Offset is the index of the red sample of the pixel; green and blue follow it.
func (b *Batch)Offset(n, y, x int) int {
	return ((n*b.H + y)*b.W + x) * NumChannels
}

func (b *Batch)At(n, y, x int) emath.Vec3 {
	i := b.Offset(n, y, x)
	return emath.Vec3{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

func (b *Batch)Set(n, y, x int, v emath.Vec3) {
	i := b.Offset(n, y, x)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = v[0], v[1], v[2]
}

func (b *Batch)Clone() *Batch {
	c := &Batch{N: b.N, H: b.H, W: b.W, Pix: make([]float64, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Frame returns a view onto the n'th image of the batch.
func (b *Batch)Frame(n int) Frame { return Frame{batch: b, n: n} }

// A Frame is one image of a Batch. It implements image.Image and
// hdr.Image, with the [0,255] samples mapped onto [0.0,1.0].
type Frame struct {
	batch  *Batch
	n      int
}

// Implement image.Image
func (f Frame)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (f Frame)Bounds() image.Rectangle       { return image.Rect(0, 0, f.batch.W, f.batch.H) }
func (f Frame)At(x, y int) color.Color       { return f.HDRAt(x, y) }

// Implement hdr.Image
func (f Frame)Size() int                     { return f.batch.W * f.batch.H }
func (f Frame)HDRAt(x, y int) hdrcolor.Color {
	v := f.batch.At(f.n, y, x)
	return hdrcolor.RGB{R: v[0] / 255.0, G: v[1] / 255.0, B: v[2] / 255.0}
}

// ToRGBA quantizes the frame to 8 bits per channel, rounding and
// clipping to [0,255]. This is what gets handed to the PNG/JPEG encoders.
func (f Frame)ToRGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	q := func(v float64) uint8 { return uint8(math.Round(emath.Clamp(v, 0.0, 255.0))) }

	for y:=0; y<f.batch.H; y++ {
		for x:=0; x<f.batch.W; x++ {
			v := f.batch.At(f.n, y, x)
			img.SetRGBA(x, y, color.RGBA{q(v[0]), q(v[1]), q(v[2]), 0xFF})
		}
	}
	return img
}
