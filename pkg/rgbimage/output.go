package rgbimage

// A few helper routines for golang's image libraries

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteJPEG clamps out-of-range qualities to DefaultJPEGQuality.
func WriteJPEG(img image.Image, filename string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}
}

// WriteHDR outputs a Radiance HDR image. You can load this into photoshop or other HDR tools.
func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}

// writeImage picks the encoder from the file extension.
func writeImage(img image.Image, filename string, quality int) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return WritePNG(img, filename)
	case ".jpg", ".jpeg":
		return WriteJPEG(img, filename, quality)
	default:
		return fmt.Errorf("'%s': unsupported output format, want .jpg, .jpeg or .png", filename)
	}
}

// FrameFilename names frame `i` of `n`; a batch of one keeps the name as
// given, otherwise "out.jpg" becomes "out-000.jpg", "out-001.jpg", ...
func FrameFilename(filename string, i, n int) string {
	if n <= 1 {
		return filename
	}
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(filename, ext), i, ext)
}
