package rgbimage

import (
	"fmt"
	"image"
	"path/filepath"
)

// A Layer is one input frame, as loaded from a file. It becomes one
// image of the batch handed to the mapper.
type Layer struct {
	LoadFilename       string
	Exposure                        // From EXIF, if the file had any

	image.Image
}

func (l Layer)String() string {
	b := l.Image.Bounds()
	return fmt.Sprintf("%s: %dx%d, %s", l.Filename(), b.Dx(), b.Dy(), l.Exposure)
}

func (l Layer)Filename() string {
	return filepath.Base(l.LoadFilename)
}
