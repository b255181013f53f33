package rgbimage

import (
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

type rational [2]int64

// An Exposure records how a frame was shot, as far as its EXIF data
// says. It is only reported: every frame in a batch is normalized by
// the same global max, so frames shot at different exposures keep
// their relative brightness.
type Exposure struct {
	ISO           int64     // 100, 800, etc.
	ApertureX10   int64     // f/5.6 is the integer 56.
	ShutterSpeed  rational  // 1/500, 1/1000, etc.
}

func (e Exposure)Known() bool { return e.ISO > 0 || e.ApertureX10 > 0 || e.ShutterSpeed[1] > 0 }

// Seconds is the shutter speed as a float, or zero if unknown.
func (e Exposure)Seconds() float64 {
	if e.ShutterSpeed[1] == 0 { return 0.0 }
	return float64(e.ShutterSpeed[0]) / float64(e.ShutterSpeed[1])
}

func (e Exposure)String() string {
	if !e.Known() {
		return "exposure unknown"
	}

	s := fmt.Sprintf("f/%.1f", float32(e.ApertureX10)/10.0)

	if e.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", e.ShutterSpeed[0], e.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %d", e.ShutterSpeed[0])
	}

	return s + fmt.Sprintf(", ISO%d", e.ISO)
}

// readExposure pulls what it can out of the EXIF data of a TIFF or
// JPEG. Missing tags are left at zero; only a missing/unparseable EXIF
// block is an error.
func readExposure(r io.Reader) (Exposure, error) {
	e := Exposure{}

	ex, err := exif.Decode(r)
	if err != nil {
		return e, fmt.Errorf("exif parsing: %v", err)
	}

	if tag,err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val,err := tag.Int64(0); err == nil {
			e.ISO = val
		}
	}

	if tag,err := ex.Get(exif.FNumber); err == nil {
		if num,denom,err := tag.Rat2(0); err == nil && denom != 0 {
			e.ApertureX10 = num * 10 / denom
		}
	}

	if tag,err := ex.Get(exif.ExposureTime); err == nil {
		if num,denom,err := tag.Rat2(0); err == nil {
			e.ShutterSpeed = rational{num,denom}
		}
	}

	return e, nil
}
