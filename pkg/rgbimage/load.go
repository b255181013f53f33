package rgbimage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/tiff"
)

// LoadFilesAndDirs loads image files and config files; directories are
// walked recursively. Files with other extensions are skipped.
func (ri *RGBImage)LoadFilesAndDirs(args ...string) (error) {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := ri.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %w", arg, err)
				}
			}

		default: // is a file, load it
			if err := ri.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (ri *RGBImage)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".tif", ".tiff":
		layer, err := loadTIFF(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as TIFF failed: %w", filename, err)
		}
		ri.AddLayer(layer)

	case ".png", ".jpg", ".jpeg":
		layer, err := loadStdImage(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as image failed: %w", filename, err)
		}
		ri.AddLayer(layer)

	case ".hdr":
		layer, err := loadHDR(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as Radiance HDR failed: %w", filename, err)
		}
		ri.AddLayer(layer)

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %w", filename, err)
		}
		ri.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func loadTIFF(filename string) (Layer, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Layer{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}

	img, err := tiff.Decode(bytes.NewReader(contents))
	if err != nil {
		return Layer{}, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}

	return newLayer(filename, img, contents), nil
}

// loadStdImage handles the formats registered with image.Decode (PNG, JPEG).
func loadStdImage(filename string) (Layer, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Layer{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}

	img, format, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return Layer{}, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	if format != "jpeg" {
		return Layer{LoadFilename: filename, Image: img}, nil // PNGs carry no EXIF
	}
	return newLayer(filename, img, contents), nil
}

func loadHDR(filename string) (Layer, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Layer{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := rgbe.Decode(reader)
	if err != nil {
		return Layer{}, fmt.Errorf("rgbe decoding '%s': %v", filename, err)
	}

	return Layer{LoadFilename: filename, Image: img}, nil
}

// newLayer attaches whatever EXIF exposure data the file has; lots of
// processed astro frames have none, which is fine.
func newLayer(filename string, img image.Image, contents []byte) Layer {
	l := Layer{LoadFilename: filename, Image: img}

	if e, err := readExposure(bytes.NewReader(contents)); err == nil {
		l.Exposure = e
	}

	return l
}
