package rgbimage

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/abworrall/lupton-rgb/pkg/lupton"
)

func TestLoadFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]color.RGBA{
		filepath.Join(dir, "a.png"): {200, 100, 50, 255},
		filepath.Join(sub, "b.PNG"): {10, 20, 30, 255},
		filepath.Join(dir, "c.jpg"): {90, 90, 90, 255},
	}
	for filename, c := range files {
		if err := writeImage(solidImage(5, 4, c), filename, 100); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "m51.yaml"), []byte("params:\n  beta: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ri := NewRGBImage()
	if err := ri.LoadFilesAndDirs(dir); err != nil {
		t.Fatalf("LoadFilesAndDirs: %v", err)
	}

	if len(ri.Layers) != 3 {
		t.Fatalf("loaded %d layers; want 3:\n%s", len(ri.Layers), ri)
	}
	if ri.Params.Beta != 2 {
		t.Errorf("Beta = %v; want 2 from m51.yaml", ri.Params.Beta)
	}
	for _, l := range ri.Layers {
		if b := l.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
			t.Errorf("%s: bounds %v; want 5x4", l.Filename(), b)
		}
		if l.Exposure.Known() {
			t.Errorf("%s: exposure %s; want unknown", l.Filename(), l.Exposure)
		}
	}
}

func TestLoadFilesAndDirsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		setup    func() string
	}{
		{"missing file", func() string { return filepath.Join(dir, "nope.png") }},
		{"corrupt png", func() string {
			f := filepath.Join(dir, "bad.png")
			os.WriteFile(f, []byte("not a png"), 0644)
			return f
		}},
		{"invalid config", func() string {
			f := filepath.Join(dir, "bad.yaml")
			os.WriteFile(f, []byte("params:\n  alpha: 0\n"), 0644)
			return f
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ri := NewRGBImage()
			if err := ri.LoadFilesAndDirs(tt.setup()); err == nil {
				t.Error("LoadFilesAndDirs succeeded; want error")
			}
		})
	}
}

func TestLoadHDR(t *testing.T) {
	src, err := lupton.NewBatchFromShape([]int{1, 1, 2, 3}, []float64{200, 100, 50, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(t.TempDir(), "frame.hdr")
	if err := WriteHDR(src.Frame(0), filename); err != nil {
		t.Fatalf("WriteHDR: %v", err)
	}

	ri := NewRGBImage()
	if err := ri.LoadFilesAndDirs(filename); err != nil {
		t.Fatalf("LoadFilesAndDirs: %v", err)
	}
	if len(ri.Layers) != 1 {
		t.Fatalf("loaded %d layers; want 1", len(ri.Layers))
	}

	got, err := lupton.NewBatchFromImages(ri.Layers[0].Image)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 2 || got.H != 1 {
		t.Fatalf("loaded %s; want 1x2", got)
	}

	// RGBE keeps 8 bits of mantissa per channel, against a shared exponent.
	for i, want := range src.Pix {
		if math.Abs(got.Pix[i] - want) > 3.0 {
			t.Errorf("sample %d = %v; want ~%v", i, got.Pix[i], want)
		}
	}
}
