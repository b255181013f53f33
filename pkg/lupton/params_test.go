package lupton

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/abworrall/lupton-rgb/pkg/emath"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Beta != 3.0 || p.Alpha != 0.06 || p.Q != 3.5 || p.OversaturateFactor != 2.0 {
		t.Errorf("DefaultParams() = %s", p)
	}
	if p.BandScalings != (emath.Vec3{1.0, 1.176, 1.818}) {
		t.Errorf("DefaultParams().BandScalings = %v", p.BandScalings)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("DefaultParams().Validate() = %v; want nil", err)
	}
	if !strings.Contains(p.String(), "beta=3") {
		t.Errorf("String() = %q; want it to mention beta=3", p.String())
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *Params)
		expected string // name of the bad parameter, "" for valid
	}{
		{"defaults", func(p *Params) {}, ""},
		{"explicit workers", func(p *Params) { p.Workers = 4 }, ""},
		{"zero beta", func(p *Params) { p.Beta = 0 }, "beta"},
		{"negative alpha", func(p *Params) { p.Alpha = -0.1 }, "alpha"},
		{"zero Q", func(p *Params) { p.Q = 0 }, "Q"},
		{"nan Q", func(p *Params) { p.Q = math.NaN() }, "Q"},
		{"infinite beta", func(p *Params) { p.Beta = math.Inf(1) }, "beta"},
		{"zero green scaling", func(p *Params) { p.BandScalings[1] = 0 }, "bandscalings[1]"},
		{"zero oversaturate", func(p *Params) { p.OversaturateFactor = 0 }, "oversaturatefactor"},
		{"negative workers", func(p *Params) { p.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()

			if tt.expected == "" {
				if err != nil {
					t.Errorf("Validate() = %v; want nil", err)
				}
				return
			}

			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("Validate() = %v; want an InvalidParameterError", err)
			}
			if paramErr.Name != tt.expected {
				t.Errorf("InvalidParameterError.Name = %q; want %q", paramErr.Name, tt.expected)
			}
		})
	}
}

func TestScaleSampleAndRadius(t *testing.T) {
	p := DefaultParams()
	v := p.ScaleSample(emath.Vec3{255, -10, 255})

	want := emath.Vec3{1.0, 0, 1.818}
	for c := range v {
		if math.Abs(v[c]-want[c]) > 1e-12 {
			t.Errorf("ScaleSample()[%d] = %v; want %v", c, v[c], want[c])
		}
	}

	if r := p.Radius(v); math.Abs(r-3.0*2.818) > 1e-12 {
		t.Errorf("Radius() = %v; want %v", r, 3.0*2.818)
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		n, workers int
		expected   int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{10, 1, 1},
		{10, 3, 3},
		{10, 0, 1},
		{7, 100, 7},
	}

	for _, tt := range tests {
		spans := partition(tt.n, tt.workers)
		if len(spans) != tt.expected {
			t.Errorf("partition(%d,%d) gave %d spans; want %d", tt.n, tt.workers, len(spans), tt.expected)
			continue
		}

		next := 0
		for _, s := range spans {
			if s.start != next || s.end <= s.start {
				t.Errorf("partition(%d,%d) = %v; not contiguous", tt.n, tt.workers, spans)
				break
			}
			next = s.end
		}
		if tt.n > 0 && next != tt.n {
			t.Errorf("partition(%d,%d) ends at %d; want %d", tt.n, tt.workers, next, tt.n)
		}
	}
}
