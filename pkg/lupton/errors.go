package lupton

import "fmt"

// A ShapeError is returned when a batch is not a dense (N, H, W, 3) array.
type ShapeError struct {
	Shape    []int
	Reason   string
}

func (e *ShapeError)Error() string {
	return fmt.Sprintf("lupton: bad batch shape %v: %s", e.Shape, e.Reason)
}

// An InvalidParameterError is returned for a mapping parameter that is
// zero, negative or not finite. Beta and Q divide into the nonlinearity
// factor, so zero values have no meaningful output.
type InvalidParameterError struct {
	Name     string
	Value    float64
}

func (e *InvalidParameterError)Error() string {
	return fmt.Sprintf("lupton: parameter %s=%g, must be finite and > 0", e.Name, e.Value)
}
