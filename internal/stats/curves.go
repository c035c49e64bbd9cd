package stats

import (
	"fmt"
	"math"
	"slices"
)

// Target selects one member of the reference curve family. The curve uses
// log10(target) as the exponent on elapsed time, so a larger target rises
// later.
type Target int

const (
	Target30 Target = 30
	Target50 Target = 50
	Target70 Target = 70
)

// ShapeValues are the accepted tail steepness parameters.
var ShapeValues = []float64{1.0, 1.5, 2.0, 2.5, 3.0}

// DefaultShape is used for every curve when nothing else is configured.
const DefaultShape = 2.5

// Shapes configures the three reference curves independently.
type Shapes struct {
	S30 float64 `json:"s30"`
	S50 float64 `json:"s50"`
	S70 float64 `json:"s70"`
}

// DefaultShapes returns DefaultShape for all three curves.
func DefaultShapes() Shapes {
	return Shapes{S30: DefaultShape, S50: DefaultShape, S70: DefaultShape}
}

// Validate rejects shape values outside ShapeValues.
func (s Shapes) Validate() error {
	for _, v := range []float64{s.S30, s.S50, s.S70} {
		if err := validateShape(v); err != nil {
			return err
		}
	}
	return nil
}

func validateShape(s float64) error {
	if !slices.Contains(ShapeValues, s) {
		return fmt.Errorf("%w: %v (allowed: %v)", ErrInvalidShape, s, ShapeValues)
	}
	return nil
}

func (t Target) valid() bool {
	return t == Target30 || t == Target50 || t == Target70
}

// ReferenceCurve evaluates the ideal progress curve
//
//	curve(i) = 100 * (1 - (1 - (i/(n-1))^log10(target))^s)
//
// for every bucket index i in [0, n-1]. curve(0) is 0 and curve(n-1) is 100.
func ReferenceCurve(n int, s float64, target Target) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrInsufficientBuckets, n)
	}
	if err := validateShape(s); err != nil {
		return nil, err
	}
	if !target.valid() {
		return nil, fmt.Errorf("%w: %d (allowed: 30, 50, 70)", ErrInvalidTarget, target)
	}

	exp := math.Log10(float64(target))
	last := float64(n - 1)

	values := make([]float64, n)
	for i := range values {
		x := math.Pow(float64(i)/last, exp)
		values[i] = 100 * (1 - math.Pow(1-x, s))
	}
	return values, nil
}

// ApplyReferenceCurves fills the three reference columns of a bucket series
// in place.
func ApplyReferenceCurves(series BucketSeries, shapes Shapes) error {
	if err := shapes.Validate(); err != nil {
		return err
	}

	c30, err := ReferenceCurve(len(series), shapes.S30, Target30)
	if err != nil {
		return err
	}
	c50, err := ReferenceCurve(len(series), shapes.S50, Target50)
	if err != nil {
		return err
	}
	c70, err := ReferenceCurve(len(series), shapes.S70, Target70)
	if err != nil {
		return err
	}

	for i := range series {
		series[i].Curve30 = c30[i]
		series[i].Curve50 = c50[i]
		series[i].Curve70 = c70[i]
	}
	return nil
}
