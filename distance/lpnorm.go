package distance

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/vecscan/core"
)

// Compile time checks.
var (
	_ Spatial = (*LpNorm)(nil)
	_ Reducer = (*LpNorm)(nil)
	_ Spatial = (*Manhattan)(nil)
)

// LpNorm is the weighted Minkowski distance
//
//	(sum_d w_d * |a_d - b_d|^p)^(1/p)
//
// For p = +Inf it is the weighted maximum norm max_d w_d * |a_d - b_d|.
type LpNorm struct {
	p       float64
	weights []float64 // nil means all weights are 1
}

// NewLpNorm returns a weighted Lp distance. p must be > 0; weights, if given,
// must be positive and finite and fix the dimensionality of the operands.
func NewLpNorm(p float64, weights []float64) (*LpNorm, error) {
	if math.IsNaN(p) || p <= 0 {
		return nil, core.NewArgumentError("p", p, "must be > 0")
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	return &LpNorm{p: p, weights: weights}, nil
}

// P returns the exponent.
func (l *LpNorm) P() float64 { return l.p }

func (l *LpNorm) Name() string {
	if math.IsInf(l.p, 1) {
		return "maximum"
	}
	return "lp(p=" + strconv.FormatFloat(l.p, 'g', -1, 64) + ")"
}

// Distance implements Function.
func (l *LpNorm) Distance(a, b Vector) (float64, error) {
	r, err := l.ReducedDistance(a, b)
	if err != nil {
		return 0, err
	}
	return l.FromReduced(r), nil
}

// ReducedDistance implements Reducer. The reduced form omits the final root.
func (l *LpNorm) ReducedDistance(a, b Vector) (float64, error) {
	if err := l.check(len(a), len(b)); err != nil {
		return 0, err
	}

	if math.IsInf(l.p, 1) {
		if l.weights == nil {
			return floats.Distance(a, b, l.p), nil
		}
		var agg float64
		for d := range a {
			agg = math.Max(agg, l.weights[d]*math.Abs(a[d]-b[d]))
		}
		return agg, nil
	}

	var agg float64
	for d := range a {
		agg += l.weight(d) * l.term(math.Abs(a[d]-b[d]))
	}
	return agg, nil
}

// FromReduced implements Reducer.
func (l *LpNorm) FromReduced(r float64) float64 {
	switch {
	case math.IsInf(l.p, 1), l.p == 1:
		return r
	case l.p == 2:
		return math.Sqrt(r)
	default:
		return math.Pow(r, 1/l.p)
	}
}

// ToReduced implements Reducer.
func (l *LpNorm) ToReduced(d float64) float64 {
	switch {
	case math.IsInf(l.p, 1), l.p == 1:
		return d
	case l.p == 2:
		return d * d
	default:
		return math.Pow(d, l.p)
	}
}

// MinDist implements Spatial.
func (l *LpNorm) MinDist(v Vector, box Box) (float64, error) {
	if err := checkBox(v, box); err != nil {
		return 0, err
	}
	if err := l.check(len(v), len(box.Min)); err != nil {
		return 0, err
	}

	var agg float64
	for d, x := range v {
		delta := boxDelta(x, box.Min[d], box.Max[d])
		if delta == 0 {
			continue
		}
		if math.IsInf(l.p, 1) {
			agg = math.Max(agg, l.weight(d)*delta)
			continue
		}
		agg += l.weight(d) * l.term(delta)
	}
	return l.FromReduced(agg), nil
}

func (l *LpNorm) term(delta float64) float64 {
	switch l.p {
	case 1:
		return delta
	case 2:
		return delta * delta
	default:
		return math.Pow(delta, l.p)
	}
}

func (l *LpNorm) weight(d int) float64 {
	if l.weights == nil {
		return 1
	}
	return l.weights[d]
}

func (l *LpNorm) check(a, b int) error {
	if err := checkDims(a, b); err != nil {
		return err
	}
	if l.weights != nil {
		return checkDims(len(l.weights), a)
	}
	return nil
}

// Manhattan is the (optionally weighted) L1 distance with a specialized
// per-dimension term and box bound.
type Manhattan struct {
	weights []float64
}

// NewManhattan returns an L1 distance. Nil weights mean unweighted.
func NewManhattan(weights []float64) (*Manhattan, error) {
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	return &Manhattan{weights: weights}, nil
}

func (m *Manhattan) Name() string {
	if m.weights != nil {
		return "weighted-manhattan"
	}
	return "manhattan"
}

// Distance implements Function.
func (m *Manhattan) Distance(a, b Vector) (float64, error) {
	if err := checkDims(len(a), len(b)); err != nil {
		return 0, err
	}
	if m.weights == nil {
		return floats.Distance(a, b, 1), nil
	}
	if err := checkDims(len(m.weights), len(a)); err != nil {
		return 0, err
	}

	var agg float64
	for d := range a {
		xd, yd := a[d], b[d]
		delta := xd - yd
		if yd > xd {
			delta = yd - xd
		}
		agg += delta * m.weights[d]
	}
	return agg, nil
}

// MinDist implements Spatial.
func (m *Manhattan) MinDist(v Vector, box Box) (float64, error) {
	if err := checkBox(v, box); err != nil {
		return 0, err
	}
	if m.weights != nil {
		if err := checkDims(len(m.weights), len(v)); err != nil {
			return 0, err
		}
	}

	var agg float64
	for d, value := range v {
		delta := box.Min[d] - value
		if delta < 0 {
			delta = value - box.Max[d]
		}
		if delta > 0 {
			if m.weights != nil {
				delta *= m.weights[d]
			}
			agg += delta
		}
	}
	return agg, nil
}

func validateWeights(weights []float64) error {
	for d, w := range weights {
		if !(w > 0) || math.IsInf(w, 1) {
			return core.NewArgumentError(fmt.Sprintf("weights[%d]", d), w, "must be positive and finite")
		}
	}
	return nil
}
