package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/vecscan/core"
)

// Vector is a dense vector. All vectors of one relation share a dimensionality.
type Vector = []float64

// Function computes a nonnegative distance between two objects.
type Function[V any] interface {
	// Distance returns the distance between a and b.
	// It fails with a *core.DimensionMismatchError if the operands differ in dimensionality.
	Distance(a, b V) (float64, error)

	// Name returns a short, stable identifier of the function.
	Name() string
}

// Spatial is a Function that can bound the distance from a point to a box.
// The spatial index requires this capability for pruning.
type Spatial interface {
	Function[Vector]

	// MinDist returns the minimum possible distance from v to any point in box.
	MinDist(v Vector, box Box) (float64, error)
}

// Reducer is implemented by functions that have a cheaper monotonic surrogate,
// e.g. the squared Euclidean distance for the Euclidean distance.
// The surrogate must order any two pairs exactly like the real distance.
type Reducer interface {
	// ReducedDistance returns the surrogate distance between a and b.
	ReducedDistance(a, b Vector) (float64, error)

	// FromReduced converts a surrogate value into the real distance.
	FromReduced(r float64) float64

	// ToReduced converts a real distance into surrogate units.
	ToReduced(d float64) float64
}

// Box is an axis-aligned rectangular region. Bounds may be infinite.
type Box struct {
	Min Vector
	Max Vector
}

// UnboundedBox returns a box covering the whole space of the given dimensionality.
func UnboundedBox(dim int) Box {
	b := Box{Min: make(Vector, dim), Max: make(Vector, dim)}
	for d := 0; d < dim; d++ {
		b.Min[d] = math.Inf(-1)
		b.Max[d] = math.Inf(1)
	}
	return b
}

// Dimensionality returns the number of dimensions of the box.
func (b Box) Dimensionality() int { return len(b.Min) }

// Contains reports whether v lies inside the box (bounds inclusive).
func (b Box) Contains(v Vector) bool {
	if len(v) != len(b.Min) {
		return false
	}
	for d, x := range v {
		if x < b.Min[d] || x > b.Max[d] {
			return false
		}
	}
	return true
}

// boxDelta returns the per-dimension gap between value and the interval [lo, hi].
func boxDelta(value, lo, hi float64) float64 {
	delta := lo - value
	if delta < 0 {
		delta = value - hi
	}
	if delta > 0 {
		return delta
	}
	return 0
}

func checkDims(a, b int) error {
	if a != b {
		return &core.DimensionMismatchError{Expected: a, Actual: b}
	}
	return nil
}

func checkBox(v Vector, box Box) error {
	if len(box.Min) != len(box.Max) {
		return core.NewArgumentError("box", len(box.Max), fmt.Sprintf("min has %d dimensions", len(box.Min)))
	}
	return checkDims(len(box.Min), len(v))
}

// Metric represents a built-in dense distance function.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricLp
	MetricMaximum
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricSquaredEuclidean:
		return "squared-euclidean"
	case MetricManhattan:
		return "manhattan"
	case MetricLp:
		return "lp"
	case MetricMaximum:
		return "maximum"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMetric resolves a metric by name. Matching is case-insensitive and
// accepts the common aliases (l1, l2, sqeuclidean, chebyshev, minkowski).
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean", "l2":
		return MetricEuclidean, nil
	case "squared-euclidean", "squaredeuclidean", "sqeuclidean":
		return MetricSquaredEuclidean, nil
	case "manhattan", "l1", "cityblock":
		return MetricManhattan, nil
	case "lp", "minkowski":
		return MetricLp, nil
	case "maximum", "chebyshev", "linf":
		return MetricMaximum, nil
	default:
		return 0, core.NewArgumentError("metric", name, "unknown metric")
	}
}

// Options configures parameterized metrics.
type Options struct {
	// P is the exponent of MetricLp. It must be > 0 (math.Inf(1) selects the maximum norm).
	P float64

	// Weights are optional positive per-dimension weights for MetricManhattan,
	// MetricLp and MetricMaximum. Nil means unweighted.
	Weights []float64
}

// DefaultOptions contains the default metric parameters.
var DefaultOptions = Options{
	P: 2,
}

// WithP sets the Lp exponent.
func WithP(p float64) func(o *Options) {
	return func(o *Options) {
		o.P = p
	}
}

// WithWeights sets per-dimension weights.
func WithWeights(w []float64) func(o *Options) {
	return func(o *Options) {
		o.Weights = w
	}
}

// New returns the distance function for the given metric.
func New(m Metric, optFns ...func(o *Options)) (Function[Vector], error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	switch m {
	case MetricEuclidean:
		if opts.Weights != nil {
			return NewLpNorm(2, opts.Weights)
		}
		return Euclidean{}, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean{}, nil
	case MetricManhattan:
		return NewManhattan(opts.Weights)
	case MetricLp:
		return NewLpNorm(opts.P, opts.Weights)
	case MetricMaximum:
		return NewLpNorm(math.Inf(1), opts.Weights)
	default:
		return nil, core.NewArgumentError("metric", m, "unsupported metric")
	}
}
