package distance

import "math"

// Compile time checks.
var (
	_ Spatial = Euclidean{}
	_ Reducer = Euclidean{}
	_ Spatial = SquaredEuclidean{}
)

// Euclidean is the L2 distance. Its reduced form is the squared distance,
// which lets linear scans skip one square root per candidate.
type Euclidean struct{}

func (Euclidean) Name() string { return "euclidean" }

// Distance implements Function.
func (e Euclidean) Distance(a, b Vector) (float64, error) {
	r, err := e.ReducedDistance(a, b)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(r), nil
}

// ReducedDistance implements Reducer.
func (Euclidean) ReducedDistance(a, b Vector) (float64, error) {
	if err := checkDims(len(a), len(b)); err != nil {
		return 0, err
	}
	return sumOfSquares(a, b), nil
}

// FromReduced implements Reducer.
func (Euclidean) FromReduced(r float64) float64 { return math.Sqrt(r) }

// ToReduced implements Reducer.
func (Euclidean) ToReduced(d float64) float64 { return d * d }

// MinDist implements Spatial.
func (Euclidean) MinDist(v Vector, box Box) (float64, error) {
	if err := checkBox(v, box); err != nil {
		return 0, err
	}
	return math.Sqrt(boxSumOfSquares(v, box)), nil
}

// SquaredEuclidean is the squared L2 distance. It is not a metric (no triangle
// inequality) but orders pairs exactly like Euclidean.
type SquaredEuclidean struct{}

func (SquaredEuclidean) Name() string { return "squared-euclidean" }

// Distance implements Function.
func (SquaredEuclidean) Distance(a, b Vector) (float64, error) {
	if err := checkDims(len(a), len(b)); err != nil {
		return 0, err
	}
	return sumOfSquares(a, b), nil
}

// MinDist implements Spatial.
func (SquaredEuclidean) MinDist(v Vector, box Box) (float64, error) {
	if err := checkBox(v, box); err != nil {
		return 0, err
	}
	return boxSumOfSquares(v, box), nil
}

func sumOfSquares(a, b Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func boxSumOfSquares(v Vector, box Box) float64 {
	var sum float64
	for d, x := range v {
		delta := boxDelta(x, box.Min[d], box.Max[d])
		sum += delta * delta
	}
	return sum
}
