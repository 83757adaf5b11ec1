package relation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
)

// Centroid returns the mean vector of the given identifiers, or of the whole
// relation if ids is nil. It returns nil for an empty selection.
func Centroid(rel Relation[distance.Vector], ids []core.ID) distance.Vector {
	if ids == nil {
		ids = rel.IDs()
	}
	if len(ids) == 0 {
		return nil
	}

	centroid := make(distance.Vector, rel.Dimensionality())
	n := 0
	for _, id := range ids {
		v, ok := rel.Get(id)
		if !ok {
			continue
		}
		floats.Add(centroid, v)
		n++
	}
	if n == 0 {
		return nil
	}
	floats.Scale(1/float64(n), centroid)
	return centroid
}

// MinMax returns the bounding box of the relation.
// An empty relation yields a zero-dimensional box.
func MinMax(rel Relation[distance.Vector]) distance.Box {
	if rel.Len() == 0 {
		return distance.Box{}
	}

	dim := rel.Dimensionality()
	box := distance.Box{Min: make(distance.Vector, dim), Max: make(distance.Vector, dim)}
	for d := 0; d < dim; d++ {
		box.Min[d] = math.Inf(1)
		box.Max[d] = math.Inf(-1)
	}
	for _, id := range rel.IDs() {
		v, _ := rel.Get(id)
		for d, x := range v {
			box.Min[d] = math.Min(box.Min[d], x)
			box.Max[d] = math.Max(box.Max[d], x)
		}
	}
	return box
}

// Variances returns the per-dimension sample variance of the relation.
// Fewer than two elements yield all zeros.
func Variances(rel Relation[distance.Vector]) []float64 {
	dim := rel.Dimensionality()
	out := make([]float64, dim)
	if rel.Len() < 2 {
		return out
	}

	col := make([]float64, rel.Len())
	for d := 0; d < dim; d++ {
		for i, id := range rel.IDs() {
			v, _ := rel.Get(id)
			col[i] = v[d]
		}
		out[d] = stat.Variance(col, nil)
	}
	return out
}

// ExactMedian returns the exact median of dimension dim over ids.
// For an even count it is the mean of the two middle values.
func ExactMedian(rel Relation[distance.Vector], ids []core.ID, dim int) float64 {
	vals := make([]float64, 0, len(ids))
	for _, id := range ids {
		v, ok := rel.Get(id)
		if ok {
			vals = append(vals, v[dim])
		}
	}
	return Median(vals)
}

// Median returns the exact median of vals in expected linear time, reordering
// vals in place. It returns NaN for an empty slice.
func Median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	hi := selectKth(vals, n/2)
	if n%2 == 1 {
		return hi
	}
	// After selection every value left of n/2 is <= hi.
	lo := floats.Max(vals[:n/2])
	return (lo + hi) / 2
}

// selectKth partially orders vals so that vals[k] holds the k-th smallest
// value (Hoare selection, median-of-three pivot).
func selectKth(vals []float64, k int) float64 {
	left, right := 0, len(vals)-1
	for left < right {
		mid := left + (right-left)/2
		if vals[mid] < vals[left] {
			vals[mid], vals[left] = vals[left], vals[mid]
		}
		if vals[right] < vals[left] {
			vals[right], vals[left] = vals[left], vals[right]
		}
		if vals[right] < vals[mid] {
			vals[right], vals[mid] = vals[mid], vals[right]
		}
		pivot := vals[mid]

		i, j := left, right
		for i <= j {
			for vals[i] < pivot {
				i++
			}
			for vals[j] > pivot {
				j--
			}
			if i <= j {
				vals[i], vals[j] = vals[j], vals[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			right = j
		case k >= i:
			left = i
		default:
			return vals[k]
		}
	}
	return vals[k]
}
