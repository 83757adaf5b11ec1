package distance

import (
	"math"
	"slices"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vecscan/core"
)

// SparseVector is a vector that stores only its defined dimensions.
// Unset dimensions read as 0.
type SparseVector struct {
	dim    int
	mask   *roaring.Bitmap
	index  []uint32 // sorted defined dimensions
	values []float64
}

// NewSparseVector builds a sparse vector of dimensionality dim from the given
// dimension → value map. Dimensions outside [0, dim) are rejected.
func NewSparseVector(dim int, values map[uint32]float64) (*SparseVector, error) {
	if dim < 0 {
		return nil, core.NewArgumentError("dim", dim, "must be >= 0")
	}

	index := make([]uint32, 0, len(values))
	for d := range values {
		if int(d) >= dim {
			return nil, core.NewArgumentError("dimension", d, "out of range [0, "+strconv.Itoa(dim)+")")
		}
		index = append(index, d)
	}
	slices.Sort(index)

	v := &SparseVector{
		dim:    dim,
		mask:   roaring.BitmapOf(index...),
		index:  index,
		values: make([]float64, len(index)),
	}
	for i, d := range index {
		v.values[i] = values[d]
	}
	return v, nil
}

// Dimensionality returns the number of dimensions, defined or not.
func (v *SparseVector) Dimensionality() int { return v.dim }

// Mask returns a copy of the defined-dimension bitmask.
func (v *SparseVector) Mask() *roaring.Bitmap { return v.mask.Clone() }

// Value returns the value of dimension d, or 0 if d is not defined.
func (v *SparseVector) Value(d uint32) float64 {
	i, ok := slices.BinarySearch(v.index, d)
	if !ok {
		return 0
	}
	return v.values[i]
}

// Dense expands the vector into a dense Vector.
func (v *SparseVector) Dense() Vector {
	out := make(Vector, v.dim)
	for i, d := range v.index {
		out[d] = v.values[i]
	}
	return out
}

// Compile time check.
var _ Function[*SparseVector] = (*SparseLpNorm)(nil)

// SparseLpNorm is the Lp distance on sparse vectors. Each dimension is visited
// exactly once across three disjoint passes: defined only in the first
// operand, only in the second, and in both.
type SparseLpNorm struct {
	p float64
}

// NewSparseLpNorm returns a sparse Lp distance for p > 0.
func NewSparseLpNorm(p float64) (*SparseLpNorm, error) {
	if math.IsNaN(p) || p <= 0 || math.IsInf(p, 1) {
		return nil, core.NewArgumentError("p", p, "must be finite and > 0")
	}
	return &SparseLpNorm{p: p}, nil
}

func (s *SparseLpNorm) Name() string {
	return "sparse-lp(p=" + strconv.FormatFloat(s.p, 'g', -1, 64) + ")"
}

// Distance implements Function.
func (s *SparseLpNorm) Distance(a, b *SparseVector) (float64, error) {
	if a == nil || b == nil {
		return 0, core.NewArgumentError("vector", nil, "nil sparse vector")
	}
	if err := checkDims(a.dim, b.dim); err != nil {
		return 0, err
	}

	both := roaring.And(a.mask, b.mask)
	onlyA := roaring.AndNot(a.mask, both)
	onlyB := roaring.AndNot(b.mask, both)

	var agg float64
	it := onlyA.Iterator()
	for it.HasNext() {
		agg += math.Pow(math.Abs(a.Value(it.Next())), s.p)
	}
	it = onlyB.Iterator()
	for it.HasNext() {
		agg += math.Pow(math.Abs(b.Value(it.Next())), s.p)
	}
	it = both.Iterator()
	for it.HasNext() {
		d := it.Next()
		agg += math.Pow(math.Abs(a.Value(d)-b.Value(d)), s.p)
	}
	return math.Pow(agg, 1/s.p), nil
}
