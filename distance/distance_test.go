package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscan/core"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector
		expected float64
	}{
		{"Simple", Vector{0, 0}, Vector{3, 4}, 5},
		{"Zero", Vector{0, 0, 0}, Vector{0, 0, 0}, 0},
		{"Identical", Vector{1, 2, 3}, Vector{1, 2, 3}, 0},
		{"Mixed", Vector{1, -1}, Vector{-1, 1}, math.Sqrt(8)},
		{"Empty", Vector{}, Vector{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Euclidean{}.Distance(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)

			sq, err := SquaredEuclidean{}.Distance(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected*tt.expected, sq, 1e-12)
		})
	}
}

func TestEuclidean_Reducer(t *testing.T) {
	e := Euclidean{}
	a, b := Vector{1, 2}, Vector{4, 6}

	r, err := e.ReducedDistance(a, b)
	require.NoError(t, err)
	assert.Equal(t, 25.0, r)
	assert.Equal(t, 5.0, e.FromReduced(r))
	assert.Equal(t, 25.0, e.ToReduced(5))

	d, err := e.Distance(a, b)
	require.NoError(t, err)
	assert.Equal(t, e.FromReduced(r), d)
}

func TestDimensionMismatch(t *testing.T) {
	manhattan, err := NewManhattan(nil)
	require.NoError(t, err)
	lp, err := NewLpNorm(3, nil)
	require.NoError(t, err)

	fns := []Function[Vector]{Euclidean{}, SquaredEuclidean{}, manhattan, lp}
	for _, fn := range fns {
		t.Run(fn.Name(), func(t *testing.T) {
			_, err := fn.Distance(Vector{1, 2}, Vector{1, 2, 3})
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)

			var dm *core.DimensionMismatchError
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 2, dm.Expected)
			assert.Equal(t, 3, dm.Actual)
		})
	}
}

func TestLpNorm(t *testing.T) {
	a, b := Vector{0, 0, 0}, Vector{1, 2, 2}

	tests := []struct {
		name     string
		p        float64
		weights  []float64
		expected float64
	}{
		{"L1", 1, nil, 5},
		{"L2", 2, nil, 3},
		{"L3", 3, nil, math.Cbrt(17)},
		{"Maximum", math.Inf(1), nil, 2},
		{"WeightedL2", 2, []float64{1, 4, 0.25}, math.Sqrt(1 + 16 + 1)},
		{"WeightedMaximum", math.Inf(1), []float64{1, 4, 0.25}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLpNorm(tt.p, tt.weights)
			require.NoError(t, err)

			got, err := l.Distance(a, b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)

			r, err := l.ReducedDistance(a, b)
			require.NoError(t, err)
			assert.InDelta(t, got, l.FromReduced(r), 1e-12)
			assert.InDelta(t, r, l.ToReduced(got), 1e-9)
		})
	}
}

func TestLpNorm_InvalidArguments(t *testing.T) {
	_, err := NewLpNorm(0, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewLpNorm(math.NaN(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewLpNorm(2, []float64{1, 0})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewManhattan([]float64{-1})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	l, err := NewLpNorm(2, []float64{1, 1})
	require.NoError(t, err)
	_, err = l.Distance(Vector{1, 2, 3}, Vector{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestWeightedManhattan(t *testing.T) {
	m, err := NewManhattan([]float64{2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, "weighted-manhattan", m.Name())

	d, err := m.Distance(Vector{1, 1}, Vector{4, -3})
	require.NoError(t, err)
	assert.InDelta(t, 2*3+0.5*4, d, 1e-12)

	// Must agree with the generic Lp family at p=1.
	lp, err := NewLpNorm(1, []float64{2, 0.5})
	require.NoError(t, err)
	d2, err := lp.Distance(Vector{1, 1}, Vector{4, -3})
	require.NoError(t, err)
	assert.InDelta(t, d, d2, 1e-12)
}

func TestMinDist(t *testing.T) {
	box := Box{Min: Vector{0, 0}, Max: Vector{1, 1}}
	manhattan, err := NewManhattan(nil)
	require.NoError(t, err)
	weighted, err := NewManhattan([]float64{2, 3})
	require.NoError(t, err)
	lp3, err := NewLpNorm(3, nil)
	require.NoError(t, err)
	maximum, err := NewLpNorm(math.Inf(1), nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		fn       Spatial
		v        Vector
		expected float64
	}{
		{"EuclideanInside", Euclidean{}, Vector{0.5, 0.5}, 0},
		{"EuclideanCorner", Euclidean{}, Vector{4, 5}, 5},
		{"EuclideanSide", Euclidean{}, Vector{0.5, -2}, 2},
		{"SquaredCorner", SquaredEuclidean{}, Vector{4, 5}, 25},
		{"ManhattanCorner", manhattan, Vector{-1, 3}, 3},
		{"WeightedManhattan", weighted, Vector{-1, 3}, 2*1 + 3*2},
		{"Lp3", lp3, Vector{2, 2}, math.Cbrt(2)},
		{"Maximum", maximum, Vector{3, 1.5}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn.MinDist(tt.v, box)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestMinDist_IsLowerBound(t *testing.T) {
	box := Box{Min: Vector{-1, 2, 0}, Max: Vector{1, 3, 5}}
	inside := []Vector{{-1, 2, 0}, {1, 3, 5}, {0, 2.5, 1}, {0.5, 2, 4}}
	queries := []Vector{{5, 5, 5}, {-3, 0, 2}, {0, 2.5, 9}, {0, 0, 0}}

	lp, err := NewLpNorm(1.5, []float64{1, 2, 3})
	require.NoError(t, err)

	for _, fn := range []Spatial{Euclidean{}, SquaredEuclidean{}, lp} {
		for _, q := range queries {
			bound, err := fn.MinDist(q, box)
			require.NoError(t, err)
			for _, p := range inside {
				d, err := fn.Distance(q, p)
				require.NoError(t, err)
				assert.LessOrEqual(t, bound, d+1e-12, "%s: bound %v exceeds distance %v", fn.Name(), bound, d)
			}
		}
	}
}

func TestMinDist_UnboundedBox(t *testing.T) {
	box := UnboundedBox(3)
	assert.Equal(t, 3, box.Dimensionality())
	assert.True(t, box.Contains(Vector{1e9, -1e9, 0}))

	box.Min[1] = 10
	d, err := Euclidean{}.MinDist(Vector{0, 0, 0}, box)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)

	_, err = Euclidean{}.MinDist(Vector{0, 0}, box)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name     string
		expected Metric
	}{
		{"euclidean", MetricEuclidean},
		{"L2", MetricEuclidean},
		{"sqeuclidean", MetricSquaredEuclidean},
		{" Manhattan ", MetricManhattan},
		{"minkowski", MetricLp},
		{"chebyshev", MetricMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMetric(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}

	_, err := ParseMetric("hamming")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestNew(t *testing.T) {
	fn, err := New(MetricEuclidean)
	require.NoError(t, err)
	assert.Equal(t, "euclidean", fn.Name())

	fn, err = New(MetricLp, WithP(3))
	require.NoError(t, err)
	assert.Equal(t, "lp(p=3)", fn.Name())

	fn, err = New(MetricMaximum)
	require.NoError(t, err)
	assert.Equal(t, "maximum", fn.Name())

	fn, err = New(MetricManhattan, WithWeights([]float64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, "weighted-manhattan", fn.Name())

	_, isSpatial := fn.(Spatial)
	assert.True(t, isSpatial)

	_, err = New(MetricLp, WithP(-1))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = New(Metric(42))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Equal(t, "Unknown(42)", Metric(42).String())
}
