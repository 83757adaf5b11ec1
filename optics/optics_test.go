package optics

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/kdtree"
	"github.com/hupe1980/vecscan/knn"
	"github.com/hupe1980/vecscan/relation"
	"github.com/hupe1980/vecscan/testutil"
)

func abcd(t *testing.T) *relation.Memory[distance.Vector] {
	t.Helper()
	rel, err := relation.FromVectors([]distance.Vector{{0, 0}, {1, 0}, {5, 5}, {5, 6}})
	require.NoError(t, err)
	return rel
}

func engines(t *testing.T, rel *relation.Memory[distance.Vector]) map[string]RangeQuery {
	t.Helper()
	tree, err := kdtree.New(rel, distance.Euclidean{})
	require.NoError(t, err)
	return map[string]RangeQuery{
		"Linear": knn.New(rel, distance.Euclidean{}),
		"Tree":   tree,
	}
}

func TestRun_Example(t *testing.T) {
	rel := abcd(t)
	inf := math.Inf(1)

	for name, q := range engines(t, rel) {
		t.Run(name, func(t *testing.T) {
			order, err := New(q).Run(rel, 2, 2)
			require.NoError(t, err)

			assert.Equal(t, []Entry{
				{ID: 0, Predecessor: core.NoID, Reachability: inf, CoreDistance: 1},
				{ID: 1, Predecessor: 0, Reachability: 1, CoreDistance: 1},
				{ID: 2, Predecessor: core.NoID, Reachability: inf, CoreDistance: 1},
				{ID: 3, Predecessor: 2, Reachability: 1, CoreDistance: 1},
			}, order.Entries())

			assert.Equal(t, []float64{inf, 1, inf, 1}, order.Reachabilities())

			pred, ok := order.Predecessor(3)
			assert.True(t, ok)
			assert.Equal(t, core.ID(2), pred)
			_, ok = order.Predecessor(0)
			assert.False(t, ok)

			// Each pair is contiguous.
			pa, _ := order.Position(0)
			pb, _ := order.Position(1)
			pc, _ := order.Position(2)
			pd, _ := order.Position(3)
			assert.Equal(t, 1, abs(pa-pb))
			assert.Equal(t, 1, abs(pc-pd))
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestRun_NoRadius(t *testing.T) {
	rel := testutil.NewRNG(4711).UniformRelation(200, 3)

	for name, q := range engines(t, rel) {
		t.Run(name, func(t *testing.T) {
			order, err := New(q).Run(rel, math.Inf(1), 1)
			require.NoError(t, err)
			require.Equal(t, rel.Len(), order.Len())

			for i, e := range order.Entries() {
				assert.Equal(t, 0.0, e.CoreDistance, "every point is a core point")
				if i == 0 {
					assert.False(t, e.HasPredecessor())
					continue
				}
				assert.True(t, e.HasPredecessor(), "single expansion without radius")
			}
		})
	}
}

func TestRun_Properties(t *testing.T) {
	rng := testutil.NewRNG(1)
	rel := rng.ClusteredRelation(400, 2, 5, 0.3)

	orders := make(map[string]*ClusterOrder)
	for name, q := range engines(t, rel) {
		order, err := New(q).Run(rel, 1.5, 5)
		require.NoError(t, err)
		orders[name] = order

		require.Equal(t, rel.Len(), order.Len())
		seen := make(map[core.ID]bool)
		for _, e := range order.Entries() {
			assert.False(t, seen[e.ID], "id %d repeated", e.ID)
			seen[e.ID] = true

			if !e.HasPredecessor() {
				assert.True(t, math.IsInf(e.Reachability, 1))
				continue
			}
			pred, ok := order.Get(e.Predecessor)
			require.True(t, ok)
			assert.GreaterOrEqual(t, e.Reachability, pred.CoreDistance)

			pp, _ := order.Position(e.Predecessor)
			ep, _ := order.Position(e.ID)
			assert.Less(t, pp, ep, "predecessor precedes its successor")
		}
		for _, id := range rel.IDs() {
			assert.True(t, seen[id], "id %d missing", id)
		}
	}

	assert.Equal(t, orders["Linear"].Entries(), orders["Tree"].Entries())
}

func TestRun_Isolated(t *testing.T) {
	rel := abcd(t)
	order, err := New(knn.New(rel, distance.Euclidean{})).Run(rel, 0.5, 2)
	require.NoError(t, err)

	assert.Equal(t, []core.ID{0, 1, 2, 3}, order.IDs())
	for _, e := range order.Entries() {
		assert.True(t, math.IsInf(e.CoreDistance, 1))
		assert.True(t, math.IsInf(e.Reachability, 1))
	}
}

func TestRun_Errors(t *testing.T) {
	rel := abcd(t)
	e := New(knn.New(rel, distance.Euclidean{}))

	_, err := e.Run(rel, 1, 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	var ae *core.ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "minPts", ae.Name)

	_, err = e.Run(rel, -1, 2)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = e.Run(rel, math.NaN(), 2)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	boom := errors.New("boom")
	_, err = New(failing{boom}).Run(rel, 1, 1)
	assert.ErrorIs(t, err, boom)
}

type failing struct{ err error }

func (f failing) RangeByID(core.ID, float64) (knn.List, error) { return nil, f.err }

// stray returns a neighbor outside the iterated relation.
type stray struct{}

func (stray) RangeByID(id core.ID, _ float64) (knn.List, error) {
	return knn.List{{ID: id}, {ID: 99, Distance: 1}}, nil
}

func TestRun_ForeignNeighbor(t *testing.T) {
	_, err := New(stray{}).Run(relation.NewIDRange(0, 2), 1, 1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRun_Empty(t *testing.T) {
	rel := relation.NewVectors()
	order, err := New(knn.New(rel, distance.Euclidean{})).Run(rel, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, order.Len())
}

func TestRun_ProgressAndLogging(t *testing.T) {
	rel := abcd(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var calls []int
	_, err := New(knn.New(rel, distance.Euclidean{}),
		WithLogger(logger),
		WithProgress(func(processed, total int) {
			assert.Equal(t, 4, total)
			calls = append(calls, processed)
		}),
	).Run(rel, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, calls)
	assert.Contains(t, buf.String(), "optics progress")
	assert.Contains(t, buf.String(), "optics finished")
	assert.Contains(t, buf.String(), "expansions=2")
}

func TestClusterOrder(t *testing.T) {
	o := NewClusterOrder(0)
	require.NoError(t, o.Append(Entry{ID: 5, Predecessor: core.NoID, Reachability: math.Inf(1)}))
	require.NoError(t, o.Append(Entry{ID: 2, Predecessor: 5, Reachability: 0.5}))

	err := o.Append(Entry{ID: 5})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	assert.Equal(t, 2, o.Len())
	assert.Equal(t, core.ID(2), o.At(1).ID)
	assert.Equal(t, []core.ID{5, 2}, o.IDs())

	_, ok := o.Get(7)
	assert.False(t, ok)
	_, ok = o.Position(7)
	assert.False(t, ok)
}
