package kdgo

import (
	"context"
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kdgo/core"
	"github.com/hupe1980/kdgo/geo"
	"github.com/hupe1980/kdgo/util"
)

func testIndex(t *testing.T, optFns ...Option) *Index[string] {
	t.Helper()

	idx, err := New([]PointWithData[string]{
		{Point: geo.Point{X: 0, Y: 0}, Data: "origin"},
		{Point: geo.Point{X: 1, Y: 1}, Data: "one"},
		{Point: geo.Point{X: 2, Y: 2}, Data: "two"},
		{Point: geo.Point{X: 5, Y: 5}, Data: "five"},
		{Point: geo.Point{X: 0, Y: 5}, Data: "corner"},
	}, optFns...)
	require.NoError(t, err)

	return idx
}

func TestIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("BuildAndRetrieve", func(t *testing.T) {
		idx := testIndex(t)

		assert.Equal(t, 5, idx.Len())

		data, err := idx.Get(core.PointID(3))
		require.NoError(t, err)
		assert.Equal(t, "five", data)

		_, err = idx.Get(core.PointID(99))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("KNNSearch", func(t *testing.T) {
		idx := testIndex(t)

		results, err := idx.KNNSearch(ctx, geo.Point{X: 1, Y: 0}, 2)
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, geo.Point{X: 0, Y: 0}, results[0].Point)
		assert.Equal(t, "origin", results[0].Data)
		assert.Equal(t, 1.0, results[0].Distance)
		assert.Equal(t, geo.Point{X: 1, Y: 1}, results[1].Point)
		assert.Equal(t, "one", results[1].Data)
		assert.Equal(t, 2.0, results[1].Distance)
	})

	t.Run("KNNSearchInvalidK", func(t *testing.T) {
		idx := testIndex(t)

		_, err := idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("NearestNeighbor", func(t *testing.T) {
		idx := testIndex(t)

		best, err := idx.NearestNeighbor(ctx, geo.Point{X: 4.6, Y: 4.8})
		require.NoError(t, err)
		assert.Equal(t, "five", best.Data)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		idx, err := New[string](nil)
		require.NoError(t, err)

		results, err := idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, 3)
		require.NoError(t, err)
		assert.Empty(t, results)

		_, err = idx.NearestNeighbor(ctx, geo.Point{X: 0, Y: 0})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("RejectsNonFinite", func(t *testing.T) {
		_, err := NewFromPoints([]geo.Point{{X: 0, Y: 0}, {X: math.Inf(1), Y: 0}})
		require.Error(t, err)

		var nf *ErrNonFiniteCoordinate
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, 1, nf.Index)
	})

	t.Run("FilterFunc", func(t *testing.T) {
		idx := testIndex(t)

		results, err := idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, 5, func(o *KNNSearchOptions) {
			o.FilterFunc = func(id core.PointID) bool { return id != 0 }
		})
		require.NoError(t, err)

		require.Len(t, results, 4)
		for _, r := range results {
			assert.NotEqual(t, core.PointID(0), r.ID)
		}
	})

	t.Run("AllowListBitmap", func(t *testing.T) {
		idx := testIndex(t)

		bm := roaring.BitmapOf(2, 3)
		results, err := idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, 5, func(o *KNNSearchOptions) {
			o.AllowList = bm
		})
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "two", results[0].Data)
		assert.Equal(t, "five", results[1].Data)
	})

	t.Run("Stats", func(t *testing.T) {
		idx := testIndex(t)

		stats := idx.Stats()
		assert.Equal(t, 5, stats.Size)
		assert.Equal(t, geo.Rect{MinX: 0, MaxX: 5, MinY: 0, MaxY: 5}, stats.Bounds)
	})
}

func TestBatchKNNSearch(t *testing.T) {
	ctx := context.Background()

	rng := util.NewRNG(321)
	bounds := geo.Rect{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	idx, err := NewFromPoints(rng.GenerateRandomPoints(256, bounds))
	require.NoError(t, err)

	queries := rng.GenerateRandomPoints(32, bounds)
	batched, err := idx.BatchKNNSearch(ctx, queries, 3)
	require.NoError(t, err)

	require.Len(t, batched, len(queries))
	for i, q := range queries {
		single, err := idx.KNNSearch(ctx, q, 3)
		require.NoError(t, err)
		assert.Equal(t, single, batched[i])
	}
}

func TestFluentSearch(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)

	t.Run("Execute", func(t *testing.T) {
		results, err := idx.Search(geo.Point{X: 1, Y: 0}).KNN(2).Execute(ctx)
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "origin", results[0].Data)
		assert.Equal(t, "one", results[1].Data)
	})

	t.Run("First", func(t *testing.T) {
		best, err := idx.Search(geo.Point{X: 0, Y: 4.5}).First(ctx)
		require.NoError(t, err)
		assert.Equal(t, "corner", best.Data)
	})

	t.Run("FirstNotFound", func(t *testing.T) {
		empty, err := New[string](nil)
		require.NoError(t, err)

		_, err = empty.Search(geo.Point{X: 0, Y: 0}).First(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CountAndExists", func(t *testing.T) {
		count, err := idx.Search(geo.Point{X: 0, Y: 0}).
			KNN(10).
			WithinBitmap(roaring.BitmapOf(1, 4)).
			Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		exists, err := idx.Search(geo.Point{X: 0, Y: 0}).
			WithinBitmap(roaring.New()).
			Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("VisitLog", func(t *testing.T) {
		var visited []geo.Point
		_, err := idx.Search(geo.Point{X: 1, Y: 0}).KNN(1).VisitLog(&visited).Execute(ctx)
		require.NoError(t, err)

		assert.NotEmpty(t, visited)
		assert.LessOrEqual(t, len(visited), idx.Len())
	})
}

func TestMetricsAndLogging(t *testing.T) {
	ctx := context.Background()

	metrics := &BasicMetricsCollector{}
	idx := testIndex(t, WithMetricsCollector(metrics), WithLogger(NoopLogger()))

	_, err := idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, 2)
	require.NoError(t, err)
	_, err = idx.KNNSearch(ctx, geo.Point{X: 0, Y: 0}, -1)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(0), stats.BuildErrors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
}
