package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorIndex_RejectsMixedDimensions(t *testing.T) {
	_, err := NewVectorIndex([][]float32{{1, 0}, {1, 0, 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestNewVectorIndex_RejectsEmptyVector(t *testing.T) {
	_, err := NewVectorIndex([][]float32{{}})
	require.Error(t, err)
}

func TestVectorIndex_SearchOrdersByDescendingScore(t *testing.T) {
	index, err := NewVectorIndex([][]float32{
		{0, 1},        // orthogonal to the query
		{1, 0},        // identical direction
		{0.6, 0.8},    // partial match
	})
	require.NoError(t, err)

	hits, err := index.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	assert.GreaterOrEqual(t, hits[1].Score, hits[2].Score)
}

func TestVectorIndex_TiesKeepCorpusOrder(t *testing.T) {
	// Three identical vectors score identically; corpus order must win.
	index, err := NewVectorIndex([][]float32{{1, 0}, {1, 0}, {1, 0}})
	require.NoError(t, err)

	hits, err := index.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Position, hits[1].Position, hits[2].Position})
}

func TestVectorIndex_KLargerThanCorpusReturnsAll(t *testing.T) {
	index, err := NewVectorIndex([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := index.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestVectorIndex_EmptyIndexReturnsNoHits(t *testing.T) {
	index, err := NewVectorIndex(nil)
	require.NoError(t, err)

	hits, err := index.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorIndex_NormalizesStoredAndQueryVectors(t *testing.T) {
	// (3,4) and (30,40) point the same way; after normalization the inner
	// product must be cosine similarity, i.e. 1.
	index, err := NewVectorIndex([][]float32{{3, 4}})
	require.NoError(t, err)

	hits, err := index.Search([]float32{30, 40}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, float64(hits[0].Score), 1e-6)
}

func TestVectorIndex_SearchIsIdempotent(t *testing.T) {
	index, err := NewVectorIndex([][]float32{{1, 0}, {0.9, 0.1}, {0, 1}})
	require.NoError(t, err)

	first, err := index.Search([]float32{0.7, 0.3}, 3)
	require.NoError(t, err)
	second, err := index.Search([]float32{0.7, 0.3}, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVectorIndex_QueryDimensionMismatch(t *testing.T) {
	index, err := NewVectorIndex([][]float32{{1, 0}})
	require.NoError(t, err)

	_, err = index.Search([]float32{1, 0, 0}, 1)
	require.Error(t, err)
}
