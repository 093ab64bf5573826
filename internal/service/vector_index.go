package service

import (
	"fmt"
	"math"
	"sort"
)

// VectorIndex is a flat inner-product index over L2-normalized embeddings.
// Position i always corresponds to corpus position i; the index is built
// once and read-only afterwards, so concurrent searches need no locking.
type VectorIndex struct {
	dimension int
	vectors   [][]float32
}

// NewVectorIndex normalizes and stores the given vectors in order. All
// vectors must share one dimension.
func NewVectorIndex(vectors [][]float32) (*VectorIndex, error) {
	index := &VectorIndex{}
	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, fmt.Errorf("vector %d is empty", i)
		}
		if index.dimension == 0 {
			index.dimension = len(vec)
		} else if len(vec) != index.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(vec), index.dimension)
		}
		index.vectors = append(index.vectors, normalizeL2(vec))
	}
	return index, nil
}

// Len returns the number of stored vectors.
func (ix *VectorIndex) Len() int {
	return len(ix.vectors)
}

// Dimension returns the vector dimension, 0 for an empty index.
func (ix *VectorIndex) Dimension() int {
	return ix.dimension
}

// Hit is one search result: a corpus position and its cosine similarity.
type Hit struct {
	Position int
	Score    float32
}

// Search returns up to k positions ordered by descending score, ties kept
// in corpus order. A query against an empty index returns no hits.
func (ix *VectorIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(ix.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), ix.dimension)
	}

	normalized := normalizeL2(query)
	hits := make([]Hit, 0, len(ix.vectors))
	for i, vec := range ix.vectors {
		hits = append(hits, Hit{Position: i, Score: innerProduct(normalized, vec)})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// normalizeL2 returns a unit-norm copy of v, so inner product equals cosine
// similarity. A zero vector is returned unchanged.
func normalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		copy(out, v)
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func innerProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
