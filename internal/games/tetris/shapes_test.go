package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeTable(t *testing.T) {
	for k := range Kind(KindCount) {
		s := ShapeOf(k)
		assert.Len(t, s.Cells(), 4, "kind %s should have four cells", k)
		assert.True(t, ColorOf(k).Valid(), "kind %s has invalid color", k)
	}

	assert.Equal(t, "####", ShapeOf(KindI).String())
	assert.Equal(t, ".#.\n###", ShapeOf(KindT).String())
	assert.Equal(t, Purple, ColorOf(KindT))
	assert.Equal(t, Red, ColorOf(KindZ))
}

func TestNewShapePanicsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		rows [][]uint8
	}{
		{"empty", nil},
		{"empty row", [][]uint8{{}}},
		{"ragged", [][]uint8{{1, 1}, {1}}},
		{"non-binary", [][]uint8{{1, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { NewShape(tc.rows) })
		})
	}
}

func TestShapeRowsIsACopy(t *testing.T) {
	s := ShapeOf(KindO)
	rows := s.Rows()
	rows[0][0] = 0

	assert.True(t, s.At(0, 0), "mutating Rows() must not touch the shape")
	assert.False(t, s.At(-1, 0))
	assert.False(t, s.At(0, 5))
}

func TestSpawnPoint(t *testing.T) {
	assert.Equal(t, Point{X: 4, Y: 0}, SpawnPoint(10))
	assert.Equal(t, Point{X: 3, Y: 0}, SpawnPoint(9))
}

func TestSpawnerCoversAllKinds(t *testing.T) {
	sp := NewSpawner(rand.New(rand.NewSource(42)), 10)
	seen := make(map[Kind]int)

	for range 10000 {
		p := sp.Spawn()
		require.Equal(t, 4, p.X)
		require.Equal(t, 0, p.Y)
		require.Equal(t, ColorOf(p.Kind), p.Color)
		require.True(t, p.Shape.Equal(ShapeOf(p.Kind)))
		seen[p.Kind]++
	}

	assert.Len(t, seen, KindCount)
	for k, n := range seen {
		// Uniform draws: ~1428 each, allow a wide margin.
		assert.Greater(t, n, 1000, "kind %s drawn only %d times", k, n)
	}
}

func TestSpawnerIsReproducible(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(7)), 10)
	b := NewSpawner(rand.New(rand.NewSource(7)), 10)

	for range 50 {
		assert.Equal(t, a.Spawn().Kind, b.Spawn().Kind)
	}
}
