package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for k := range Kind(KindCount) {
		s := ShapeOf(k)
		r := Rotate(Rotate(Rotate(Rotate(s))))
		assert.True(t, r.Equal(s), "kind %s: four turns gave\n%s", k, r)
	}
}

func TestRotateGeometry(t *testing.T) {
	tests := []struct {
		name     string
		in       Shape
		expected string
	}{
		{
			name:     "I becomes vertical",
			in:       ShapeOf(KindI),
			expected: "#\n#\n#\n#",
		},
		{
			name:     "J transposed then reversed",
			in:       ShapeOf(KindJ),
			expected: ".#\n.#\n##",
		},
		{
			name:     "T points left",
			in:       ShapeOf(KindT),
			expected: ".#\n##\n.#",
		},
		{
			name:     "O unchanged",
			in:       ShapeOf(KindO),
			expected: "##\n##",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Rotate(tc.in).String())
		})
	}
}

func TestRotateSwapsDimensions(t *testing.T) {
	s := ShapeOf(KindL)
	r := Rotate(s)

	assert.Equal(t, s.Height(), r.Width())
	assert.Equal(t, s.Width(), r.Height())
	assert.Equal(t, "..#\n###", s.String(), "input must not be modified")
}

func TestRotateNThreeTimesUndoesOne(t *testing.T) {
	for k := range Kind(KindCount) {
		s := ShapeOf(k)
		assert.True(t, RotateN(Rotate(s), 3).Equal(s), "kind %s", k)
		assert.True(t, RotateN(s, -1).Equal(RotateN(s, 3)), "kind %s", k)
		assert.True(t, RotateN(s, 0).Equal(s), "kind %s", k)
	}
}
