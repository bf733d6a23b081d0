package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSafeLayoutUnknownWidth(t *testing.T) {
	for _, w := range []int{0, -1, -200} {
		_, ok := ComputeSafeLayout(w, 44, 30, 24)
		assert.False(t, ok, "width %d must defer", w)
	}
}

func TestComputeSafeLayoutWideContainer(t *testing.T) {
	s, ok := ComputeSafeLayout(120, 44, 30, 24)
	require.True(t, ok)

	assert.Equal(t, SplitState{TotalWidth: 120, Offset: 44, LeftMin: 30, RightMin: 24}, s)
	assert.Equal(t, 44, s.LeftWidth())
	assert.Equal(t, 76, s.RightWidth())
}

func TestComputeSafeLayoutClampsDesiredOffset(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		desired int
		want    int
	}{
		{"desired beyond right minimum", 60, 44, 36},
		{"desired below left minimum", 120, 10, 30},
		{"negative desired", 120, -5, 30},
		{"exact fit", 54, 44, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ComputeSafeLayout(tt.total, tt.desired, 30, 24)
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Offset)
		})
	}
}

// For widths that fit both minimums the offset stays between them.
func TestComputeSafeLayoutOffsetBounds(t *testing.T) {
	leftMin, rightMin := 30, 24
	for total := leftMin + rightMin + 1; total <= 300; total++ {
		for _, desired := range []int{-10, 0, 15, 30, 44, 100, 400} {
			s, ok := ComputeSafeLayout(total, desired, leftMin, rightMin)
			require.True(t, ok)
			assert.Equal(t, leftMin, s.LeftMin)
			assert.Equal(t, rightMin, s.RightMin)
			assert.GreaterOrEqual(t, s.Offset, leftMin, "total=%d desired=%d", total, desired)
			assert.LessOrEqual(t, s.Offset, total-rightMin, "total=%d desired=%d", total, desired)
		}
	}
}

// For widths up to the left minimum the right minimum gives way first.
func TestComputeSafeLayoutShrinksRightMinimum(t *testing.T) {
	leftMin, rightMin := 30, 24
	for total := 1; total <= leftMin; total++ {
		s, ok := ComputeSafeLayout(total, 44, leftMin, rightMin)
		require.True(t, ok)
		assert.Equal(t, 0, s.RightMin, "total=%d", total)
		assert.LessOrEqual(t, s.LeftMin+s.RightMin, total)
		assert.GreaterOrEqual(t, s.Offset, s.LeftMin)
		assert.LessOrEqual(t, s.Offset, total-s.RightMin)
	}
}

func TestComputeSafeLayoutPartialFit(t *testing.T) {
	// 40 cells: left keeps 30, right shrinks to 10.
	s, ok := ComputeSafeLayout(40, 44, 30, 24)
	require.True(t, ok)
	assert.Equal(t, SplitState{TotalWidth: 40, Offset: 30, LeftMin: 30, RightMin: 10}, s)
}

func TestComputeSafeLayoutInvariants(t *testing.T) {
	for total := 1; total <= 120; total++ {
		for _, mins := range [][2]int{{0, 0}, {30, 24}, {100, 100}, {5, 80}} {
			s, ok := ComputeSafeLayout(total, 44, mins[0], mins[1])
			require.True(t, ok)
			assert.GreaterOrEqual(t, s.LeftMin, 0)
			assert.GreaterOrEqual(t, s.RightMin, 0)
			assert.LessOrEqual(t, s.LeftMin, s.Offset)
			assert.LessOrEqual(t, s.Offset, s.TotalWidth-s.RightMin)
			assert.LessOrEqual(t, s.LeftMin+s.RightMin, s.TotalWidth)
		}
	}
}

func TestSplitterDefersUntilWidthKnown(t *testing.T) {
	sp := NewSplitter(44, 30, 24)
	assert.True(t, sp.Pending())
	assert.False(t, sp.Ready())

	assert.False(t, sp.Resize(0))
	assert.True(t, sp.Pending(), "zero width keeps the request pending")

	assert.True(t, sp.Resize(100))
	assert.False(t, sp.Pending())
	assert.True(t, sp.Ready())
	assert.Equal(t, 44, sp.State().Offset)
}

func TestSplitterRecomputesOnWidthChange(t *testing.T) {
	sp := NewSplitter(44, 30, 24)
	require.True(t, sp.Resize(100))

	assert.False(t, sp.Resize(100), "same width is a no-op")
	assert.True(t, sp.Resize(60))
	assert.Equal(t, 36, sp.State().Offset)
	assert.False(t, sp.Resize(-1))
	assert.Equal(t, 60, sp.State().TotalWidth, "negative width keeps the last state")
}

func TestSplitterRequestForcesRecompute(t *testing.T) {
	sp := NewSplitter(44, 30, 24)
	require.True(t, sp.Resize(100))

	sp.Request()
	assert.True(t, sp.Pending())
	assert.True(t, sp.Resize(100), "pending request recomputes even at the same width")
	assert.False(t, sp.Pending())
}
