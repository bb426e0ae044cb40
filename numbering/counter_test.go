package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func values(s Snapshot) []int {
	out := make([]int, len(s.values))
	for i := range out {
		out[i], _ = s.Value(Level(i))
	}
	return out
}

func TestAdvanceResetsDeeperLevels(t *testing.T) {
	c := NewCounter()

	steps := []struct {
		level Level
		want  []int
	}{
		{0, []int{1}},
		{1, []int{1, 1}},
		{1, []int{1, 2}},
		{2, []int{1, 2, 1}},
		{0, []int{2}},
		{1, []int{2, 1}},
		{2, []int{2, 1, 1}},
	}

	for i, step := range steps {
		assert.Equal(t, step.want, values(c.Advance(0, step.level)), "step %d", i)
	}
}

func TestAdvanceSkippedAncestorReadsZero(t *testing.T) {
	c := NewCounter()
	assert.Equal(t, []int{0, 0, 1}, values(c.Advance(4, 2)))
}

func TestAdvanceStreamsAreIndependentPerDefinition(t *testing.T) {
	c := NewCounter()

	assert.Equal(t, []int{1}, values(c.Advance(1, 0)))
	assert.Equal(t, []int{1}, values(c.Advance(2, 0)))
	assert.Equal(t, []int{2}, values(c.Advance(1, 0)))
	assert.Equal(t, []int{1, 1}, values(c.Advance(2, 1)))
	assert.Equal(t, []int{2, 1}, values(c.Advance(1, 1)))
}

func TestSnapshotIsImmutable(t *testing.T) {
	c := NewCounter()
	first := c.Advance(0, 1)
	c.Advance(0, 1)
	c.Advance(0, 0)

	v, ok := first.Value(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSnapshotValueOutOfRange(t *testing.T) {
	s := NewCounter().Advance(0, 1)

	_, ok := s.Value(2)
	assert.False(t, ok)
	_, ok = s.Value(-1)
	assert.False(t, ok)
}

func TestAdvanceNegativeLevel(t *testing.T) {
	s := NewCounter().Advance(0, -1)
	assert.Empty(t, s.values)
}
