package numbering

// Counter tracks the running count of every level of every abstract
// definition for one pass over a document. Counters are keyed by abstract
// definition, so numbering instances sharing a definition share a stream.
//
// A Counter is not safe for concurrent use; its output depends only on the
// order of Advance calls.
type Counter struct {
	counts map[AbstractID]map[Level]int
}

// NewCounter returns a counter with every level at zero
func NewCounter() *Counter {
	return &Counter{counts: make(map[AbstractID]map[Level]int)}
}

// Advance increments level of the given definition, resets every deeper
// tracked level to zero and returns the values of levels 0 through level.
func (c *Counter) Advance(id AbstractID, level Level) Snapshot {
	if level < 0 {
		return Snapshot{}
	}

	levels, ok := c.counts[id]
	if !ok {
		levels = make(map[Level]int)
		c.counts[id] = levels
	}

	levels[level]++
	for l := range levels {
		if l > level {
			levels[l] = 0
		}
	}

	values := make([]int, level+1)
	for l := Level(0); l <= level; l++ {
		values[l] = levels[l]
	}
	return Snapshot{values: values}
}

// Snapshot is a read-only copy of the counter values visible to one
// paragraph: levels 0 through the paragraph's own level.
type Snapshot struct {
	values []int
}

// Value returns the count at level, or false when level lies outside the
// snapshot
func (s Snapshot) Value(level Level) (int, bool) {
	if level < 0 || int(level) >= len(s.values) {
		return 0, false
	}
	return s.values[level], true
}
