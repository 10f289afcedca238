package faunus

// Change describes what the current trial altered: which groups had
// which particle indices moved, and whether (and by how much) the
// geometry itself changed. The Hamiltonian reads a Change to compute an
// incremental energy instead of re-evaluating the whole system.
type Change struct {
	// Groups maps a group index to the particle indices within that
	// group that were altered. An empty (but present) slice for a group
	// means "the whole group moved together, evaluate it at group
	// granularity" (used by the rigid translate/rotate family).
	Groups map[int][]int

	GeometryChange bool
	DV             float64

	// Bias carries a non-Hamiltonian acceptance-probability correction
	// (e.g. the cluster move's recruitment-asymmetry factor) that the
	// move's own EnergyChange folds into the value it returns; it plays
	// no part in a Hamiltonian's own energy evaluation.
	Bias float64
}

// NewChange returns an empty Change ready for a move to populate.
func NewChange() *Change {
	return &Change{Groups: make(map[int][]int)}
}

// AddParticle registers that particle index idx within group groupIdx
// was altered by the current trial.
func (c *Change) AddParticle(groupIdx, idx int) {
	c.Groups[groupIdx] = append(c.Groups[groupIdx], idx)
}

// AddWholeGroup registers that every particle in group groupIdx moved
// together, without listing individual indices.
func (c *Change) AddWholeGroup(groupIdx int) {
	if _, ok := c.Groups[groupIdx]; !ok {
		c.Groups[groupIdx] = nil
	}
}

// Empty reports whether the Change carries no information, the state it
// must be in at every idle boundary between trials.
func (c *Change) Empty() bool {
	return len(c.Groups) == 0 && !c.GeometryChange && c.DV == 0 && c.Bias == 0
}

// Clear resets the Change to empty, ready for reuse on the next trial.
func (c *Change) Clear() {
	for k := range c.Groups {
		delete(c.Groups, k)
	}
	c.GeometryChange = false
	c.DV = 0
	c.Bias = 0
}
