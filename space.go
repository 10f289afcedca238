package faunus

// Space is the shared mutable state every move borrows: the committed
// and trial particle vectors, the group list, and the particle tracker.
// It is owned by the simulation session and passed by reference into
// every move call (spec.md §5: "a single Space collaborator").
type Space struct {
	Committed []Particle
	Trial     []Particle
	Groups    []*Group
	Tracker   *ParticleTracker
	Geometry  Geometry
}

// NewSpace builds a Space from an initial committed configuration,
// cloning it into Trial and building a fresh tracker.
func NewSpace(committed []Particle, groups []*Group, geom Geometry) *Space {
	trial := make([]Particle, len(committed))
	copy(trial, committed)
	return &Space{
		Committed: committed,
		Trial:     trial,
		Groups:    groups,
		Tracker:   NewParticleTracker(committed),
		Geometry:  geom,
	}
}

// Commit copies Trial into Committed and rebuilds the tracker, the
// terminal step of an accepted trial.
func (s *Space) Commit() {
	copy(s.Committed, s.Trial)
	for _, g := range s.Groups {
		if g.Molecular {
			g.CommittedCM = g.TrialCM
		}
	}
	s.Tracker.Rebuild(s.Committed)
}

// Reject copies Committed back into Trial, undoing whatever the rejected
// trial wrote.
func (s *Space) Reject() {
	copy(s.Trial, s.Committed)
	for _, g := range s.Groups {
		if g.Molecular {
			g.TrialCM = g.CommittedCM
		}
	}
}

// CheckInvariants validates the cross-cutting invariants spec.md §3/§8
// requires to hold at every quiescent point: equal lengths, elementwise
// equality of committed and trial, per-group mass-centre consistency,
// and tracker consistency.
func (s *Space) CheckInvariants() error {
	if len(s.Committed) != len(s.Trial) {
		return NewInvariantError("committed-trial-length", "committed and trial vectors have different lengths")
	}
	for i := range s.Committed {
		if s.Committed[i] != s.Trial[i] {
			return NewInvariantError("committed-trial-equality", "committed and trial differ at a quiescent point")
		}
	}
	for _, g := range s.Groups {
		if err := g.CheckCMConsistency(s.Committed); err != nil {
			return err
		}
	}
	return s.Tracker.ConsistentWith(s.Committed)
}

// GrowGroup appends n freshly-allocated particles to the end of both
// particle vectors and extends group g to cover them, the structural
// change a grand-canonical insertion performs.
func (s *Space) GrowGroup(g *Group, particles []Particle) {
	if g.Back != len(s.Trial) {
		panic("faunus: GrowGroup: group must be the last group in the particle vector")
	}
	s.Trial = append(s.Trial, particles...)
	s.Committed = append(s.Committed, particles...)
	g.Back += len(particles)
}

// ShrinkGroup removes the particles at the given indexes (which must all
// lie within g) from both particle vectors, compacting everything after
// them, the structural change a grand-canonical deletion performs.
func (s *Space) ShrinkGroup(g *Group, indexes []int) {
	remove := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if !g.Contains(idx) {
			panic("faunus: ShrinkGroup: index does not belong to the group")
		}
		remove[idx] = true
	}
	compact := func(particles []Particle) []Particle {
		out := particles[:0:0]
		for i, p := range particles {
			if !remove[i] {
				out = append(out, p)
			}
		}
		return out
	}
	s.Trial = compact(s.Trial)
	s.Committed = compact(s.Committed)
	for _, other := range s.Groups {
		if other == g {
			other.Back -= len(indexes)
			continue
		}
		if other.Front > g.Front {
			other.Front -= len(indexes)
			other.Back -= len(indexes)
		}
	}
	s.Tracker.Rebuild(s.Committed)
}
