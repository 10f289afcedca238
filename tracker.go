package faunus

import "strconv"

// ParticleTracker is a dense index keyed by atom-type id, listing the
// current positions in the particle vector where particles of that id
// reside. Grand-canonical moves use it to sample a random particle of a
// given type in O(1) instead of scanning the whole particle vector.
type ParticleTracker struct {
	byType map[int][]int
}

// NewParticleTracker builds a tracker from the given committed particle
// slice, the state it must be rebuilt from whenever particle identities
// or the committed vector's length change (insertion, deletion, or a
// titration swap).
func NewParticleTracker(committed []Particle) *ParticleTracker {
	t := &ParticleTracker{byType: make(map[int][]int)}
	t.Rebuild(committed)
	return t
}

// Rebuild discards the current index and recomputes it from committed.
func (t *ParticleTracker) Rebuild(committed []Particle) {
	for k := range t.byType {
		delete(t.byType, k)
	}
	for i, p := range committed {
		t.byType[p.TypeID] = append(t.byType[p.TypeID], i)
	}
}

// Count returns the number of particles currently tracked under typeID.
func (t *ParticleTracker) Count(typeID int) int { return len(t.byType[typeID]) }

// Indexes returns the particle indices currently tracked under typeID.
// The returned slice must not be mutated by the caller.
func (t *ParticleTracker) Indexes(typeID int) []int { return t.byType[typeID] }

// Add records that particle index idx now holds type typeID.
func (t *ParticleTracker) Add(typeID, idx int) {
	t.byType[typeID] = append(t.byType[typeID], idx)
}

// Remove deletes particle index idx from the typeID bucket. It is a
// no-op if idx is not present.
func (t *ParticleTracker) Remove(typeID, idx int) {
	bucket := t.byType[typeID]
	for i, v := range bucket {
		if v == idx {
			t.byType[typeID] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Move updates the tracker when particle idx changes type from oldType
// to newType, the bookkeeping a titration swap performs on commit.
func (t *ParticleTracker) Move(oldType, newType, idx int) {
	t.Remove(oldType, idx)
	t.Add(newType, idx)
}

// ConsistentWith reports an *InvariantError if the tracker disagrees with
// committed: every index under typeID must have committed[i].TypeID ==
// typeID, and every particle must appear exactly once under its own type.
func (t *ParticleTracker) ConsistentWith(committed []Particle) error {
	seen := make([]bool, len(committed))
	for typeID, bucket := range t.byType {
		for _, idx := range bucket {
			if idx < 0 || idx >= len(committed) {
				return NewInvariantError("tracker-consistency", "index out of range")
			}
			if committed[idx].TypeID != typeID {
				return NewInvariantError("tracker-consistency", "type mismatch at a tracked index")
			}
			if seen[idx] {
				return NewInvariantError("tracker-consistency", "index tracked more than once")
			}
			seen[idx] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return NewInvariantError("tracker-consistency", "untracked particle at index "+strconv.Itoa(i))
		}
	}
	return nil
}
