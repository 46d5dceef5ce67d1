// Package spatialindex provides the per-zone double lookup between cells
// and the entity ids located in them: cell -> set of ids, and id -> its
// single cell. It backs Zone.entities and is consulted by movement,
// combat, and AI every time they need "who/what is at this cell".
package spatialindex

import "frontiersim/coords"

// Id is the stable identifier type indexed by a SpatialIndex. It is
// intentionally a plain integer rather than importing the stableid
// package, so spatialindex has no dependency on the entity layer.
type Id uint64

// SpatialIndex maps zone-local cells to the ids located there, and each id
// back to its single cell. The two directions are always kept consistent:
// inserting an id removes any prior cell it occupied.
type SpatialIndex struct {
	cellToIds map[coords.LogicalPosition]map[Id]struct{}
	idToCell  map[Id]coords.LogicalPosition
}

// New creates an empty spatial index.
func New() *SpatialIndex {
	return &SpatialIndex{
		cellToIds: make(map[coords.LogicalPosition]map[Id]struct{}),
		idToCell:  make(map[Id]coords.LogicalPosition),
	}
}

// Insert places id at (x,y), removing it from any previous cell first.
func (s *SpatialIndex) Insert(x, y int, id Id) {
	s.InsertPos(coords.LogicalPosition{X: x, Y: y}, id)
}

// InsertPos is Insert taking a LogicalPosition directly.
func (s *SpatialIndex) InsertPos(pos coords.LogicalPosition, id Id) {
	if prev, ok := s.idToCell[id]; ok {
		if prev == pos {
			return
		}
		s.removeFromCell(prev, id)
	}
	bucket, ok := s.cellToIds[pos]
	if !ok {
		bucket = make(map[Id]struct{})
		s.cellToIds[pos] = bucket
	}
	bucket[id] = struct{}{}
	s.idToCell[id] = pos
}

// Remove deletes id from the index entirely.
func (s *SpatialIndex) Remove(id Id) {
	pos, ok := s.idToCell[id]
	if !ok {
		return
	}
	s.removeFromCell(pos, id)
	delete(s.idToCell, id)
}

func (s *SpatialIndex) removeFromCell(pos coords.LogicalPosition, id Id) {
	bucket, ok := s.cellToIds[pos]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(s.cellToIds, pos)
	}
}

// At returns the ids located at (x,y). The returned slice is a snapshot;
// mutating the index afterwards does not affect it.
func (s *SpatialIndex) At(x, y int) []Id {
	return s.AtPos(coords.LogicalPosition{X: x, Y: y})
}

// AtPos is At taking a LogicalPosition directly.
func (s *SpatialIndex) AtPos(pos coords.LogicalPosition) []Id {
	bucket, ok := s.cellToIds[pos]
	if !ok {
		return nil
	}
	out := make([]Id, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is currently tracked by the index.
func (s *SpatialIndex) Contains(id Id) bool {
	_, ok := s.idToCell[id]
	return ok
}

// CellOf returns the cell id occupies, and whether it was found.
func (s *SpatialIndex) CellOf(id Id) (coords.LogicalPosition, bool) {
	pos, ok := s.idToCell[id]
	return pos, ok
}

// Len returns the number of distinct ids tracked.
func (s *SpatialIndex) Len() int {
	return len(s.idToCell)
}

// AllIDs returns every id currently tracked, in no particular order. Used
// by zone unload to enumerate everything hosted in a zone before
// despawning it.
func (s *SpatialIndex) AllIDs() []Id {
	out := make([]Id, 0, len(s.idToCell))
	for id := range s.idToCell {
		out = append(out, id)
	}
	return out
}

// Consistent reports whether every id reachable via cellToIds maps back to
// the same cell in idToCell, and vice versa. Exposed for invariant tests
// (spec property 2: spatial index consistency).
func (s *SpatialIndex) Consistent() bool {
	for pos, bucket := range s.cellToIds {
		for id := range bucket {
			if got, ok := s.idToCell[id]; !ok || got != pos {
				return false
			}
		}
	}
	for id, pos := range s.idToCell {
		bucket, ok := s.cellToIds[pos]
		if !ok {
			return false
		}
		if _, ok := bucket[id]; !ok {
			return false
		}
	}
	return true
}
