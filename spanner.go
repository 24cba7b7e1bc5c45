package inkscore

// SpannerKind distinguishes the spanner variants.
type SpannerKind int

const (
	SlurSpanner SpannerKind = iota
	TieSpanner
)

type (
	// Spanner is a score element connecting two notes over a time range: a
	// slur or a tie. Spanners live in their own collection and reference
	// notes only by id, so they can be edited independently of the notes
	// they connect and a note lookup never walks them.
	Spanner struct {
		ID        EntityID
		Kind      SpannerKind
		StartNote EntityID
		EndNote   EntityID
		Range     TimeRange
	}

	// Spanners is the score's spanner collection, ordered by creation.
	Spanners struct {
		List []Spanner
	}
)

// Copy makes a deep copy of the collection.
func (s Spanners) Copy() Spanners {
	return Spanners{List: append([]Spanner(nil), s.List...)}
}

// Find returns the spanner with the given id, or nil.
func (s Spanners) Find(id EntityID) *Spanner {
	for i := range s.List {
		if s.List[i].ID == id {
			return &s.List[i]
		}
	}
	return nil
}

// Referencing returns every spanner that references the given note id as
// either endpoint.
func (s Spanners) Referencing(noteID EntityID) []Spanner {
	var ret []Spanner
	for _, sp := range s.List {
		if sp.StartNote == noteID || sp.EndNote == noteID {
			ret = append(ret, sp)
		}
	}
	return ret
}

// Add appends a spanner to the collection.
func (s *Spanners) Add(sp Spanner) {
	s.List = append(s.List, sp)
}

// Remove deletes the spanner with the given id, reporting whether it was
// present.
func (s *Spanners) Remove(id EntityID) bool {
	for i := range s.List {
		if s.List[i].ID == id {
			s.List = append(s.List[:i], s.List[i+1:]...)
			return true
		}
	}
	return false
}
