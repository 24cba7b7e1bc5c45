package inkscore

import (
	"fmt"
	"sort"
)

type (
	// elementRef locates an element without storing slice indexes, so it
	// stays valid when measures are reindexed: the owning measure id, the
	// segment tick and the voice are enough to find the element again.
	elementRef struct {
		Measure EntityID
		Tick    TickPosition
		Voice   int
	}

	// MutableScore is the working copy the command system mutates. It owns a
	// deep copy of the source score plus id indexes over measures and
	// elements, so entity-level edits cost O(1) amortized relative to the
	// measure they touch instead of re-scanning the whole score. Consumers
	// other than the command system never see a MutableScore; they get the
	// immutable snapshot from Materialize.
	MutableScore struct {
		score     Score
		measures  map[EntityID]int        // measure id -> index
		elements  map[EntityID]elementRef // element id -> location
		touched   map[EntityID]struct{}   // measure ids edited since last TakeTouched
		allDirty  bool                    // set by structural edits that reflow everything
	}
)

// NewMutableScore builds a working copy of the score.
func NewMutableScore(s Score) *MutableScore {
	ms := &MutableScore{
		score:   s.Copy(),
		touched: make(map[EntityID]struct{}),
	}
	ms.reindex()
	return ms
}

func (ms *MutableScore) reindex() {
	ms.measures = make(map[EntityID]int, len(ms.score.Measures))
	ms.elements = make(map[EntityID]elementRef)
	for mi := range ms.score.Measures {
		m := &ms.score.Measures[mi]
		ms.measures[m.ID] = mi
		for si := range m.Segments {
			seg := &m.Segments[si]
			for voice, slice := range seg.Voices {
				for _, e := range slice.Elements {
					ms.elements[e.Base().ID] = elementRef{Measure: m.ID, Tick: seg.Tick, Voice: voice}
				}
			}
		}
	}
}

// Materialize publishes a new immutable Score snapshot of the working copy.
func (ms *MutableScore) Materialize() Score {
	return ms.score.Copy()
}

// TakeTouched returns the ids of the measures edited since the last call and
// resets the set. A true second value means a structural edit moved measure
// boundaries and everything should be considered dirty.
func (ms *MutableScore) TakeTouched() ([]EntityID, bool) {
	ids := make([]EntityID, 0, len(ms.touched))
	for id := range ms.touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	all := ms.allDirty
	ms.touched = make(map[EntityID]struct{})
	ms.allDirty = false
	return ids, all
}

func (ms *MutableScore) touch(measureID EntityID) {
	ms.touched[measureID] = struct{}{}
}

// measure resolves a measure id to its index and pointer.
func (ms *MutableScore) measure(id EntityID) (int, *Measure, error) {
	mi, ok := ms.measures[id]
	if !ok {
		return 0, nil, fmt.Errorf("measure %s: %w", id, ErrUnknownEntity)
	}
	return mi, &ms.score.Measures[mi], nil
}

// element resolves an element id to its containing measure, segment index
// and position within the voice slice.
func (ms *MutableScore) element(id EntityID) (*Measure, int, elementRef, int, error) {
	ref, ok := ms.elements[id]
	if !ok {
		return nil, 0, elementRef{}, 0, fmt.Errorf("element %s: %w", id, ErrUnknownEntity)
	}
	_, m, err := ms.measure(ref.Measure)
	if err != nil {
		return nil, 0, elementRef{}, 0, err
	}
	si := m.SegmentAt(ref.Tick)
	if si < 0 {
		return nil, 0, elementRef{}, 0, fmt.Errorf("element %s: segment gone: %w", id, ErrUnknownEntity)
	}
	for ei, e := range m.Segments[si].Voices[ref.Voice].Elements {
		if e.Base().ID == id {
			return m, si, ref, ei, nil
		}
	}
	return nil, 0, elementRef{}, 0, fmt.Errorf("element %s: %w", id, ErrUnknownEntity)
}

// Note returns the note with the given id from the working copy.
func (ms *MutableScore) Note(id EntityID) (*Note, error) {
	m, si, ref, ei, err := ms.element(id)
	if err != nil {
		return nil, err
	}
	n, ok := m.Segments[si].Voices[ref.Voice].Elements[ei].(*Note)
	if !ok {
		return nil, fmt.Errorf("element %s is not a note: %w", id, ErrUnknownEntity)
	}
	return n, nil
}

// Element returns any element by id.
func (ms *MutableScore) Element(id EntityID) (Element, error) {
	m, si, ref, ei, err := ms.element(id)
	if err != nil {
		return nil, err
	}
	return m.Segments[si].Voices[ref.Voice].Elements[ei], nil
}

// Spanner returns the spanner with the given id.
func (ms *MutableScore) Spanner(id EntityID) (*Spanner, error) {
	sp := ms.score.Spanners.Find(id)
	if sp == nil {
		return nil, fmt.Errorf("spanner %s: %w", id, ErrUnknownEntity)
	}
	return sp, nil
}

// AddPart appends a part. Creation operations take the id from the caller so
// that re-applying a command after undo/redo recreates the entity under the
// same id; ids referenced by later commands stay valid.
func (ms *MutableScore) AddPart(id EntityID, name string, staves, program int) error {
	if staves < 1 {
		return fmt.Errorf("part needs at least one staff: %w", ErrInvalidPosition)
	}
	ms.score.Parts = append(ms.score.Parts, Part{ID: id, Name: name, Staves: staves, Program: program})
	return nil
}

// RemovePart removes a part by id, returning the removed payload and its
// index for exact restoration.
func (ms *MutableScore) RemovePart(id EntityID) (Part, int, error) {
	for i, p := range ms.score.Parts {
		if p.ID == id {
			ms.score.Parts = append(ms.score.Parts[:i], ms.score.Parts[i+1:]...)
			return p, i, nil
		}
	}
	return Part{}, 0, fmt.Errorf("part %s: %w", id, ErrUnknownEntity)
}

// InsertPart restores a removed part at its prior index.
func (ms *MutableScore) InsertPart(p Part, index int) error {
	if index < 0 || index > len(ms.score.Parts) {
		return fmt.Errorf("part index %d: %w", index, ErrInvalidPosition)
	}
	ms.score.Parts = append(ms.score.Parts, Part{})
	copy(ms.score.Parts[index+1:], ms.score.Parts[index:])
	ms.score.Parts[index] = p
	return nil
}

// AppendMeasure adds a measure at the end of the score. Signature overrides
// may be nil, meaning "unchanged from previous measure".
func (ms *MutableScore) AppendMeasure(id EntityID, duration TickDuration, time *TimeSignature, key *KeySignature, clef *Clef) error {
	if duration <= 0 {
		return fmt.Errorf("measure duration %d: %w", duration, ErrInvalidPosition)
	}
	if _, exists := ms.measures[id]; exists {
		return fmt.Errorf("measure %s already present: %w", id, ErrConflict)
	}
	m := Measure{
		ID:        id,
		StartTick: ms.score.EndTick(),
		Duration:  duration,
		Time:      time,
		Key:       key,
		Clef:      clef,
	}
	ms.score.Measures = append(ms.score.Measures, m)
	ms.measures[m.ID] = len(ms.score.Measures) - 1
	ms.touch(m.ID)
	return nil
}

// RemoveMeasure removes a measure, shifting every later measure earlier to
// keep the timeline contiguous. Returns the removed measure (with content)
// and every spanner that referenced a note inside it, both captured for
// revert, plus the measure's index.
func (ms *MutableScore) RemoveMeasure(id EntityID) (Measure, []Spanner, int, error) {
	mi, m, err := ms.measure(id)
	if err != nil {
		return Measure{}, nil, 0, err
	}
	removed := m.Copy()
	var danglingSpanners []Spanner
	for _, seg := range m.Segments {
		for _, slice := range seg.Voices {
			for _, e := range slice.Elements {
				delete(ms.elements, e.Base().ID)
				for _, sp := range ms.score.Spanners.Referencing(e.Base().ID) {
					if ms.score.Spanners.Remove(sp.ID) {
						danglingSpanners = append(danglingSpanners, sp)
						ms.clearTieRefs(sp)
					}
				}
			}
		}
	}
	delta := -TickPosition(m.Duration)
	ms.score.Measures = append(ms.score.Measures[:mi], ms.score.Measures[mi+1:]...)
	ms.shiftFrom(mi, delta)
	ms.reindex()
	ms.allDirty = true
	return removed, danglingSpanners, mi, nil
}

// InsertMeasure restores a previously removed measure at the given index,
// shifting later measures to make room. Used by revert paths; the measure
// keeps its original id and content.
func (ms *MutableScore) InsertMeasure(m Measure, index int) error {
	if index < 0 || index > len(ms.score.Measures) {
		return fmt.Errorf("measure index %d: %w", index, ErrInvalidPosition)
	}
	ms.score.Measures = append(ms.score.Measures, Measure{})
	copy(ms.score.Measures[index+1:], ms.score.Measures[index:])
	ms.score.Measures[index] = m.Copy()
	ms.shiftFrom(index+1, TickPosition(m.Duration))
	ms.reindex()
	ms.allDirty = true
	return nil
}

// shiftFrom moves every measure from the given index onwards by delta ticks,
// dragging segment ticks and spanner ranges along.
func (ms *MutableScore) shiftFrom(index int, delta TickPosition) {
	if delta == 0 || index >= len(ms.score.Measures) {
		return
	}
	boundary := ms.score.Measures[index].StartTick
	for mi := index; mi < len(ms.score.Measures); mi++ {
		m := &ms.score.Measures[mi]
		m.StartTick += delta
		for si := range m.Segments {
			m.Segments[si].Tick += delta
		}
	}
	// endpoints shift independently: a spanner straddling the boundary keeps
	// its start and follows its end note
	for i := range ms.score.Spanners.List {
		sp := &ms.score.Spanners.List[i]
		if sp.Range.Start >= boundary {
			sp.Range.Start += delta
		}
		if sp.Range.End >= boundary {
			sp.Range.End += delta
		}
	}
}

// segmentFor finds the segment at the tick, inserting a new one in tick
// order if none exists yet. Returns the segment index.
func (ms *MutableScore) segmentFor(m *Measure, tick TickPosition) int {
	lo, hi := 0, len(m.Segments)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.Segments[mid].Tick < tick {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.Segments) && m.Segments[lo].Tick == tick {
		return lo
	}
	m.Segments = append(m.Segments, Segment{})
	copy(m.Segments[lo+1:], m.Segments[lo:])
	m.Segments[lo] = Segment{Tick: tick, Voices: make(map[int]VoiceSlice)}
	return lo
}

// checkVoiceFree verifies that [tick, tick+dur) does not overlap any element
// already in the voice within the measure. Zero-duration elements (grace
// groups) never conflict.
func (ms *MutableScore) checkVoiceFree(m *Measure, voice int, tick TickPosition, dur TickDuration) error {
	if dur == 0 {
		return nil
	}
	newRange := TimeRange{Start: tick, End: tick + TickPosition(dur)}
	for _, seg := range m.Segments {
		slice, ok := seg.Voices[voice]
		if !ok {
			continue
		}
		for _, e := range slice.Elements {
			var ticks TickDuration
			switch el := e.(type) {
			case *Note:
				ticks = el.Ticks
			case *Chord:
				ticks = el.Ticks
			case *Rest:
				ticks = el.Ticks
			default:
				continue
			}
			if ticks == 0 {
				continue
			}
			r := TimeRange{Start: seg.Tick, End: seg.Tick + TickPosition(ticks)}
			if r.Overlaps(newRange) {
				return fmt.Errorf("voice %d already occupied at tick %d: %w", voice, tick, ErrConflict)
			}
		}
	}
	return nil
}

func (ms *MutableScore) validatePlacement(m *Measure, voice, staff int, tick TickPosition) error {
	if voice < 1 || voice > 4 {
		return fmt.Errorf("voice %d out of range [1,4]: %w", voice, ErrInvalidPosition)
	}
	if staff < 0 || staff >= ms.score.NumStaves() {
		return fmt.Errorf("staff %d out of range: %w", staff, ErrInvalidPosition)
	}
	if !m.Range().Contains(tick) {
		return fmt.Errorf("tick %d outside measure [%d,%d): %w", tick, m.StartTick, m.EndTick(), ErrInvalidPosition)
	}
	return nil
}

// InsertElement places a fully built element into a measure at a tick. The
// element keeps its id; this is the shared lower half of the add operations
// and the re-insertion path every remove revert uses.
func (ms *MutableScore) InsertElement(measureID EntityID, voice int, tick TickPosition, e Element) error {
	_, m, err := ms.measure(measureID)
	if err != nil {
		return err
	}
	base := e.Base()
	if err := ms.validatePlacement(m, voice, base.Staff, tick); err != nil {
		return err
	}
	if _, exists := ms.elements[base.ID]; exists {
		return fmt.Errorf("element %s already present: %w", base.ID, ErrConflict)
	}
	var dur TickDuration
	switch el := e.(type) {
	case *Note:
		dur = el.Ticks
	case *Chord:
		dur = el.Ticks
	case *Rest:
		dur = el.Ticks
	}
	if err := ms.checkVoiceFree(m, voice, tick, dur); err != nil {
		return err
	}
	si := ms.segmentFor(m, tick)
	slice := m.Segments[si].Voices[voice]
	slice.Elements = append(slice.Elements, e)
	m.Segments[si].Voices[voice] = slice
	ms.elements[base.ID] = elementRef{Measure: measureID, Tick: tick, Voice: voice}
	ms.touch(measureID)
	return nil
}

// AddNote creates a note under the given id and places it. The playback
// pitch defaults to the notated pitch's equal-tempered rendering when pb is
// nil.
func (ms *MutableScore) AddNote(id, measureID EntityID, voice, staff int, tick TickPosition, pitch NotatedPitch, pb *PlaybackPitch, written WrittenDuration, velocity int) error {
	playback := pitch.Pitch.Playback()
	if pb != nil {
		playback = *pb
	}
	if !playback.Agrees(pitch.Pitch) {
		return fmt.Errorf("playback pitch %d disagrees with %s: %w", playback.MIDIPitch, pitch.Pitch, ErrConflict)
	}
	if velocity == 0 {
		velocity = DefaultVelocity
	}
	if velocity < 1 || velocity > 127 {
		return fmt.Errorf("velocity %d out of range [1,127]: %w", velocity, ErrInvalidPosition)
	}
	n := &Note{
		ElementBase: ElementBase{ID: id, Voice: voice, Staff: staff},
		Pitch:       pitch,
		Playback:    playback,
		Written:     written,
		Ticks:       written.Ticks(),
		Velocity:    velocity,
	}
	return ms.InsertElement(measureID, voice, tick, n)
}

// AddChord creates a chord from one or more notated pitches sharing a
// duration.
func (ms *MutableScore) AddChord(id, measureID EntityID, voice, staff int, tick TickPosition, pitches []NotatedPitch, written WrittenDuration, velocity int) error {
	if len(pitches) == 0 {
		return fmt.Errorf("chord needs at least one pitch: %w", ErrInvalidPosition)
	}
	if velocity == 0 {
		velocity = DefaultVelocity
	}
	if velocity < 1 || velocity > 127 {
		return fmt.Errorf("velocity %d out of range [1,127]: %w", velocity, ErrInvalidPosition)
	}
	playback := make([]PlaybackPitch, len(pitches))
	for i, p := range pitches {
		playback[i] = p.Pitch.Playback()
	}
	c := &Chord{
		ElementBase: ElementBase{ID: id, Voice: voice, Staff: staff},
		Pitches:     append([]NotatedPitch(nil), pitches...),
		Playback:    playback,
		Written:     written,
		Ticks:       written.Ticks(),
		Velocity:    velocity,
	}
	return ms.InsertElement(measureID, voice, tick, c)
}

// AddRest creates a rest. A measure rest takes the full measure's length
// regardless of its written value.
func (ms *MutableScore) AddRest(id, measureID EntityID, voice, staff int, tick TickPosition, written WrittenDuration, measureRest bool) error {
	r := &Rest{
		ElementBase: ElementBase{ID: id, Voice: voice, Staff: staff},
		Written:     written,
		Ticks:       written.Ticks(),
		MeasureRest: measureRest,
	}
	if measureRest {
		_, m, err := ms.measure(measureID)
		if err != nil {
			return err
		}
		r.Ticks = m.Duration
	}
	return ms.InsertElement(measureID, voice, tick, r)
}

// AddGraceGroup attaches an ordered run of zero-tick grace notes to a
// principal note. The group is placed in the principal's segment. The
// caller supplies one id per grace note alongside the group's own.
func (ms *MutableScore) AddGraceGroup(id, principalID EntityID, kind GraceKind, pitches []NotatedPitch, noteIDs []EntityID) error {
	if len(pitches) == 0 {
		return fmt.Errorf("grace group needs at least one note: %w", ErrInvalidPosition)
	}
	if len(noteIDs) != len(pitches) {
		return fmt.Errorf("%d note ids for %d pitches: %w", len(noteIDs), len(pitches), ErrInvalidPosition)
	}
	principal, err := ms.Note(principalID)
	if err != nil {
		return err
	}
	ref := ms.elements[principalID]
	notes := make([]Note, len(pitches))
	for i, p := range pitches {
		notes[i] = Note{
			ElementBase: ElementBase{ID: noteIDs[i], Voice: principal.Voice, Staff: principal.Staff},
			Pitch:       p,
			Playback:    p.Pitch.Playback(),
			Written:     WrittenDuration{Base: Eighth},
			Velocity:    principal.Velocity,
		}
	}
	g := &GraceGroup{
		ElementBase: ElementBase{ID: id, Voice: principal.Voice, Staff: principal.Staff},
		Kind:        kind,
		Notes:       notes,
		Principal:   principalID,
	}
	return ms.InsertElement(ref.Measure, ref.Voice, ref.Tick, g)
}

// RemovedElement is the capture of a removed element: everything needed to
// restore it exactly, including the spanners that referenced it and were
// pruned along with it.
type RemovedElement struct {
	Element  Element
	Measure  EntityID
	Voice    int
	Tick     TickPosition
	Spanners []Spanner
}

// RemoveElement deletes an element, pruning spanners that reference it.
// A removed note's tie partners get their dangling endpoint references
// cleared; the capture restores them on re-insertion.
func (ms *MutableScore) RemoveElement(id EntityID) (RemovedElement, error) {
	m, si, ref, ei, err := ms.element(id)
	if err != nil {
		return RemovedElement{}, err
	}
	e := m.Segments[si].Voices[ref.Voice].Elements[ei]
	capture := RemovedElement{
		Element: e.CopyElement(),
		Measure: ref.Measure,
		Voice:   ref.Voice,
		Tick:    ref.Tick,
	}
	for _, sp := range ms.score.Spanners.Referencing(id) {
		if ms.score.Spanners.Remove(sp.ID) {
			capture.Spanners = append(capture.Spanners, sp)
			ms.clearTieRefs(sp)
		}
	}
	slice := m.Segments[si].Voices[ref.Voice]
	slice.Elements = append(slice.Elements[:ei], slice.Elements[ei+1:]...)
	if len(slice.Elements) == 0 {
		delete(m.Segments[si].Voices, ref.Voice)
	} else {
		m.Segments[si].Voices[ref.Voice] = slice
	}
	if len(m.Segments[si].Voices) == 0 {
		m.Segments = append(m.Segments[:si], m.Segments[si+1:]...)
	}
	delete(ms.elements, id)
	ms.touch(ref.Measure)
	return capture, nil
}

// RestoreElement re-inserts a removed element capture, including its pruned
// spanners and tie references.
func (ms *MutableScore) RestoreElement(capture RemovedElement) error {
	if err := ms.InsertElement(capture.Measure, capture.Voice, capture.Tick, capture.Element.CopyElement()); err != nil {
		return err
	}
	for _, sp := range capture.Spanners {
		ms.score.Spanners.Add(sp)
		ms.setTieRefs(sp)
	}
	return nil
}

// ChangePitch replaces a note's notated and playback pitches, returning the
// prior pair for revert.
func (ms *MutableScore) ChangePitch(noteID EntityID, pitch NotatedPitch, playback PlaybackPitch) (NotatedPitch, PlaybackPitch, error) {
	n, err := ms.Note(noteID)
	if err != nil {
		return NotatedPitch{}, PlaybackPitch{}, err
	}
	if !playback.Agrees(pitch.Pitch) {
		return NotatedPitch{}, PlaybackPitch{}, fmt.Errorf("playback pitch %d disagrees with %s: %w", playback.MIDIPitch, pitch.Pitch, ErrConflict)
	}
	oldPitch, oldPlayback := n.Pitch, n.Playback
	n.Pitch = pitch
	n.Playback = playback
	ms.touch(ms.elements[noteID].Measure)
	return oldPitch, oldPlayback, nil
}

// ChangeVelocity replaces a note's velocity, returning the prior value.
func (ms *MutableScore) ChangeVelocity(noteID EntityID, velocity int) (int, error) {
	if velocity < 1 || velocity > 127 {
		return 0, fmt.Errorf("velocity %d out of range [1,127]: %w", velocity, ErrInvalidPosition)
	}
	n, err := ms.Note(noteID)
	if err != nil {
		return 0, err
	}
	old := n.Velocity
	n.Velocity = velocity
	ms.touch(ms.elements[noteID].Measure)
	return old, nil
}

// AddSpanner connects two notes with a slur or tie. The time range is
// derived from the notes' positions; for a tie the notes' endpoint
// references are set as well.
func (ms *MutableScore) AddSpanner(id EntityID, kind SpannerKind, startNote, endNote EntityID) error {
	if ms.score.Spanners.Find(id) != nil {
		return fmt.Errorf("spanner %s already present: %w", id, ErrConflict)
	}
	start, err := ms.Note(startNote)
	if err != nil {
		return err
	}
	end, err := ms.Note(endNote)
	if err != nil {
		return err
	}
	startRef, endRef := ms.elements[startNote], ms.elements[endNote]
	if endRef.Tick < startRef.Tick {
		return fmt.Errorf("spanner runs backwards from tick %d to %d: %w", startRef.Tick, endRef.Tick, ErrInvalidPosition)
	}
	if kind == TieSpanner {
		if start.Pitch.Pitch != end.Pitch.Pitch {
			return fmt.Errorf("tie connects different pitches %s and %s: %w", start.Pitch.Pitch, end.Pitch.Pitch, ErrConflict)
		}
		if !start.TieStart.IsNone() || !end.TieEnd.IsNone() {
			return fmt.Errorf("note already tied: %w", ErrConflict)
		}
	}
	sp := Spanner{
		ID:        id,
		Kind:      kind,
		StartNote: startNote,
		EndNote:   endNote,
		Range:     TimeRange{Start: startRef.Tick, End: endRef.Tick + TickPosition(end.Ticks)},
	}
	ms.score.Spanners.Add(sp)
	ms.setTieRefs(sp)
	ms.touch(startRef.Measure)
	ms.touch(endRef.Measure)
	return nil
}

// RemoveSpanner deletes a spanner, returning the removed payload for revert.
func (ms *MutableScore) RemoveSpanner(id EntityID) (Spanner, error) {
	sp := ms.score.Spanners.Find(id)
	if sp == nil {
		return Spanner{}, fmt.Errorf("spanner %s: %w", id, ErrUnknownEntity)
	}
	removed := *sp
	ms.score.Spanners.Remove(id)
	ms.clearTieRefs(removed)
	for _, noteID := range []EntityID{removed.StartNote, removed.EndNote} {
		if ref, ok := ms.elements[noteID]; ok {
			ms.touch(ref.Measure)
		}
	}
	return removed, nil
}

// RestoreSpanner re-adds a removed spanner capture.
func (ms *MutableScore) RestoreSpanner(sp Spanner) error {
	if ms.score.Spanners.Find(sp.ID) != nil {
		return fmt.Errorf("spanner %s already present: %w", sp.ID, ErrConflict)
	}
	ms.score.Spanners.Add(sp)
	ms.setTieRefs(sp)
	for _, noteID := range []EntityID{sp.StartNote, sp.EndNote} {
		if ref, ok := ms.elements[noteID]; ok {
			ms.touch(ref.Measure)
		}
	}
	return nil
}

func (ms *MutableScore) setTieRefs(sp Spanner) {
	if sp.Kind != TieSpanner {
		return
	}
	if n, err := ms.Note(sp.StartNote); err == nil {
		n.TieStart = sp.ID
	}
	if n, err := ms.Note(sp.EndNote); err == nil {
		n.TieEnd = sp.ID
	}
}

func (ms *MutableScore) clearTieRefs(sp Spanner) {
	if sp.Kind != TieSpanner {
		return
	}
	if n, err := ms.Note(sp.StartNote); err == nil && n.TieStart == sp.ID {
		n.TieStart = NoEntity
	}
	if n, err := ms.Note(sp.EndNote); err == nil && n.TieEnd == sp.ID {
		n.TieEnd = NoEntity
	}
}

// SetTempo inserts or replaces a tempo change at the tick. Returns the prior
// BPM at exactly that tick and whether one existed.
func (ms *MutableScore) SetTempo(tick TickPosition, bpm float64) (float64, bool, error) {
	if bpm <= 0 {
		return 0, false, fmt.Errorf("bpm %v must be positive: %w", bpm, ErrInvalidPosition)
	}
	if tick < 0 {
		return 0, false, fmt.Errorf("tick %d: %w", tick, ErrInvalidPosition)
	}
	lo := sort.Search(len(ms.score.Tempos), func(i int) bool { return ms.score.Tempos[i].Tick >= tick })
	if lo < len(ms.score.Tempos) && ms.score.Tempos[lo].Tick == tick {
		old := ms.score.Tempos[lo].BPM
		ms.score.Tempos[lo].BPM = bpm
		return old, true, nil
	}
	ms.score.Tempos = append(ms.score.Tempos, Tempo{})
	copy(ms.score.Tempos[lo+1:], ms.score.Tempos[lo:])
	ms.score.Tempos[lo] = Tempo{Tick: tick, BPM: bpm}
	return 0, false, nil
}

// RemoveTempo deletes the tempo change at exactly the tick, if present.
func (ms *MutableScore) RemoveTempo(tick TickPosition) bool {
	for i, t := range ms.score.Tempos {
		if t.Tick == tick {
			ms.score.Tempos = append(ms.score.Tempos[:i], ms.score.Tempos[i+1:]...)
			return true
		}
	}
	return false
}
