package play

import (
	"bytes"
	"testing"

	"github.com/jvirtanen/inkscore"
)

func playScore(t *testing.T, measures int) (*inkscore.MutableScore, []inkscore.EntityID) {
	t.Helper()
	ms := inkscore.NewMutableScore(inkscore.NewScore())
	if err := ms.AddPart(inkscore.NewEntityID(), "Piano", 1, 0); err != nil {
		t.Fatalf("AddPart failed: %v", err)
	}
	ids := make([]inkscore.EntityID, measures)
	for i := range ids {
		ids[i] = inkscore.NewEntityID()
		if err := ms.AppendMeasure(ids[i], 1920, nil, nil, nil); err != nil {
			t.Fatalf("AppendMeasure failed: %v", err)
		}
	}
	return ms, ids
}

func addQuarter(t *testing.T, ms *inkscore.MutableScore, measure inkscore.EntityID, tick inkscore.TickPosition, step inkscore.Step, octave int) inkscore.EntityID {
	t.Helper()
	id := inkscore.NewEntityID()
	pitch := inkscore.NotatedPitch{Pitch: inkscore.Pitch{Step: step, Octave: octave}}
	err := ms.AddNote(id, measure, 1, 0, tick, pitch, nil, inkscore.WrittenDuration{Base: inkscore.Quarter}, 0)
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	return id
}

func TestEventsMergeTieChains(t *testing.T) {
	ms, measures := playScore(t, 2)
	a := addQuarter(t, ms, measures[0], 1440, inkscore.StepC, 4)
	b := addQuarter(t, ms, measures[1], 1920, inkscore.StepC, 4)
	c := addQuarter(t, ms, measures[1], 2400, inkscore.StepC, 4)
	if err := ms.AddSpanner(inkscore.NewEntityID(), inkscore.TieSpanner, a, b); err != nil {
		t.Fatalf("AddSpanner failed: %v", err)
	}
	if err := ms.AddSpanner(inkscore.NewEntityID(), inkscore.TieSpanner, b, c); err != nil {
		t.Fatalf("AddSpanner failed: %v", err)
	}

	events := Events(ms.Materialize())
	if len(events) != 1 {
		t.Fatalf("tie chain should collapse to one event, got %d", len(events))
	}
	e := events[0]
	if e.Tick != 1440 || e.Duration != 1440 {
		t.Errorf("merged event at tick %d for %d ticks, expected 1440 for 1440", e.Tick, e.Duration)
	}
	if e.Key != 60 || e.Velocity != inkscore.DefaultVelocity {
		t.Errorf("event rendering %d/%d, expected 60/%d", e.Key, e.Velocity, inkscore.DefaultVelocity)
	}
}

func TestEventsExpandChords(t *testing.T) {
	ms, measures := playScore(t, 1)
	pitches := []inkscore.NotatedPitch{
		{Pitch: inkscore.Pitch{Step: inkscore.StepC, Octave: 4}},
		{Pitch: inkscore.Pitch{Step: inkscore.StepE, Octave: 4}},
		{Pitch: inkscore.Pitch{Step: inkscore.StepG, Octave: 4}},
	}
	err := ms.AddChord(inkscore.NewEntityID(), measures[0], 1, 0, 0, pitches, inkscore.WrittenDuration{Base: inkscore.Half}, 100)
	if err != nil {
		t.Fatalf("AddChord failed: %v", err)
	}

	events := Events(ms.Materialize())
	if len(events) != 3 {
		t.Fatalf("chord should yield one event per pitch, got %d", len(events))
	}
	wantKeys := []uint8{60, 64, 67}
	for i, e := range events {
		if e.Key != wantKeys[i] {
			t.Errorf("event %d key %d, expected %d (tick ties break by key)", i, e.Key, wantKeys[i])
		}
		if e.Tick != 0 || e.Duration != 960 || e.Velocity != 100 {
			t.Errorf("event %d = %+v", i, e)
		}
	}
}

func TestEventsSkipRests(t *testing.T) {
	ms, measures := playScore(t, 1)
	err := ms.AddRest(inkscore.NewEntityID(), measures[0], 1, 0, 0, inkscore.WrittenDuration{Base: inkscore.Whole}, true)
	if err != nil {
		t.Fatalf("AddRest failed: %v", err)
	}
	if events := Events(ms.Materialize()); len(events) != 0 {
		t.Errorf("rests must not sound, got %d events", len(events))
	}
}

func TestAcciaccaturaStealsNothing(t *testing.T) {
	ms, measures := playScore(t, 1)
	principal := addQuarter(t, ms, measures[0], 480, inkscore.StepG, 4)
	graces := []inkscore.NotatedPitch{{Pitch: inkscore.Pitch{Step: inkscore.StepF, Octave: 4}}}
	err := ms.AddGraceGroup(inkscore.NewEntityID(), principal, inkscore.Acciaccatura, graces, []inkscore.EntityID{inkscore.NewEntityID()})
	if err != nil {
		t.Fatalf("AddGraceGroup failed: %v", err)
	}

	events := Events(ms.Materialize())
	if len(events) != 2 {
		t.Fatalf("expected grace + principal, got %d events", len(events))
	}
	grace, main := events[0], events[1]
	if grace.Key != 65 || main.Key != 67 {
		t.Fatalf("event order wrong: keys %d, %d", grace.Key, main.Key)
	}
	if main.Tick != 480 || main.Duration != 480 {
		t.Errorf("principal must keep its full time, got tick %d for %d ticks", main.Tick, main.Duration)
	}
	if grace.Tick+inkscore.TickPosition(grace.Duration) != main.Tick {
		t.Errorf("grace window [%d, %d) should end at the beat %d", grace.Tick, grace.Tick+inkscore.TickPosition(grace.Duration), main.Tick)
	}
}

func TestAppoggiaturaStealsHalf(t *testing.T) {
	ms, measures := playScore(t, 1)
	principal := addQuarter(t, ms, measures[0], 0, inkscore.StepG, 4)
	graces := []inkscore.NotatedPitch{
		{Pitch: inkscore.Pitch{Step: inkscore.StepA, Octave: 4}},
		{Pitch: inkscore.Pitch{Step: inkscore.StepF, Octave: 4}},
	}
	err := ms.AddGraceGroup(inkscore.NewEntityID(), principal, inkscore.Appoggiatura, graces, []inkscore.EntityID{inkscore.NewEntityID(), inkscore.NewEntityID()})
	if err != nil {
		t.Fatalf("AddGraceGroup failed: %v", err)
	}

	events := Events(ms.Materialize())
	if len(events) != 3 {
		t.Fatalf("expected 2 graces + principal, got %d events", len(events))
	}
	if events[0].Key != 69 || events[0].Tick != 0 || events[0].Duration != 120 {
		t.Errorf("first grace %+v, expected key 69 at tick 0 for 120 ticks", events[0])
	}
	if events[1].Key != 65 || events[1].Tick != 120 || events[1].Duration != 120 {
		t.Errorf("second grace %+v, expected key 65 at tick 120 for 120 ticks", events[1])
	}
	main := events[2]
	if main.Key != 67 || main.Tick != 240 || main.Duration != 240 {
		t.Errorf("principal %+v, expected key 67 shifted to tick 240 for 240 ticks", main)
	}
}

func TestEventsAreTickOrdered(t *testing.T) {
	ms, measures := playScore(t, 2)
	addQuarter(t, ms, measures[1], 1920, inkscore.StepD, 4)
	addQuarter(t, ms, measures[0], 960, inkscore.StepE, 4)
	addQuarter(t, ms, measures[0], 0, inkscore.StepC, 4)

	events := Events(ms.Materialize())
	for i := 1; i < len(events); i++ {
		if events[i].Tick < events[i-1].Tick {
			t.Fatalf("events out of order: %+v", events)
		}
	}
}

func TestWriteSMF(t *testing.T) {
	ms, measures := playScore(t, 1)
	addQuarter(t, ms, measures[0], 0, inkscore.StepC, 4)
	addQuarter(t, ms, measures[0], 480, inkscore.StepD, 4)
	if _, _, err := ms.SetTempo(0, 90); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSMF(ms.Materialize(), &buf); err != nil {
		t.Fatalf("WriteSMF failed: %v", err)
	}
	data := buf.Bytes()
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("MThd")) {
		t.Fatalf("output is not a standard MIDI file")
	}
	// format 1: one tempo track plus one part track
	if n := bytes.Count(data, []byte("MTrk")); n != 2 {
		t.Errorf("expected 2 track chunks, got %d", n)
	}
}
