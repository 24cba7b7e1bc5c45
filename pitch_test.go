package inkscore

import (
	"testing"
)

func TestPitchMIDIPitch(t *testing.T) {
	tests := []struct {
		pitch Pitch
		want  int
	}{
		{Pitch{Step: StepC, Alter: 0, Octave: 4}, 60},
		{Pitch{Step: StepC, Alter: 1, Octave: 4}, 61},
		{Pitch{Step: StepD, Alter: -1, Octave: 4}, 61},
		{Pitch{Step: StepA, Alter: 0, Octave: 4}, 69},
		{Pitch{Step: StepB, Alter: 0, Octave: 3}, 59},
		{Pitch{Step: StepC, Alter: 0, Octave: 0}, 12},
		{Pitch{Step: StepG, Alter: 0, Octave: 9}, 127},
	}
	for _, test := range tests {
		if got := test.pitch.MIDIPitch(); got != test.want {
			t.Errorf("%s: got midi pitch %d, expected %d", test.pitch, got, test.want)
		}
	}
}

func TestNewPitchValidation(t *testing.T) {
	if _, err := NewPitch(StepC, 0, 4); err != nil {
		t.Fatalf("valid pitch rejected: %v", err)
	}
	invalid := []struct {
		step          Step
		alter, octave int
	}{
		{StepC, 3, 4},
		{StepC, -3, 4},
		{StepC, 0, -1},
		{StepC, 0, 10},
		{Step(7), 0, 4},
	}
	for _, test := range invalid {
		if _, err := NewPitch(test.step, test.alter, test.octave); err == nil {
			t.Errorf("NewPitch(%v, %v, %v) should have failed", test.step, test.alter, test.octave)
		}
	}
}

func TestPlaybackPitchAgrees(t *testing.T) {
	p := Pitch{Step: StepC, Octave: 4}
	if pb := p.Playback(); !pb.Agrees(p) {
		t.Errorf("derived playback pitch should agree with its source")
	}
	detuned := PlaybackPitch{MIDIPitch: 62, Cents: -30}
	if !detuned.Agrees(p) {
		t.Errorf("microtonal override should be allowed to disagree")
	}
	wrong := PlaybackPitch{MIDIPitch: 62}
	if wrong.Agrees(p) {
		t.Errorf("playback pitch without cents must match the notated pitch")
	}
}

func TestPitchString(t *testing.T) {
	tests := []struct {
		pitch Pitch
		want  string
	}{
		{Pitch{Step: StepC, Octave: 4}, "C4"},
		{Pitch{Step: StepF, Alter: 1, Octave: 5}, "F#5"},
		{Pitch{Step: StepB, Alter: -2, Octave: 2}, "Bbb2"},
	}
	for _, test := range tests {
		if got := test.pitch.String(); got != test.want {
			t.Errorf("got %q, expected %q", got, test.want)
		}
	}
}
