package inkscore

import (
	"fmt"
)

// Step is a diatonic letter name, C through B.
type Step int

const (
	StepC Step = iota
	StepD
	StepE
	StepF
	StepG
	StepA
	StepB
)

var stepNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// stepSemitones maps a Step to its semitone offset within the octave.
var stepSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

func (s Step) String() string {
	if s < StepC || s > StepB {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// AccidentalDisplay tells how an accidental is rendered, independently of the
// pitch value itself: the same F sharp may carry no glyph, a normal sharp, a
// parenthesized courtesy sharp or a bracketed editorial one.
type AccidentalDisplay int

const (
	AccidentalNone AccidentalDisplay = iota
	AccidentalShow
	AccidentalCourtesy
	AccidentalEditorial
)

type (
	// Pitch is the semantic identity of a pitch, preserving its enharmonic
	// spelling: F sharp and G flat are different Pitches with the same
	// sounding frequency.
	Pitch struct {
		Step   Step
		Alter  int // -2 (double flat) .. +2 (double sharp)
		Octave int // scientific pitch notation, 0..9; C4 is middle C
	}

	// NotatedPitch is a Pitch plus its accidental rendering policy.
	NotatedPitch struct {
		Pitch   Pitch
		Display AccidentalDisplay
	}

	// PlaybackPitch is the acoustic rendering of a pitch. It is derivable
	// from Pitch but stored independently, so a microtonal deviation can be
	// recorded in Cents without touching the notated spelling.
	PlaybackPitch struct {
		MIDIPitch int     // 0..127
		Cents     float64 // deviation from equal temperament, 0 if none
	}
)

// NewPitch validates and builds a Pitch. Out-of-range steps, alterations or
// octaves are programmer errors and are rejected here, before they can reach
// the model.
func NewPitch(step Step, alter, octave int) (Pitch, error) {
	if step < StepC || step > StepB {
		return Pitch{}, fmt.Errorf("invalid step %d", int(step))
	}
	if alter < -2 || alter > 2 {
		return Pitch{}, fmt.Errorf("alteration %d out of range [-2,2]", alter)
	}
	if octave < 0 || octave > 9 {
		return Pitch{}, fmt.Errorf("octave %d out of range [0,9]", octave)
	}
	return Pitch{Step: step, Alter: alter, Octave: octave}, nil
}

// MIDIPitch returns the equal-tempered MIDI note number of the pitch,
// clamped to the 0..127 MIDI range.
func (p Pitch) MIDIPitch() int {
	m := (p.Octave+1)*12 + stepSemitones[p.Step] + p.Alter
	if m < 0 {
		return 0
	}
	if m > 127 {
		return 127
	}
	return m
}

func (p Pitch) String() string {
	alter := ""
	switch {
	case p.Alter > 0:
		for i := 0; i < p.Alter; i++ {
			alter += "#"
		}
	case p.Alter < 0:
		for i := 0; i > p.Alter; i-- {
			alter += "b"
		}
	}
	return fmt.Sprintf("%s%s%d", p.Step, alter, p.Octave)
}

// NewPlaybackPitch validates and builds a PlaybackPitch.
func NewPlaybackPitch(midiPitch int, cents float64) (PlaybackPitch, error) {
	if midiPitch < 0 || midiPitch > 127 {
		return PlaybackPitch{}, fmt.Errorf("midi pitch %d out of range [0,127]", midiPitch)
	}
	return PlaybackPitch{MIDIPitch: midiPitch, Cents: cents}, nil
}

// Playback derives the default PlaybackPitch of the notated pitch: same MIDI
// number, no microtonal deviation.
func (p Pitch) Playback() PlaybackPitch {
	return PlaybackPitch{MIDIPitch: p.MIDIPitch()}
}

// Agrees reports whether the playback pitch is consistent with the notated
// pitch: they must share the MIDI number unless a microtonal override is
// recorded in Cents.
func (pp PlaybackPitch) Agrees(p Pitch) bool {
	return pp.MIDIPitch == p.MIDIPitch() || pp.Cents != 0
}
