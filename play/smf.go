package play

import (
	"fmt"
	"io"
	"sort"

	"github.com/jvirtanen/inkscore"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// WriteSMF renders the score as a format 1 standard MIDI file: one track per
// part (plus a tempo track), metric ticks matching the model's 480 per
// quarter, channel per part.
func WriteSMF(score inkscore.Score, w io.Writer) error {
	events := Events(score)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(inkscore.TicksPerQuarter)

	var tempo smf.Track
	last := inkscore.TickPosition(0)
	if len(score.Tempos) == 0 {
		tempo.Add(0, smf.MetaTempo(120))
	}
	for _, t := range score.Tempos {
		tempo.Add(uint32(t.Tick-last), smf.MetaTempo(t.BPM))
		last = t.Tick
	}
	tempo.Close(0)
	s.Tracks = append(s.Tracks, tempo)

	parts := score.Parts
	if len(parts) == 0 {
		parts = []inkscore.Part{{Name: "Part 1", Staves: 1}}
	}
	for pi, part := range parts {
		s.Tracks = append(s.Tracks, partTrack(events, pi, part))
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi file: %w", err)
	}
	return nil
}

// timedMessage is a MIDI message at an absolute tick; off messages sort
// before on messages at the same tick so repeated notes retrigger cleanly.
type timedMessage struct {
	tick inkscore.TickPosition
	off  bool
	msg  midi.Message
}

func partTrack(events []Event, partIndex int, part inkscore.Part) smf.Track {
	ch := uint8(partIndex % 16)
	var timeline []timedMessage
	for _, e := range events {
		if e.Part != partIndex {
			continue
		}
		timeline = append(timeline,
			timedMessage{tick: e.Tick, msg: midi.NoteOn(ch, e.Key, e.Velocity)},
			timedMessage{tick: e.Tick + inkscore.TickPosition(e.Duration), off: true, msg: midi.NoteOff(ch, e.Key)},
		)
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].tick != timeline[j].tick {
			return timeline[i].tick < timeline[j].tick
		}
		return timeline[i].off && !timeline[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(part.Name))
	tr.Add(0, midi.ProgramChange(ch, uint8(part.Program)))
	last := inkscore.TickPosition(0)
	for _, tm := range timeline {
		tr.Add(uint32(tm.tick-last), tm.msg)
		last = tm.tick
	}
	tr.Close(0)
	return tr
}
