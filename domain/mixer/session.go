// Package mixer models the client-side multi-track mixer as local session
// state. Tracks are bound lazily when first selected and every transport
// action applies to all bound tracks at once.
package mixer

import (
	"errors"
	"fmt"
)

// TrackState is the lifecycle of a single track in the mixer
type TrackState string

const (
	StateIdle    TrackState = "idle"
	StateLoaded  TrackState = "loaded"
	StatePlaying TrackState = "playing"
	StatePaused  TrackState = "paused"
)

var (
	ErrTrackNotFound     = errors.New("track not found")
	ErrDuplicateTrack    = errors.New("track already in session")
	ErrNothingSelected   = errors.New("no tracks selected")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Track is one audio item and its playback state
type Track struct {
	ID       string
	Name     string
	URL      string
	State    TrackState
	Gain     float64
	Position float64 // seconds
}

// Bound reports whether the track is attached to the audio graph
func (t Track) Bound() bool {
	return t.State != StateIdle
}

// Session holds the tracks of one mixer view
type Session struct {
	tracks     []*Track
	byID       map[string]*Track
	masterGain float64
}

// NewSession creates an empty session with unity master gain
func NewSession() *Session {
	return &Session{
		byID:       make(map[string]*Track),
		masterGain: 1,
	}
}

// AddTrack appends an idle track
func (s *Session) AddTrack(id, name, url string) error {
	if _, exists := s.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTrack, id)
	}
	t := &Track{ID: id, Name: name, URL: url, State: StateIdle, Gain: 1}
	s.tracks = append(s.tracks, t)
	s.byID[id] = t
	return nil
}

// RemoveTrack drops a track regardless of its state
func (s *Session) RemoveTrack(id string) error {
	if _, err := s.track(id); err != nil {
		return err
	}
	delete(s.byID, id)
	for i, t := range s.tracks {
		if t.ID == id {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			break
		}
	}
	return nil
}

// Select binds an idle track. Selecting a bound track is a no-op.
func (s *Session) Select(id string) error {
	t, err := s.track(id)
	if err != nil {
		return err
	}
	if t.State == StateIdle {
		t.State = StateLoaded
	}
	return nil
}

// Deselect unbinds a track and forgets its position
func (s *Session) Deselect(id string) error {
	t, err := s.track(id)
	if err != nil {
		return err
	}
	t.State = StateIdle
	t.Position = 0
	return nil
}

// Play starts every bound track from its last known position
func (s *Session) Play() error {
	bound := s.inState(StateLoaded, StatePaused, StatePlaying)
	if len(bound) == 0 {
		return ErrNothingSelected
	}
	for _, t := range bound {
		t.State = StatePlaying
	}
	return nil
}

// Pause pauses every playing track
func (s *Session) Pause() error {
	playing := s.inState(StatePlaying)
	if len(playing) == 0 {
		return fmt.Errorf("%w: nothing is playing", ErrInvalidTransition)
	}
	for _, t := range playing {
		t.State = StatePaused
	}
	return nil
}

// Resume restarts every paused track
func (s *Session) Resume() error {
	paused := s.inState(StatePaused)
	if len(paused) == 0 {
		return fmt.Errorf("%w: nothing is paused", ErrInvalidTransition)
	}
	for _, t := range paused {
		t.State = StatePlaying
	}
	return nil
}

// Stop returns playing and paused tracks to loaded and rewinds them
func (s *Session) Stop() {
	for _, t := range s.inState(StatePlaying, StatePaused) {
		t.State = StateLoaded
		t.Position = 0
	}
}

// Seek records a new position for a track; negative positions clamp to 0.
// The position takes effect on the next Play.
func (s *Session) Seek(id string, position float64) error {
	t, err := s.track(id)
	if err != nil {
		return err
	}
	t.Position = max(position, 0)
	return nil
}

// Advance moves every playing track forward by elapsed seconds
func (s *Session) Advance(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	for _, t := range s.inState(StatePlaying) {
		t.Position += elapsed
	}
}

// SetVolume sets a track gain, clamped to [0,1]
func (s *Session) SetVolume(id string, gain float64) error {
	t, err := s.track(id)
	if err != nil {
		return err
	}
	t.Gain = clampUnit(gain)
	return nil
}

// SetMasterGain sets the master gain, clamped to [0,1]
func (s *Session) SetMasterGain(gain float64) {
	s.masterGain = clampUnit(gain)
}

// MasterGain returns the current master gain
func (s *Session) MasterGain() float64 {
	return s.masterGain
}

// EffectiveGain is the track gain scaled by the master gain
func (s *Session) EffectiveGain(id string) (float64, error) {
	t, err := s.track(id)
	if err != nil {
		return 0, err
	}
	return t.Gain * s.masterGain, nil
}

// Track returns a copy of one track
func (s *Session) Track(id string) (Track, error) {
	t, err := s.track(id)
	if err != nil {
		return Track{}, err
	}
	return *t, nil
}

// Tracks returns copies of all tracks in insertion order
func (s *Session) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = *t
	}
	return out
}

// IsPlaying reports whether any track is playing
func (s *Session) IsPlaying() bool {
	return len(s.inState(StatePlaying)) > 0
}

func (s *Session) track(id string) (*Track, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	return t, nil
}

func (s *Session) inState(states ...TrackState) []*Track {
	var out []*Track
	for _, t := range s.tracks {
		for _, st := range states {
			if t.State == st {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
