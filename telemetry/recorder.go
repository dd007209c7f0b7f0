// Package telemetry records rallies for imitation training and writes
// structured output for headless training runs.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Frame is one tick of recorded gameplay. MovedUp pointers are nil when
// that side's paddle did not move this tick.
type Frame struct {
	State        []float64 `json:"state"`
	BallX        float64   `json:"ball_x"`
	BallY        float64   `json:"ball_y"`
	LeftPaddleY  float64   `json:"left_paddle_y"`
	RightPaddleY float64   `json:"right_paddle_y"`
	LeftMovedUp  *bool     `json:"left_moved_up"`
	RightMovedUp *bool     `json:"right_moved_up"`
	LeftHitBall  bool      `json:"left_hit_ball"`
	RightHitBall bool      `json:"right_hit_ball"`
}

// Rally is one recorded point: the frames between a serve and the next
// score event.
type Rally struct {
	Timestamp string  `json:"timestamp"`
	Frames    []Frame `json:"frames"`
	Winner    *string `json:"winner"`
	LeftHits  int     `json:"left_hits"`
	RightHits int     `json:"right_hits"`
}

// Recorder accumulates rallies during play. It is inert until
// StartPoint is called, so wiring it unconditionally costs nothing.
type Recorder struct {
	frames    []Frame
	pending   []Rally
	recording bool
	leftHits  int
	rightHits int
	winner    *string
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartPoint begins recording a new rally.
func (r *Recorder) StartPoint() {
	r.frames = r.frames[:0]
	r.recording = true
	r.leftHits = 0
	r.rightHits = 0
	r.winner = nil
}

// RecordFrame appends one frame to the current rally. Hit flags feed
// the rally's hit tallies.
func (r *Recorder) RecordFrame(f Frame) {
	if !r.recording {
		return
	}
	r.frames = append(r.frames, f)
	if f.LeftHitBall {
		r.leftHits++
	}
	if f.RightHitBall {
		r.rightHits++
	}
}

// SetWinner marks which side took the current rally.
func (r *Recorder) SetWinner(side string) {
	s := side
	r.winner = &s
}

// EndPoint closes the current rally and queues it for the next Append.
func (r *Recorder) EndPoint() {
	if !r.recording {
		return
	}
	frames := make([]Frame, len(r.frames))
	copy(frames, r.frames)
	r.pending = append(r.pending, Rally{
		Timestamp: time.Now().Format(time.RFC3339),
		Frames:    frames,
		Winner:    r.winner,
		LeftHits:  r.leftHits,
		RightHits: r.rightHits,
	})
	r.recording = false
}

// Pending returns the rallies recorded since the last Append.
func (r *Recorder) Pending() []Rally {
	return r.pending
}

// Append merges the pending rallies into the JSON file at path,
// preserving whatever rallies the file already holds, then clears the
// pending list. An unreadable or malformed existing file is treated as
// empty.
func (r *Recorder) Append(path string) error {
	if len(r.pending) == 0 {
		return nil
	}

	var existing []Rally
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			slog.Warn("existing rally file unreadable, starting over", "path", path, "error", err)
			existing = nil
		}
	}

	existing = append(existing, r.pending...)
	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rallies: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing rally file: %w", err)
	}

	r.pending = r.pending[:0]
	return nil
}

// LoadRallies reads a recorded-rally file. Individual malformed entries
// are skipped with a warning; only an unreadable file or a top-level
// array that won't parse is an error.
func LoadRallies(path string) ([]Rally, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rally file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing rally file: %w", err)
	}

	rallies := make([]Rally, 0, len(raw))
	for i, msg := range raw {
		var rally Rally
		if err := json.Unmarshal(msg, &rally); err != nil {
			slog.Warn("skipping malformed rally", "index", i, "error", err)
			continue
		}
		rallies = append(rallies, rally)
	}
	return rallies, nil
}
