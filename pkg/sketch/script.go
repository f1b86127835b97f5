package sketch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Cue sets the microphone level from frame At onward. A negative level
// means no microphone.
type Cue struct {
	At    uint64
	Level float64
}

// Script is an audio service that replays cues by frame count. The session
// asks Available exactly once per frame, so each call advances the script.
type Script struct {
	cues []Cue

	mu    sync.Mutex
	next  uint64
	level float64
	avail bool
}

// NewScript sorts cues by frame. Before the first cue there is no microphone.
func NewScript(cues ...Cue) *Script {
	sorted := append([]Cue(nil), cues...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Script{cues: sorted}
}

// ParseScript reads "frame:level" pairs separated by commas, e.g.
// "0:0,120:0.8,300:none".
func ParseScript(text string) (*Script, error) {
	var cues []Cue
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, lvl, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("cue %q: want frame:level", part)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(at), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cue %q: bad frame: %w", part, err)
		}
		lvl = strings.TrimSpace(lvl)
		if lvl == "none" {
			cues = append(cues, Cue{At: n, Level: -1})
			continue
		}
		l, err := strconv.ParseFloat(lvl, 64)
		if err != nil {
			return nil, fmt.Errorf("cue %q: bad level: %w", part, err)
		}
		cues = append(cues, Cue{At: n, Level: l})
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return NewScript(cues...), nil
}

// seek applies the last cue at or before frame. Callers hold mu.
func (s *Script) seek(frame uint64) {
	s.avail = false
	s.level = 0
	for _, c := range s.cues {
		if c.At > frame {
			break
		}
		s.avail = c.Level >= 0
		s.level = max(c.Level, 0)
	}
}

// Available moves to the next frame and reports whether its cue has a microphone.
func (s *Script) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seek(s.next)
	s.next++
	return s.avail
}

// Level returns the level of the current frame.
func (s *Script) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}
