package behavior

// Conditioner turns raw sensor readings into conditioned signals.
// It owns the smoothed secondary cursor.
type Conditioner struct {
	gain      float64
	smoothing float64
	keypoint  int

	cursor    Point
	hasCursor bool
}

// NewConditioner creates a conditioner from config.
func NewConditioner(cfg Config) *Conditioner {
	return &Conditioner{
		gain:      cfg.SoundGain,
		smoothing: cfg.CursorSmoothing,
		keypoint:  cfg.NoseKeypoint,
	}
}

// Condition reads both services once. Either may be nil.
func (c *Conditioner) Condition(audio AudioService, face FaceService) Signals {
	var s Signals

	if audio != nil && audio.Available() {
		s.Sound = true
		s.Level = Clamp(audio.Level()*c.gain, 0, 1)
	}

	if face != nil {
		if kp, ok := face.Keypoint(c.keypoint); ok {
			c.observe(kp)
		}
	}

	// A lost face keeps the last smoothed cursor.
	s.Cursor = c.cursor
	s.HasCursor = c.hasCursor
	return s
}

func (c *Conditioner) observe(kp Point) {
	if !c.hasCursor {
		c.cursor = kp
		c.hasCursor = true
		return
	}
	c.cursor.X = Lerp(c.cursor.X, kp.X, c.smoothing)
	c.cursor.Y = Lerp(c.cursor.Y, kp.Y, c.smoothing)
}

// Cursor returns the smoothed cursor, or false before the first detection.
func (c *Conditioner) Cursor() (Point, bool) {
	return c.cursor, c.hasCursor
}
