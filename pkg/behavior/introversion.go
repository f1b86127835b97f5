package behavior

// Introversion integrates loudness into a bounded comfort score.
// High score means willing to approach; low score means wanting to retreat.
type Introversion struct {
	score float64

	threshold float64
	gainRate  float64
	lossRate  float64

	minSpeed, maxSpeed float64
	walk, idle         DelayRange
}

// NewIntroversion creates the score at cfg.InitialScore.
func NewIntroversion(cfg Config) *Introversion {
	return &Introversion{
		score:     Clamp(cfg.InitialScore, MinScore, MaxScore),
		threshold: cfg.SoundThreshold,
		gainRate:  cfg.GainRate,
		lossRate:  cfg.LossRate,
		minSpeed:  cfg.MinSpeed,
		maxSpeed:  cfg.MaxSpeed,
		walk:      cfg.WalkDelay,
		idle:      cfg.IdleDelay,
	}
}

// Update applies one frame of loudness. Without a sound signal the score holds.
func (in *Introversion) Update(level float64, sound bool) float64 {
	if !sound {
		return in.score
	}
	if level > in.threshold {
		in.score -= in.lossRate
	} else {
		in.score += in.gainRate
	}
	in.score = Clamp(in.score, MinScore, MaxScore)
	return in.score
}

// Score returns the current score in [0,100].
func (in *Introversion) Score() float64 {
	return in.score
}

// SetScore overrides the score, clamped to [0,100].
func (in *Introversion) SetScore(score float64) {
	in.score = Clamp(score, MinScore, MaxScore)
}

// Speed returns depth units per frame: fast when stressed, slow when comfortable.
func (in *Introversion) Speed() float64 {
	return mapRange(in.score, MinScore, MaxScore, in.maxSpeed, in.minSpeed)
}

// WalkDelay returns the walk cadence in frames; lower score plays faster.
func (in *Introversion) WalkDelay() int {
	return roundDelay(mapRange(in.score, MinScore, MaxScore, in.walk.Fast, in.walk.Slow))
}

// IdleDelay returns the idle cadence in frames; lower score plays faster.
func (in *Introversion) IdleDelay() int {
	return roundDelay(mapRange(in.score, MinScore, MaxScore, in.idle.Fast, in.idle.Slow))
}
