package behavior

// Decision is the selector's output for one frame.
type Decision struct {
	State  State
	Target float64 // Target depth; meaningless while Holding
}

// rule is one row of the decision table.
type rule struct {
	name  string
	when  func(loud bool, score float64, t thresholds) bool
	state State
}

type thresholds struct {
	panic, comfort float64
}

// decisionTable is evaluated top to bottom; the first matching row wins.
// The band between panic and comfort holds regardless of noise.
var decisionTable = []rule{
	{
		name:  "loud-panic",
		when:  func(loud bool, score float64, t thresholds) bool { return loud && score < t.panic },
		state: Retreating,
	},
	{
		name:  "loud-brave",
		when:  func(loud bool, score float64, t thresholds) bool { return loud && score >= t.panic },
		state: Holding,
	},
	{
		name:  "quiet-comfortable",
		when:  func(loud bool, score float64, t thresholds) bool { return !loud && score > t.comfort },
		state: Approaching,
	},
	{
		name:  "quiet-wary",
		when:  func(loud bool, score float64, t thresholds) bool { return !loud && score <= t.comfort },
		state: Holding,
	},
}

// Selector chooses a behavior from scratch every frame.
type Selector struct {
	soundThreshold float64
	t              thresholds
	far, close     float64
}

// NewSelector creates a selector from config.
func NewSelector(cfg Config) Selector {
	return Selector{
		soundThreshold: cfg.SoundThreshold,
		t:              thresholds{panic: cfg.PanicThreshold, comfort: cfg.ComfortThreshold},
		far:            cfg.MinY,
		close:          cfg.MaxY,
	}
}

// Select picks the state for the given signals and score.
// No sound signal means Holding.
func (s Selector) Select(sig Signals, score float64) Decision {
	if !sig.Sound {
		return Decision{State: Holding}
	}
	loud := sig.Level > s.soundThreshold
	for _, r := range decisionTable {
		if r.when(loud, score, s.t) {
			return s.decide(r.state)
		}
	}
	return Decision{State: Holding}
}

func (s Selector) decide(state State) Decision {
	switch state {
	case Approaching:
		return Decision{State: Approaching, Target: s.close}
	case Retreating:
		return Decision{State: Retreating, Target: s.far}
	default:
		return Decision{State: Holding}
	}
}
