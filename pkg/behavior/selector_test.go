package behavior

import "testing"

func TestSelector_DecisionTable(t *testing.T) {
	cfg := DefaultConfig()
	sel := NewSelector(cfg)

	tests := []struct {
		name   string
		sig    Signals
		score  float64
		state  State
		target float64
	}{
		{"loud and panicked retreats", Signals{Sound: true, Level: 0.5}, 20, Retreating, cfg.MinY},
		{"loud at panic threshold holds", Signals{Sound: true, Level: 0.5}, 30, Holding, 0},
		{"loud but brave holds", Signals{Sound: true, Level: 0.5}, 90, Holding, 0},
		{"quiet and comfortable approaches", Signals{Sound: true, Level: 0.0}, 100, Approaching, cfg.MaxY},
		{"quiet at comfort threshold holds", Signals{Sound: true, Level: 0.0}, 70, Holding, 0},
		{"quiet but wary holds", Signals{Sound: true, Level: 0.05}, 40, Holding, 0},
		{"level at threshold is quiet", Signals{Sound: true, Level: 0.09}, 80, Approaching, cfg.MaxY},
		{"no signal holds", Signals{}, 100, Holding, 0},
		{"no signal holds when panicked", Signals{}, 0, Holding, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := sel.Select(tc.sig, tc.score)
			if d.State != tc.state {
				t.Errorf("state: got %v, want %v", d.State, tc.state)
			}
			if d.Target != tc.target {
				t.Errorf("target: got %v, want %v", d.Target, tc.target)
			}
		})
	}
}

func TestSelector_DeadZoneHolds(t *testing.T) {
	sel := NewSelector(DefaultConfig())

	for i := 0; i < 100; i++ {
		level := 0.0
		if i%2 == 0 {
			level = 0.5
		}
		d := sel.Select(Signals{Sound: true, Level: level}, 50)
		if d.State != Holding {
			t.Fatalf("frame %d (level %v): got %v, want holding", i, level, d.State)
		}
	}
}

func TestState_String(t *testing.T) {
	if Holding.String() != "holding" || Approaching.String() != "approaching" || Retreating.String() != "retreating" {
		t.Error("unexpected state names")
	}
	if State(9).String() != "unknown" {
		t.Error("expected unknown for out-of-range state")
	}
}
