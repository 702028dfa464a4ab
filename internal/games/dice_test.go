package games

import (
	"errors"
	"math"
	"testing"

	"github.com/MJE43/casino-sim/internal/engine"
)

// scriptedSource replays a fixed sequence of integer draws
type scriptedSource struct {
	rolls  []int
	calls  int
	lastLo int
	lastHi int
}

func (s *scriptedSource) UniformInt(lo, hi int) int {
	s.lastLo, s.lastHi = lo, hi
	v := s.rolls[s.calls%len(s.rolls)]
	s.calls++
	return v
}

func (s *scriptedSource) UniformReal01() float64 { return 0 }

func TestDiceGameSpec(t *testing.T) {
	game, err := NewDice(DefaultDiceParams())
	if err != nil {
		t.Fatalf("NewDice failed: %v", err)
	}

	spec := game.Spec()
	if spec.ID != "dice" {
		t.Errorf("Expected ID 'dice', got '%s'", spec.ID)
	}
	if spec.Name != "Dice" {
		t.Errorf("Expected name 'Dice', got '%s'", spec.Name)
	}
	if spec.MetricLabel != "roll" {
		t.Errorf("Expected metric label 'roll', got '%s'", spec.MetricLabel)
	}
}

func TestDicePlay(t *testing.T) {
	game, err := NewDice(DiceParams{Sides: 6, BetOn: 6, Payout: 5})
	if err != nil {
		t.Fatalf("NewDice failed: %v", err)
	}

	tests := []struct {
		roll       int
		wantWin    bool
		wantProfit float64
	}{
		{roll: 6, wantWin: true, wantProfit: 5},
		{roll: 1, wantWin: false, wantProfit: -1},
		{roll: 5, wantWin: false, wantProfit: -1},
	}

	for _, tt := range tests {
		src := &scriptedSource{rolls: []int{tt.roll}}
		out := game.Play(src)

		if out.Roll != tt.roll || out.Win != tt.wantWin || out.Profit != tt.wantProfit {
			t.Errorf("Play() with roll %d = %+v, want win=%v profit=%v", tt.roll, out, tt.wantWin, tt.wantProfit)
		}
		if src.calls != 1 {
			t.Errorf("Play() made %d draws, want exactly 1", src.calls)
		}
		if src.lastLo != 1 || src.lastHi != 6 {
			t.Errorf("Play() drew from [%d, %d], want [1, 6]", src.lastLo, src.lastHi)
		}
	}
}

func TestDiceRollRange(t *testing.T) {
	game, _ := NewDice(DiceParams{Sides: 20, BetOn: 1, Payout: 19})
	rng := engine.NewMT64(engine.DefaultSeed)

	for i := 0; i < 10000; i++ {
		out := game.Play(rng)
		if out.Roll < 1 || out.Roll > 20 {
			t.Fatalf("roll %d out of range [1, 20]", out.Roll)
		}
		if out.Win != (out.Roll == 1) {
			t.Fatalf("roll %d reported win=%v", out.Roll, out.Win)
		}
	}
}

func TestDiceValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  DiceParams
		wantErr error
	}{
		{name: "defaults", params: DefaultDiceParams()},
		{name: "coin", params: DiceParams{Sides: 2, BetOn: 1, Payout: 1}},
		{name: "one side", params: DiceParams{Sides: 1, BetOn: 1, Payout: 0}, wantErr: ErrInvalidSides},
		{name: "bet above sides", params: DiceParams{Sides: 6, BetOn: 7, Payout: 5}, wantErr: ErrInvalidBetOn},
		{name: "bet zero", params: DiceParams{Sides: 6, BetOn: 0, Payout: 5}, wantErr: ErrInvalidBetOn},
		{name: "negative payout", params: DiceParams{Sides: 6, BetOn: 6, Payout: -0.5}},
		{name: "nan payout", params: DiceParams{Sides: 6, BetOn: 6, Payout: math.NaN()}, wantErr: ErrInvalidPayout},
		{name: "inf payout", params: DiceParams{Sides: 6, BetOn: 6, Payout: math.Inf(1)}, wantErr: ErrInvalidPayout},
		{name: "negative inf payout", params: DiceParams{Sides: 6, BetOn: 6, Payout: math.Inf(-1)}, wantErr: ErrInvalidPayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := NewDice(tt.params)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewDice(%+v) unexpected error: %v", tt.params, err)
				}
				if game.Params() != tt.params {
					t.Errorf("Params() = %+v, want %+v", game.Params(), tt.params)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDice(%+v) error = %v, want %v", tt.params, err, tt.wantErr)
			}
		})
	}
}

func TestDiceEncode(t *testing.T) {
	tests := []struct {
		params DiceParams
		want   string
	}{
		{params: DiceParams{Sides: 6, BetOn: 6, Payout: 5}, want: "sides=6,bet_on=6,payout=5"},
		{params: DiceParams{Sides: 10, BetOn: 3, Payout: 8.5}, want: "sides=10,bet_on=3,payout=8.5"},
		{params: DiceParams{Sides: 2, BetOn: 2, Payout: 0.95}, want: "sides=2,bet_on=2,payout=0.95"},
	}

	for _, tt := range tests {
		game, err := NewDice(tt.params)
		if err != nil {
			t.Fatalf("NewDice failed: %v", err)
		}
		if got := game.Encode(); got != tt.want {
			t.Errorf("Encode() = %q, want %q", got, tt.want)
		}
	}
}

func TestDiceFairPayoutEV(t *testing.T) {
	game, _ := NewDice(DiceParams{Sides: 6, BetOn: 6, Payout: 5})
	rng := engine.NewMT64(7)

	const n = 120000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += game.Play(rng).Profit
	}

	if ev := sum / n; ev < -0.05 || ev > 0.05 {
		t.Errorf("EV = %f for fair payout, want within 0.05 of 0", ev)
	}
}
