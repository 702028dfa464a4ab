package games

import (
	"errors"
	"testing"
)

func TestGameRegistry(t *testing.T) {
	game, err := NewGame("dice", Params{Dice: DefaultDiceParams()})
	if err != nil {
		t.Fatalf("NewGame(dice) failed: %v", err)
	}
	if game.Spec().ID != "dice" {
		t.Errorf("Game ID mismatch: expected 'dice', got '%s'", game.Spec().ID)
	}

	specs := ListGames()
	if len(specs) != 1 || specs[0].ID != "dice" {
		t.Errorf("ListGames() = %v, want only dice", specs)
	}
}

func TestNewGameErrors(t *testing.T) {
	if _, err := NewGame("roulette", Params{}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("NewGame(roulette) error = %v, want ErrGameNotFound", err)
	}

	_, err := NewGame("dice", Params{Dice: DiceParams{Sides: 1, BetOn: 1}})
	if !errors.Is(err, ErrInvalidSides) {
		t.Errorf("NewGame(dice, sides=1) error = %v, want ErrInvalidSides", err)
	}
}

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		in   string
		want map[string]string
	}{
		{
			in:   "sides=6,bet_on=6,payout=5,seed=42",
			want: map[string]string{"sides": "6", "bet_on": "6", "payout": "5", "seed": "42"},
		},
		{
			in:   " sides = 10 , payout= 8.5,junk,=3",
			want: map[string]string{"sides": "10", "payout": "8.5"},
		},
		{in: "", want: map[string]string{}},
	}

	for _, tt := range tests {
		got := DecodeParams(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("DecodeParams(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for k, v := range tt.want {
			if got[k] != v {
				t.Errorf("DecodeParams(%q)[%q] = %q, want %q", tt.in, k, got[k], v)
			}
		}
	}
}

func TestParamLookups(t *testing.T) {
	params := DecodeParams("sides=6,payout=5.5,seed=abc")

	if n, ok := ParamInt(params, "sides"); !ok || n != 6 {
		t.Errorf("ParamInt(sides) = %d, %v", n, ok)
	}
	if _, ok := ParamInt(params, "seed"); ok {
		t.Error("ParamInt(seed) parsed a non-numeric value")
	}
	if f, ok := ParamFloat(params, "payout"); !ok || f != 5.5 {
		t.Errorf("ParamFloat(payout) = %f, %v", f, ok)
	}
	if _, ok := ParamFloat(params, "missing"); ok {
		t.Error("ParamFloat(missing) reported ok")
	}
}
