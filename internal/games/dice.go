package games

import (
	"fmt"
	"math"

	"github.com/MJE43/casino-sim/internal/engine"
	"github.com/shopspring/decimal"
)

var diceSpec = GameSpec{
	ID:          "dice",
	Name:        "Dice",
	MetricLabel: "roll",
}

// DiceParams configures a single-face bet on a fair die
type DiceParams struct {
	Sides  int     `json:"sides"`
	BetOn  int     `json:"bet_on"`
	Payout float64 `json:"payout"`
}

// DefaultDiceParams returns a six-sided die with a fair 5:1 payout on six
func DefaultDiceParams() DiceParams {
	return DiceParams{Sides: 6, BetOn: 6, Payout: 5.0}
}

// Validate checks sides >= 2, 1 <= bet_on <= sides and a finite payout
func (p DiceParams) Validate() error {
	if p.Sides < 2 {
		return fmt.Errorf("%w, got %d", ErrInvalidSides, p.Sides)
	}
	if p.BetOn < 1 || p.BetOn > p.Sides {
		return fmt.Errorf("%w (%d), got %d", ErrInvalidBetOn, p.Sides, p.BetOn)
	}
	if math.IsNaN(p.Payout) || math.IsInf(p.Payout, 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidPayout, p.Payout)
	}
	return nil
}

// DiceGame implements the dice roll game
type DiceGame struct {
	params DiceParams
}

// NewDice creates a dice game after validating params
func NewDice(p DiceParams) (*DiceGame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &DiceGame{params: p}, nil
}

// Spec returns metadata about the Dice game
func (g *DiceGame) Spec() GameSpec {
	return diceSpec
}

// Params returns the game parameters
func (g *DiceGame) Params() DiceParams {
	return g.params
}

// Play rolls once. A hit pays the configured payout, a miss loses the unit stake.
func (g *DiceGame) Play(rng engine.RandomSource) Outcome {
	roll := rng.UniformInt(1, g.params.Sides)
	if roll == g.params.BetOn {
		return Outcome{Roll: roll, Win: true, Profit: g.params.Payout}
	}
	return Outcome{Roll: roll, Win: false, Profit: -1}
}

// Encode renders params as "sides=6,bet_on=6,payout=5"
func (g *DiceGame) Encode() string {
	return fmt.Sprintf("sides=%d,bet_on=%d,payout=%s",
		g.params.Sides, g.params.BetOn, FormatReal(g.params.Payout))
}

// FormatReal renders a float as its shortest exact decimal ("5", "2.5")
func FormatReal(f float64) string {
	return decimal.NewFromFloat(f).String()
}
