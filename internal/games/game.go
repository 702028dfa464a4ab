package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MJE43/casino-sim/internal/engine"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidSides  = errors.New("sides must be at least 2")
	ErrInvalidBetOn  = errors.New("bet-on face must be between 1 and sides")
	ErrInvalidPayout = errors.New("payout must be a finite number")
)

// GameSpec describes a registered game
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
}

// Outcome is the result of a single play
type Outcome struct {
	Roll   int     `json:"roll"`
	Win    bool    `json:"win"`
	Profit float64 `json:"profit"`
}

// Game plays one trial against a random source. Play must not fail for a
// game built by its factory; parameter checks happen at construction.
type Game interface {
	Spec() GameSpec

	// Play consumes draws from rng and returns the outcome
	Play(rng engine.RandomSource) Outcome

	// Encode renders the game parameters as comma separated key=value pairs
	Encode() string
}

// Params carries per-game parameters. Each factory reads its own field.
type Params struct {
	Dice DiceParams `json:"dice"`
}

// Factory builds a validated game from params
type Factory func(p Params) (Game, error)

type registration struct {
	spec    GameSpec
	factory Factory
}

var registry = make(map[string]registration)

// Register adds a game factory to the registry
func Register(spec GameSpec, factory Factory) {
	registry[spec.ID] = registration{spec: spec, factory: factory}
}

// NewGame builds the game registered under id
func NewGame(id string, p Params) (Game, error) {
	reg, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	return reg.factory(p)
}

// ListGames returns the specs of all registered games sorted by ID
func ListGames() []GameSpec {
	specs := make([]GameSpec, 0, len(registry))
	for _, reg := range registry {
		specs = append(specs, reg.spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

func init() {
	Register(diceSpec, func(p Params) (Game, error) {
		return NewDice(p.Dice)
	})
}
