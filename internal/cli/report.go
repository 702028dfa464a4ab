package cli

import (
	"fmt"
	"io"

	"github.com/MJE43/casino-sim/internal/games"
	"github.com/MJE43/casino-sim/internal/sim"
)

// writeReport prints the human-readable run summary
func writeReport(w io.Writer, cfg sim.Config, s *sim.Summary) {
	fmt.Fprintf(w, "Game: %s\n", s.Game)
	fmt.Fprintf(w, "Trials: %d\n", s.Trials)
	fmt.Fprintf(w, "Seed: %d\n", s.Seed)

	switch s.Game {
	case "dice":
		d := cfg.Params.Dice
		fmt.Fprintf(w, "Sides: %d, Bet on: %d, Payout: %s\n", d.Sides, d.BetOn, games.FormatReal(d.Payout))
	default:
		fmt.Fprintf(w, "Params: %s\n", s.Params)
	}

	fmt.Fprintf(w, "Hit rate: %s\n", formatStat(s.HitRate))
	fmt.Fprintf(w, "EV per play: %s\n", formatStat(s.ExpectedValue))
}

// formatStat prints six significant digits
func formatStat(f float64) string {
	return fmt.Sprintf("%.6g", f)
}
