package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/MJE43/casino-sim/internal/games"
	"github.com/MJE43/casino-sim/internal/sim"
	"github.com/fatih/color"
)

// Process exit codes
const (
	ExitOK            = 0
	ExitUnknownGame   = 1
	ExitInvalidParams = 2
	ExitRuntime       = 3
)

// usageError marks bad flags, arguments or configuration values
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command onto a process exit code
func ExitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, games.ErrGameNotFound):
		return ExitUnknownGame
	case sim.IsConfigError(err), errors.As(err, &usage):
		return ExitInvalidParams
	default:
		return ExitRuntime
	}
}

var errorLabel = color.New(color.FgRed, color.Bold)

func printError(w io.Writer, err error) {
	errorLabel.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)
	if isParamError(err) {
		fmt.Fprintln(w, "Valid parameters: --sides >= 2, 1 <= --bet-on <= --sides, finite --payout, --trials > 0")
	}
}

func isParamError(err error) bool {
	return errors.Is(err, games.ErrInvalidSides) ||
		errors.Is(err, games.ErrInvalidBetOn) ||
		errors.Is(err, games.ErrInvalidPayout) ||
		errors.Is(err, sim.ErrInvalidTrials)
}
