package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/MJE43/casino-sim/internal/games"
	"github.com/MJE43/casino-sim/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type historyOptions struct {
	dbPath    string
	gameType  string
	minTrials int
	maxTrials int
	sides     int
	payout    float64
	limit     int
	csv       bool
}

func newHistoryCommand(a *app) *cobra.Command {
	opts := &historyOptions{dbPath: a.cfg.DBPath, gameType: a.cfg.Game}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored run summaries, newest first",
		Long: `history reads the games table written by "casino run --db" and prints
one line per stored run. Rows can be filtered by trial count and by the
sides and payout recorded in each row's parameters.`,
		Example: `  casino history --db data/sim.db --min-trials 1000
  casino history --db data/sim.db --sides 6 --payout 5 --csv > ev.csv`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showHistory(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.dbPath, "db", opts.dbPath, "SQLite database to read")
	fs.StringVar(&opts.gameType, "type", opts.gameType, "game type to list (empty for all)")
	fs.IntVar(&opts.minTrials, "min-trials", 0, "keep runs with at least this many trials")
	fs.IntVar(&opts.maxTrials, "max-trials", 0, "keep runs with at most this many trials")
	fs.IntVar(&opts.sides, "sides", 0, "keep runs with this many sides")
	fs.Float64Var(&opts.payout, "payout", 0, "keep runs with this payout")
	fs.IntVar(&opts.limit, "limit", 0, "maximum number of rows to print")
	fs.BoolVar(&opts.csv, "csv", false, "write CSV instead of a table")
	return cmd
}

func (a *app) showHistory(ctx context.Context, opts *historyOptions) (err error) {
	if opts.dbPath == "" {
		return &usageError{err: errors.New("--db is required")}
	}
	// Reading history must not create an empty database as a side effect
	if _, err := os.Stat(opts.dbPath); err != nil {
		return &store.OpenError{Path: opts.dbPath, Err: err}
	}

	db, err := store.Open(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	total, err := db.Count(ctx, opts.gameType)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintf(a.stdout, "No %s rows in DB. Run the simulator with --db first.\n", describeType(opts.gameType))
		return nil
	}

	rows, err := db.List(ctx, store.Query{
		Type:      opts.gameType,
		MinTrials: opts.minTrials,
		MaxTrials: opts.maxTrials,
	})
	if err != nil {
		return err
	}

	kept := filterRows(rows, opts)
	fmt.Fprintf(a.stdout, "Rows before filters: %d, after filters: %d\n", total, len(kept))
	if len(kept) == 0 {
		fmt.Fprintln(a.stdout, "No rows left after filters.")
		return nil
	}

	a.logger.Debug("listing history", "path", opts.dbPath, "rows", len(kept))

	if opts.csv {
		return writeHistoryCSV(a.stdout, kept)
	}
	return writeHistoryTable(a.stdout, kept)
}

// filterRows applies the params-based filters and the row limit. Rows whose
// params cannot be decoded are dropped only when a params filter is active.
func filterRows(rows []store.GameRow, opts *historyOptions) []store.GameRow {
	var kept []store.GameRow
	for _, row := range rows {
		params := games.DecodeParams(row.ParamsJSON)
		if opts.sides > 0 {
			if sides, ok := games.ParamInt(params, "sides"); !ok || sides != opts.sides {
				continue
			}
		}
		if opts.payout > 0 {
			if payout, ok := games.ParamFloat(params, "payout"); !ok || payout != opts.payout {
				continue
			}
		}
		kept = append(kept, row)
		if opts.limit > 0 && len(kept) == opts.limit {
			break
		}
	}
	return kept
}

var historyHeader = []string{"id", "created_at", "type", "trials", "hits", "hit_rate", "ev", "seed", "params"}

func historyRecord(row store.GameRow) []string {
	created := ""
	if !row.CreatedAt.IsZero() {
		created = row.CreatedAt.Format("2006-01-02 15:04:05")
	}
	seed := games.DecodeParams(row.ParamsJSON)["seed"]
	return []string{
		strconv.FormatInt(row.ID, 10),
		created,
		row.Type,
		strconv.Itoa(row.Trials),
		strconv.Itoa(row.Hits),
		formatStat(row.HitRate),
		formatStat(row.EV),
		seed,
		row.ParamsJSON,
	}
}

func writeHistoryCSV(w io.Writer, rows []store.GameRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(historyRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeHistoryTable(w io.Writer, rows []store.GameRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTabs(tw, historyHeader)
	for _, row := range rows {
		writeTabs(tw, historyRecord(row))
	}
	return tw.Flush()
}

func writeTabs(w io.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, f)
	}
	fmt.Fprintln(w)
}

func describeType(gameType string) string {
	if gameType == "" {
		return "game"
	}
	return gameType
}
