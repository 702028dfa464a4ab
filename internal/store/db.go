package store

import (
	"context"
	"time"

	"github.com/MJE43/casino-sim/internal/sim"
)

// DB is the result store
type DB interface {
	Close() error
	Migrate(ctx context.Context) error
	Insert(ctx context.Context, row *GameRow) (int64, error)
	Latest(ctx context.Context, gameType string) (*GameRow, error)
	List(ctx context.Context, query Query) ([]GameRow, error)
	Count(ctx context.Context, gameType string) (int, error)
}

// Query filters stored runs. Zero values disable a filter.
type Query struct {
	Type      string `json:"type,omitempty"`
	MinTrials int    `json:"minTrials,omitempty"`
	MaxTrials int    `json:"maxTrials,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// GameRow is one stored run summary
type GameRow struct {
	ID            int64     `json:"id" db:"id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Type          string    `json:"type" db:"type"`
	ParamsJSON    string    `json:"params_json" db:"params_json"`
	Trials        int       `json:"trials" db:"trials"`
	Hits          int       `json:"hits" db:"hits"`
	HitRate       float64   `json:"hit_rate" db:"hit_rate"`
	EV            float64   `json:"ev" db:"ev"`
	RunID         string    `json:"run_id" db:"run_id"`                 // empty for rows written by older tools
	EngineVersion string    `json:"engine_version" db:"engine_version"` // empty for rows written by older tools
}

// RowFromSummary maps a run summary onto a row
func RowFromSummary(s *sim.Summary) *GameRow {
	return &GameRow{
		Type:          s.Game,
		ParamsJSON:    s.Params,
		Trials:        s.Trials,
		Hits:          s.Hits,
		HitRate:       s.HitRate,
		EV:            s.ExpectedValue,
		RunID:         s.RunID,
		EngineVersion: s.EngineVersion,
	}
}
