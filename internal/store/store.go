// Package store persists impact run history in a local database.
package store

import (
	"context"
	"time"
)

// Run is one recorded impact-function invocation.
type Run struct {
	ID        string    `json:"id"`
	Function  string    `json:"function"`
	Hazard    string    `json:"hazard"`
	Exposure  string    `json:"exposure"`
	Evacuated int       `json:"evacuated"`
	Summary   string    `json:"summary"`
	TableJSON string    `json:"table_json,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the run-history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Migrate(ctx context.Context) error
	Close() error
}
