package storage

import (
	"context"

	"github.com/ariefrahman95/Axelrod/internal/model"
)

// Store defines persistence operations for Case process runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveScoreHistory(ctx context.Context, runID string, history [][]float64) error
	GetScoreHistory(ctx context.Context, runID string) ([][]float64, bool, error)
	SaveSnapshots(ctx context.Context, runID string, snapshots []model.SnapshotRecord) error
	GetSnapshots(ctx context.Context, runID string) ([]model.SnapshotRecord, bool, error)
}
