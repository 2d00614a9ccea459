package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/ariefrahman95/Axelrod/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]model.RunRecord
	history   map[string][][]float64
	snapshots map[string][]model.SnapshotRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.RunRecord)
	s.history = make(map[string][][]float64)
	s.snapshots = make(map[string][]model.SnapshotRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.Strategies = append([]string(nil), run.Strategies...)
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if ok {
		run.Strategies = append([]string(nil), run.Strategies...)
	}
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		run.Strategies = append([]string(nil), run.Strategies...)
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt != runs[j].CreatedAt {
			return runs[i].CreatedAt > runs[j].CreatedAt
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *MemoryStore) SaveScoreHistory(_ context.Context, runID string, history [][]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([][]float64, 0, len(history))
	for _, scores := range history {
		copied = append(copied, append([]float64(nil), scores...))
	}
	s.history[runID] = copied
	return nil
}

func (s *MemoryStore) GetScoreHistory(_ context.Context, runID string) ([][]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([][]float64, 0, len(history))
	for _, scores := range history {
		copied = append(copied, append([]float64(nil), scores...))
	}
	return copied, true, nil
}

func (s *MemoryStore) SaveSnapshots(_ context.Context, runID string, snapshots []model.SnapshotRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[runID] = copySnapshots(snapshots)
	return nil
}

func (s *MemoryStore) GetSnapshots(_ context.Context, runID string) ([]model.SnapshotRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots, ok := s.snapshots[runID]
	if !ok {
		return nil, false, nil
	}
	return copySnapshots(snapshots), true, nil
}

func copySnapshots(snapshots []model.SnapshotRecord) []model.SnapshotRecord {
	copied := make([]model.SnapshotRecord, 0, len(snapshots))
	for _, snapshot := range snapshots {
		counts := make(map[string]int, len(snapshot.Counts))
		for name, count := range snapshot.Counts {
			counts[name] = count
		}
		copied = append(copied, model.SnapshotRecord{Round: snapshot.Round, Counts: counts})
	}
	return copied
}
