package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ariefrahman95/Axelrod/internal/model"
)

const runIndexFile = "run_index.json"

type RunConfig struct {
	RunID         string   `json:"run_id"`
	Strategies    []string `json:"strategies"`
	Seed          int64    `json:"seed"`
	Turns         int      `json:"turns"`
	MaximumRound  int      `json:"maximum_round"`
	Noise         float64  `json:"noise"`
	NoiseBias     bool     `json:"noise_bias"`
	ProbEnd       float64  `json:"prob_end"`
	ReplaceAmount int      `json:"replace_amount"`
	Workers       int      `json:"workers"`
}

type RunOutcome struct {
	Reason string `json:"reason"`
	Winner string `json:"winner,omitempty"`
	Rounds int    `json:"rounds"`
}

type RunArtifacts struct {
	Config       RunConfig              `json:"config"`
	ScoreHistory [][]float64            `json:"score_history"`
	Populations  []model.SnapshotRecord `json:"populations"`
	Outcome      RunOutcome             `json:"outcome"`
}

type RunIndexEntry struct {
	RunID        string `json:"run_id"`
	Strategies   int    `json:"strategies"`
	Seed         int64  `json:"seed"`
	Rounds       int    `json:"rounds"`
	Reason       string `json:"reason"`
	Winner       string `json:"winner,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "score_history.json"), artifacts.ScoreHistory); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "populations.json"), artifacts.Populations); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "outcome.json"), artifacts.Outcome); err != nil {
		return "", err
	}
	if err := writePopulationSeries(runDir, artifacts.Populations); err != nil {
		return "", err
	}

	return runDir, nil
}

func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	files := []string{"config.json", "score_history.json", "populations.json", "outcome.json", "population_series.csv"}
	for _, file := range files {
		if err := copyFile(filepath.Join(src, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	path := filepath.Join(baseDir, runID, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunConfig{}, false, nil
		}
		return RunConfig{}, false, err
	}

	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, false, err
	}
	return cfg, true, nil
}

func ReadRunOutcome(baseDir, runID string) (RunOutcome, bool, error) {
	path := filepath.Join(baseDir, runID, "outcome.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunOutcome{}, false, nil
		}
		return RunOutcome{}, false, err
	}

	var outcome RunOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return RunOutcome{}, false, err
	}
	return outcome, true, nil
}

// writePopulationSeries flattens the snapshot history into a per-round CSV
// with one column per strategy name seen anywhere in the run.
func writePopulationSeries(runDir string, snapshots []model.SnapshotRecord) error {
	names := make(map[string]struct{})
	for _, snapshot := range snapshots {
		for name := range snapshot.Counts {
			names[name] = struct{}{}
		}
	}
	columns := make([]string, 0, len(names))
	for name := range names {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	path := filepath.Join(runDir, "population_series.csv")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := append([]string{"round"}, columns...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(snapshot.Round))
		for _, name := range columns {
			row = append(row, strconv.Itoa(snapshot.Counts[name]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
