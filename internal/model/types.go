package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed Case process run.
type RunRecord struct {
	VersionedRecord
	ID            string   `json:"id"`
	Strategies    []string `json:"strategies"`
	Seed          int64    `json:"seed"`
	Turns         int      `json:"turns"`
	MaximumRound  int      `json:"maximum_round"`
	Noise         float64  `json:"noise"`
	NoiseBias     bool     `json:"noise_bias"`
	ProbEnd       float64  `json:"prob_end"`
	ReplaceAmount int      `json:"replace_amount"`
	Rounds        int      `json:"rounds"`
	Reason        string   `json:"reason"`
	Winner        string   `json:"winner,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// SnapshotRecord is a population distribution at the end of one round.
type SnapshotRecord struct {
	Round  int            `json:"round"`
	Counts map[string]int `json:"counts"`
}
