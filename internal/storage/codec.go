package storage

import (
	"encoding/json"
	"errors"

	"github.com/ariefrahman95/Axelrod/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeScoreHistory(history [][]float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeScoreHistory(data []byte) ([][]float64, error) {
	var history [][]float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func EncodeSnapshots(snapshots []model.SnapshotRecord) ([]byte, error) {
	return json.Marshal(snapshots)
}

func DecodeSnapshots(data []byte) ([]model.SnapshotRecord, error) {
	var snapshots []model.SnapshotRecord
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
