package storage

import (
	"errors"
	"testing"

	"github.com/ariefrahman95/Axelrod/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	input := testRunRecord("run-1", "2026-01-02T03:04:05Z")
	data, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.ID != input.ID || output.Seed != input.Seed || output.Reason != input.Reason {
		t.Fatalf("unexpected record: %+v", output)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	record := testRunRecord("run-1", "2026-01-02T03:04:05Z")
	record.SchemaVersion = CurrentSchemaVersion + 1

	data, err := EncodeRun(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestSnapshotCodecRoundTrip(t *testing.T) {
	input := []model.SnapshotRecord{{Round: 2, Counts: map[string]int{"Grudger": 4}}}
	data, err := EncodeSnapshots(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeSnapshots(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(output) != 1 || output[0].Round != 2 || output[0].Counts["Grudger"] != 4 {
		t.Fatalf("unexpected snapshots: %+v", output)
	}
}
