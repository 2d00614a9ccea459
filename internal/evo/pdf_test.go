package evo

import (
	"math/rand"
	"testing"
)

func TestNewPdfRejectsBadWeights(t *testing.T) {
	if _, err := NewPdf(map[Outcome]float64{{First: 1, Second: 1}: -2}); err == nil {
		t.Fatal("expected error for negative weight")
	}
	if _, err := NewPdf(map[Outcome]float64{{First: 1, Second: 1}: 0}); err == nil {
		t.Fatal("expected error for zero total weight")
	}
	if _, err := NewPdf(nil); err == nil {
		t.Fatal("expected error for empty distribution")
	}
}

func TestPdfPointMassAlwaysSamplesSame(t *testing.T) {
	pdf, err := NewPdf(map[Outcome]float64{{First: 3, Second: 3}: 1})
	if err != nil {
		t.Fatalf("new pdf: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if got := pdf.Sample(rng); got.First != 3 || got.Second != 3 {
			t.Fatalf("unexpected sample: %+v", got)
		}
	}
}

func TestPdfSamplesInProportion(t *testing.T) {
	pdf, err := NewPdf(map[Outcome]float64{
		{First: 0, Second: 5}: 1,
		{First: 3, Second: 3}: 3,
	})
	if err != nil {
		t.Fatalf("new pdf: %v", err)
	}

	rng := rand.New(rand.NewSource(9))
	mutual := 0
	for i := 0; i < 4000; i++ {
		if pdf.Sample(rng).First == 3 {
			mutual++
		}
	}
	if mutual < 2800 || mutual > 3200 {
		t.Fatalf("expected roughly 3000 mutual outcomes out of 4000, got %d", mutual)
	}
}
