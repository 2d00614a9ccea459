package game

import "testing"

func TestScorePayoffs(t *testing.T) {
	g := DefaultGame()

	cases := []struct {
		first  Action
		second Action
		want1  float64
		want2  float64
	}{
		{Cooperate, Cooperate, 3, 3},
		{Defect, Defect, 1, 1},
		{Cooperate, Defect, 0, 5},
		{Defect, Cooperate, 5, 0},
	}
	for _, tc := range cases {
		got1, got2 := g.Score(tc.first, tc.second)
		if got1 != tc.want1 || got2 != tc.want2 {
			t.Fatalf("score(%v, %v) = (%g, %g), want (%g, %g)", tc.first, tc.second, got1, got2, tc.want1, tc.want2)
		}
	}
}

func TestActionFlip(t *testing.T) {
	if Flip(Cooperate) != Defect {
		t.Fatal("expected cooperate to flip to defect")
	}
	if Flip(Defect) != Cooperate {
		t.Fatal("expected defect to flip to cooperate")
	}
}

func TestGameFingerprintDistinguishesMatrices(t *testing.T) {
	if DefaultGame().Fingerprint() == (Game{R: 4, P: 1, S: 0, T: 5}).Fingerprint() {
		t.Fatal("expected different fingerprints for different matrices")
	}
}
