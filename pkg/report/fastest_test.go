package report

import "testing"

func TestFastest(t *testing.T) {
	rows := Fastest(Summarize(testMeasurements()))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// random: largest n is 600; hybrid_20 mean 2.5 beats standard 25
	if rows[0].ArrayType != "random" || rows[0].N != 600 || rows[0].Label() != "hybrid_20" {
		t.Errorf("random winner = %s n=%d %s", rows[0].ArrayType, rows[0].N, rows[0].Label())
	}
	// reverse_sorted: standard mean 12 beats hybrid_20 mean 29.5
	if rows[1].ArrayType != "reverse_sorted" || rows[1].Label() != "standard" {
		t.Errorf("reverse_sorted winner = %s %s", rows[1].ArrayType, rows[1].Label())
	}
}

func TestFastest_Empty(t *testing.T) {
	if got := Fastest(nil); len(got) != 0 {
		t.Errorf("Fastest(nil) = %v, want empty", got)
	}
}
