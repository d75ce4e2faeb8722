package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleCSV = `date,open,high,low,close,volume
2025-01-02,100.0,102.0,99.0,101.0,10000
2025-01-03,101.0,103.5,100.5,103.0,12000
2025-01-06,103.0,104.0,101.0,102.0,9000
bad-date,1,2,3,4,5
2025-01-07,102.0,not-a-number,101.0,102.5,8000
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLocalCSVGetDailyBars(t *testing.T) {
	prov := NewLocalCSVProvider(writeSample(t), nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	bars, err := prov.GetDailyBars("aapl", from, to)
	if err != nil {
		t.Fatal(err)
	}
	// Two malformed rows are skipped.
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	if bars[0].Close != 101.0 || bars[2].Close != 102.0 {
		t.Fatalf("unexpected closes: %v", Closes(bars))
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			t.Fatal("bars not sorted ascending")
		}
	}
}

func TestLocalCSVDateFilter(t *testing.T) {
	prov := NewLocalCSVProvider(writeSample(t), nil)

	from := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	bars, err := prov.GetDailyBars("AAPL", from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 || bars[0].Close != 103.0 {
		t.Fatalf("unexpected filtered bars: %+v", bars)
	}
}

func TestLocalCSVLatestClose(t *testing.T) {
	prov := NewLocalCSVProvider(writeSample(t), nil)
	close, err := prov.LatestClose("AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if close != 102.0 {
		t.Fatalf("latest close = %g, want 102", close)
	}
}

func TestLocalCSVFallsBackToSecondary(t *testing.T) {
	secondary := NewSyntheticProvider(7)
	prov := NewLocalCSVProvider(t.TempDir(), secondary)

	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // Monday
	to := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	bars, err := prov.GetDailyBars("MISSING", from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 5 {
		t.Fatalf("got %d synthetic bars, want 5 weekdays", len(bars))
	}
}

func TestLocalCSVMissingNoSecondary(t *testing.T) {
	prov := NewLocalCSVProvider(t.TempDir(), nil)
	if _, err := prov.GetDailyBars("MISSING", time.Now().AddDate(0, -1, 0), time.Now()); err == nil {
		t.Fatal("expected error for missing file without secondary")
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	a, _ := NewSyntheticProvider(42).GetDailyBars("X", from, to)
	b, _ := NewSyntheticProvider(42).GetDailyBars("X", from, to)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bar %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
