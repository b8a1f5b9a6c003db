package entropy

import (
	"context"
	"testing"
)

func TestDefaultCollector_Collect(t *testing.T) {
	c := DefaultCollector{}

	for _, level := range []Level{Fast, Standard, High, Paranoid} {
		t.Run(string(level), func(t *testing.T) {
			got, err := c.Collect(context.Background(), level)
			if err != nil {
				t.Fatalf("Collect(%s) error = %v", level, err)
			}
			if len(got.Bytes) == 0 {
				t.Errorf("Collect(%s) returned no bytes", level)
			}
			if got.Stats.TotalBits != len(got.Bytes)*8 {
				t.Errorf("TotalBits = %d, want %d", got.Stats.TotalBits, len(got.Bytes)*8)
			}
			if got.Stats.Level != level {
				t.Errorf("Stats.Level = %v, want %v", got.Stats.Level, level)
			}
			if len(got.Stats.SourcesUsed) == 0 {
				t.Error("expected at least one source")
			}
		})
	}
}

func TestDefaultCollector_UnknownLevelFallsBackToStandard(t *testing.T) {
	c := DefaultCollector{}
	got, err := c.Collect(context.Background(), Level("unknown"))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got.Stats.Level != Standard {
		t.Errorf("Stats.Level = %v, want %v", got.Stats.Level, Standard)
	}
}
