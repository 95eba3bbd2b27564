package experiment

import (
	"errors"
	"testing"

	"github.com/eunmann/mergebench/pkg/sortkernel"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MinSize != 500 || cfg.MaxSize != 100000 || cfg.Step != 100 {
		t.Errorf("size grid = %d..%d step %d", cfg.MinSize, cfg.MaxSize, cfg.Step)
	}
	if cfg.Runs != 5 {
		t.Errorf("Runs = %d, want 5", cfg.Runs)
	}
	if diff := cmp.Diff([]int{5, 10, 20, 30, 50}, cfg.Thresholds); diff != "" {
		t.Errorf("Thresholds mismatch (-want +got):\n%s", diff)
	}

	// Defaults must not alias the package slice.
	cfg.Thresholds[0] = 99
	if DefaultThresholds[0] != 5 {
		t.Error("DefaultConfig aliases DefaultThresholds")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min above max", func(c *Config) { c.MinSize, c.MaxSize = 200, 100 }},
		{"zero min", func(c *Config) { c.MinSize = 0 }},
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"negative step", func(c *Config) { c.Step = -5 }},
		{"zero threshold", func(c *Config) { c.Thresholds = []int{5, 0} }},
		{"negative threshold", func(c *Config) { c.Thresholds = []int{-1} }},
		{"hybrid without thresholds", func(c *Config) { c.Thresholds = nil }},
		{"no variants", func(c *Config) { c.RunStandard, c.RunHybrid = false, false }},
		{"negative progress", func(c *Config) { c.ProgressEvery = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigValidate_StandardOnlyIgnoresThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunHybrid = false
	cfg.Thresholds = []int{0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		name           string
		min, max, step int
		want           []int
	}{
		{"exact", 10, 30, 10, []int{10, 20, 30}},
		{"overshoot", 10, 35, 10, []int{10, 20, 30}},
		{"single", 7, 7, 100, []int{7}},
		{"invalid", 10, 5, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MinSize: tt.min, MaxSize: tt.max, Step: tt.step}
			if diff := cmp.Diff(tt.want, cfg.Sizes()); diff != "" {
				t.Errorf("Sizes() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVariants(t *testing.T) {
	cfg := Config{Thresholds: []int{20, 5}, RunStandard: true, RunHybrid: true}
	want := []sortkernel.Variant{
		sortkernel.StandardVariant(),
		sortkernel.HybridVariant(20),
		sortkernel.HybridVariant(5),
	}
	if diff := cmp.Diff(want, cfg.Variants()); diff != "" {
		t.Errorf("Variants() mismatch (-want +got):\n%s", diff)
	}

	cfg.RunStandard = false
	if got := len(cfg.Variants()); got != 2 {
		t.Errorf("hybrid-only variants = %d, want 2", got)
	}

	cfg.RunStandard, cfg.RunHybrid = true, false
	if diff := cmp.Diff([]sortkernel.Variant{sortkernel.StandardVariant()}, cfg.Variants()); diff != "" {
		t.Errorf("standard-only mismatch (-want +got):\n%s", diff)
	}
}
