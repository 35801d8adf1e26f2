package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roduit/EE-512-Biomedical-signal-processing/mwa"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d, err := DetectConfig(v)
	if err != nil {
		t.Fatalf("DetectConfig: %v", err)
	}
	if d.FS != 360 || d.Detector != "all" || d.MWA != mwa.Cumulative || d.Refine != 0.25 {
		t.Errorf("detect defaults = %+v", d)
	}

	b, err := BenchConfig(v)
	if err != nil {
		t.Fatalf("BenchConfig: %v", err)
	}
	if b.Scenario != "ecg" || b.Workers != 4 || b.Duration != 20 || b.Seed != 1 {
		t.Errorf("bench defaults = %+v", b)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QRS_DETECT_FS", "500")
	t.Setenv("QRS_DETECT_MWA", "convolve")
	t.Setenv("QRS_BENCH_WORKERS", "2")

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, err := DetectConfig(v)
	if err != nil {
		t.Fatalf("DetectConfig: %v", err)
	}
	if d.FS != 500 {
		t.Errorf("FS = %v, want 500", d.FS)
	}
	if d.MWA != mwa.Convolve {
		t.Errorf("MWA = %v, want convolve", d.MWA)
	}
	b, err := BenchConfig(v)
	if err != nil {
		t.Fatalf("BenchConfig: %v", err)
	}
	if b.Workers != 2 {
		t.Errorf("Workers = %d, want 2", b.Workers)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrs.yaml")
	body := []byte(`
logging:
  level: debug
detect:
  fs: 250
  detector: hamilton
bench:
  scenario: pulses
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetString("logging.level"); got != "debug" {
		t.Errorf("logging.level = %q, want debug", got)
	}
	d, err := DetectConfig(v)
	if err != nil {
		t.Fatalf("DetectConfig: %v", err)
	}
	if d.FS != 250 || d.Detector != "hamilton" {
		t.Errorf("detect = %+v", d)
	}
	// Unset keys keep their defaults.
	if d.MWA != mwa.Cumulative {
		t.Errorf("MWA = %v, want default", d.MWA)
	}
	b, err := BenchConfig(v)
	if err != nil {
		t.Fatalf("BenchConfig: %v", err)
	}
	if b.Scenario != "pulses" {
		t.Errorf("scenario = %q, want pulses", b.Scenario)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDetectConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "unknown mwa", key: "detect.mwa", value: "median"},
		{name: "zero fs", key: "detect.fs", value: "0"},
		{name: "negative refine", key: "detect.refine", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			v.Set(tt.key, tt.value)
			if _, err := DetectConfig(v); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}

	v, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	v.Set("detect.mwa", "median")
	if _, err := DetectConfig(v); !errors.Is(err, mwa.ErrUnknownMethod) {
		t.Errorf("error = %v, want mwa.ErrUnknownMethod", err)
	}
}

func TestBenchConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key string
		value     any
	}{
		{name: "scenario", key: "bench.scenario", value: "sine"},
		{name: "workers", key: "bench.workers", value: 0},
		{name: "duration", key: "bench.duration", value: -1.0},
		{name: "mwa", key: "bench.mwa", value: "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			v.Set(tt.key, tt.value)
			if _, err := BenchConfig(v); err == nil {
				t.Fatalf("expected error for %s=%v", tt.key, tt.value)
			}
		})
	}
}
