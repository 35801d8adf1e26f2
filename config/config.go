// Package config loads qrs tool settings from defaults, an optional YAML
// file and QRS_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/roduit/EE-512-Biomedical-signal-processing/mwa"
	"github.com/spf13/viper"
)

// Detect holds the qrsdetect settings.
type Detect struct {
	FS          float64
	Detector    string
	MWA         mwa.Method
	Refine      float64
	EngzeeDelay int
	Column      int
}

// Bench holds the qrsbench settings.
type Bench struct {
	FS        float64
	Duration  float64
	HR        float64
	Noise     float64
	Seed      uint64
	Scenario  string
	Tolerance float64
	Workers   int
	MWA       mwa.Method
}

// Load reads configuration from file and environment variables. With an
// empty path, qrs.yaml is searched in . and ./configs; a missing file is not
// an error.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("detect.fs", 360.0)
	v.SetDefault("detect.detector", "all")
	v.SetDefault("detect.mwa", "cumulative")
	v.SetDefault("detect.refine", 0.25)
	v.SetDefault("detect.engzee_delay", 0)
	v.SetDefault("detect.column", 0)

	v.SetDefault("bench.fs", 360.0)
	v.SetDefault("bench.duration", 20.0)
	v.SetDefault("bench.hr", 72.0)
	v.SetDefault("bench.noise", 0.02)
	v.SetDefault("bench.seed", 1)
	v.SetDefault("bench.scenario", "ecg")
	v.SetDefault("bench.tolerance", 0.05)
	v.SetDefault("bench.workers", 4)
	v.SetDefault("bench.mwa", "cumulative")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("qrs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// QRS_DETECT_FS=500
	v.SetEnvPrefix("QRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// DetectConfig extracts and validates the detect section.
func DetectConfig(v *viper.Viper) (Detect, error) {
	m, err := mwa.ParseMethod(v.GetString("detect.mwa"))
	if err != nil {
		return Detect{}, fmt.Errorf("detect.mwa: %w", err)
	}
	c := Detect{
		FS:          v.GetFloat64("detect.fs"),
		Detector:    v.GetString("detect.detector"),
		MWA:         m,
		Refine:      v.GetFloat64("detect.refine"),
		EngzeeDelay: v.GetInt("detect.engzee_delay"),
		Column:      v.GetInt("detect.column"),
	}
	if !(c.FS > 0) {
		return Detect{}, fmt.Errorf("detect.fs must be positive, got %v", c.FS)
	}
	if c.Refine < 0 {
		return Detect{}, fmt.Errorf("detect.refine must not be negative, got %v", c.Refine)
	}
	if c.Column < 0 {
		return Detect{}, fmt.Errorf("detect.column must not be negative, got %d", c.Column)
	}
	return c, nil
}

// BenchConfig extracts and validates the bench section.
func BenchConfig(v *viper.Viper) (Bench, error) {
	m, err := mwa.ParseMethod(v.GetString("bench.mwa"))
	if err != nil {
		return Bench{}, fmt.Errorf("bench.mwa: %w", err)
	}
	c := Bench{
		FS:        v.GetFloat64("bench.fs"),
		Duration:  v.GetFloat64("bench.duration"),
		HR:        v.GetFloat64("bench.hr"),
		Noise:     v.GetFloat64("bench.noise"),
		Seed:      v.GetUint64("bench.seed"),
		Scenario:  v.GetString("bench.scenario"),
		Tolerance: v.GetFloat64("bench.tolerance"),
		Workers:   v.GetInt("bench.workers"),
		MWA:       m,
	}
	switch c.Scenario {
	case "ecg", "pulses":
	default:
		return Bench{}, fmt.Errorf("bench.scenario %q: must be \"ecg\" or \"pulses\"", c.Scenario)
	}
	if !(c.FS > 0) || !(c.Duration > 0) || !(c.HR > 0) {
		return Bench{}, fmt.Errorf("bench: fs, duration and hr must be positive")
	}
	if c.Workers < 1 {
		return Bench{}, fmt.Errorf("bench.workers must be at least 1, got %d", c.Workers)
	}
	return c, nil
}
