package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewLogger_Defaults(t *testing.T) {
	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	logger, err := NewLogger(v)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level, format string
	}{
		{level: "debug", format: "json"},
		{level: "warn", format: "console"},
		{level: "error", format: ""},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			v := viper.New()
			v.Set("logging.level", tt.level)
			v.Set("logging.format", tt.format)

			logger, err := NewLogger(v)
			if err != nil {
				t.Fatalf("NewLogger: %v", err)
			}
			if want := tt.level; logger.Level().String() != want {
				t.Errorf("level = %s, want %s", logger.Level(), want)
			}
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "banana")
	v.Set("logging.format", "json")

	_, err := NewLogger(v)
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "info")
	v.Set("logging.format", "xml")

	_, err := NewLogger(v)
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
}
