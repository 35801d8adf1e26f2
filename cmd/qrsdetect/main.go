// qrsdetect runs QRS detectors over a single-lead ECG stored as text or CSV
// and prints the detected beats, one per line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/roduit/EE-512-Biomedical-signal-processing/config"
	"github.com/roduit/EE-512-Biomedical-signal-processing/detector"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "dev"

// flag name -> config key
var flagKeys = map[string]string{
	"fs":           "detect.fs",
	"detector":     "detect.detector",
	"mwa":          "detect.mwa",
	"refine":       "detect.refine",
	"column":       "detect.column",
	"engzee-delay": "detect.engzee_delay",
	"log-level":    "logging.level",
}

func main() {
	var (
		cfgPath string
		seconds bool
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "qrsdetect [file]",
		Short: "Detect heartbeats in an ECG recording",
		Long: `qrsdetect reads one numeric column from a text or CSV file (or stdin)
and runs one or all of the QRS detectors: Elgendi two-average, Engzee,
Christov, Hamilton, Pan-Tompkins and WQRS.

Beats are printed to stdout as sample indices, or seconds with --seconds.
A heart-rate sparkline per detector is written to stderr.

Settings come from flags, QRS_* environment variables and qrs.yaml.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if list {
				return printList(cmd.OutOrStdout(), v)
			}
			return run(cmd, v, args, seconds)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgPath, "config", "", "config file (default qrs.yaml in . or ./configs)")
	flags.BoolVar(&seconds, "seconds", false, "print beat times in seconds")
	flags.BoolVar(&list, "list", false, "list the registered detectors and exit")
	flags.Float64("fs", 360, "sampling frequency in Hz")
	flags.String("detector", "all", `detector ID or name, or "all"`)
	flags.String("mwa", "cumulative", "moving average: cumulative, convolve or original")
	flags.Float64("refine", detector.DefaultRefineRadius, "R-peak refinement radius in seconds, 0 disables")
	flags.Int("column", 0, "zero-based input column")
	flags.Int("engzee-delay", 0, "sample offset added to Engzee beats")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func printList(w io.Writer, v *viper.Viper) error {
	for _, desc := range detector.New(v.GetFloat64("detect.fs")).List() {
		fmt.Fprintf(w, "%-14s %-30s min %5.2fs  spacing %.2fs\n",
			desc.ID, desc.Name, desc.MinDuration, desc.MinSpacing)
	}
	return nil
}

func run(cmd *cobra.Command, v *viper.Viper, args []string, seconds bool) error {
	cfg, err := config.DetectConfig(v)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in := cmd.InOrStdin()
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	ecg, err := readSignal(in, cfg.Column)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	logger.Info("signal loaded",
		zap.String("source", source),
		zap.Int("samples", len(ecg)),
		zap.Float64("fs", cfg.FS),
		zap.Float64("seconds", float64(len(ecg))/cfg.FS),
	)

	dets := detector.New(cfg.FS,
		detector.WithMWA(cfg.MWA),
		detector.WithEngzeeDelay(cfg.EngzeeDelay),
		detector.WithLogger(logger),
	)

	var selected []detector.Descriptor
	if strings.EqualFold(cfg.Detector, "all") {
		selected = dets.List()
	} else {
		desc, err := dets.Lookup(cfg.Detector)
		if err != nil {
			return err
		}
		selected = []detector.Descriptor{desc}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for _, desc := range selected {
		beats, err := desc.Detect(ecg)
		if err != nil {
			if len(selected) == 1 {
				return err
			}
			logger.Warn("detector failed", zap.String("detector", desc.ID), zap.Error(err))
			continue
		}
		if cfg.Refine > 0 {
			beats = detector.RefinePeaks(ecg, beats, cfg.FS, cfg.Refine)
		}

		if len(selected) > 1 {
			fmt.Fprintf(out, "# %s\n", desc.ID)
		}
		for _, b := range beats {
			if seconds {
				fmt.Fprintf(out, "%.3f\n", float64(b)/cfg.FS)
			} else {
				fmt.Fprintln(out, b)
			}
		}
		fmt.Fprintln(errOut, summary(desc, beats, cfg.FS))
	}
	return nil
}
