// Package main provides the CLI entrypoint for pointspeed.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/pointspeed/internal/config"
	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/tui"
	"github.com/verte-zerg/pointspeed/internal/window"
)

const (
	defaultDelay       = 0.2
	defaultTargetSize  = 20
	defaultTrials      = 5
	defaultIgnoreFirst = 3
	defaultCellSize    = 3
	defaultFrameRate   = 60
)

var (
	expDelay       float64
	expTargetSize  int
	expTrials      int
	expIgnoreFirst int
	expWidth       int
	expHeight      int
	expWindowed    bool
	expSeed        int64

	termTargetSize int
	termFrameRate  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pointspeed",
		Short:         "Measure mouse pointing speed",
		Long:          "Shows targets at random positions and prints, per trial, the distance to the target and the time taken to click it.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runWindowCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&expDelay, "delay", defaultDelay, "seconds the mouse must rest before a target appears")
	flags.IntVar(&expTrials, "trials", defaultTrials, "number of measured trials")
	flags.IntVar(&expIgnoreFirst, "ignore-first", defaultIgnoreFirst, "number of warm-up targets before measuring")
	flags.Int64Var(&expSeed, "seed", 0, "random seed for target placement (0: time based)")

	rootCmd.Flags().IntVar(&expTargetSize, "target-size", defaultTargetSize, "target size in pixels")
	rootCmd.Flags().IntVar(&expWidth, "width", 0, "window width in pixels (default: monitor width)")
	rootCmd.Flags().IntVar(&expHeight, "height", 0, "window height in pixels (default: monitor height)")
	rootCmd.Flags().BoolVar(&expWindowed, "windowed", false, "run in a window instead of fullscreen")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runWindowCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadExperimentConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "target-size", &expTargetSize, fileCfg.Experiment.TargetSize)
	applyIntConfig(cmd, "width", &expWidth, fileCfg.Experiment.Width)
	applyIntConfig(cmd, "height", &expHeight, fileCfg.Experiment.Height)
	applyBoolConfig(cmd, "windowed", &expWindowed, fileCfg.Experiment.Windowed)

	exp := buildExperiment()
	exp.TargetSize = expTargetSize
	exp.Bounds = model.Bounds{Width: expWidth, Height: expHeight}
	if err := validateExperiment(exp); err != nil {
		return err
	}
	if (expWidth > 0) != (expHeight > 0) {
		return fmt.Errorf("--width and --height must be set together")
	}

	return window.Run(window.Options{
		Experiment: exp,
		Windowed:   expWindowed,
		Out:        cmd.OutOrStdout(),
	})
}

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the measurement in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
	cmd.Flags().IntVar(&termTargetSize, "target-size", defaultCellSize, "target size in terminal cells")
	cmd.Flags().IntVar(&termFrameRate, "frame-rate", defaultFrameRate, "frames per second")
	return cmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadExperimentConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "target-size", &termTargetSize, fileCfg.Terminal.TargetSize)
	applyIntConfig(cmd, "frame-rate", &termFrameRate, fileCfg.Terminal.FrameRate)

	exp := buildExperiment()
	exp.TargetSize = termTargetSize
	if err := validateExperiment(exp); err != nil {
		return err
	}
	if termFrameRate <= 0 {
		return fmt.Errorf("--frame-rate must be > 0")
	}

	return tui.Run(tui.Options{
		Experiment: exp,
		Terminal: model.TerminalConfig{
			TargetSize: termTargetSize,
			FrameRate:  termFrameRate,
		},
		Out: cmd.OutOrStdout(),
	})
}

// loadExperimentConfig reads the config file and applies the settings shared
// by every frontend.
func loadExperimentConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "delay", &expDelay, fileCfg.Experiment.Delay)
	applyIntConfig(cmd, "trials", &expTrials, fileCfg.Experiment.Trials)
	applyIntConfig(cmd, "ignore-first", &expIgnoreFirst, fileCfg.Experiment.IgnoreFirst)
	applyInt64Config(cmd, "seed", &expSeed, fileCfg.Experiment.Seed)
	return fileCfg, nil
}

func buildExperiment() model.Experiment {
	return model.Experiment{
		Delay:       time.Duration(expDelay * float64(time.Second)),
		Trials:      expTrials,
		IgnoreFirst: expIgnoreFirst,
		Seed:        expSeed,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrf("Wrote %s\n", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pointspeed configuration
# Uncomment a value to enable it. CLI flags override config values.

[experiment]
# delay = %.2f            # Seconds the mouse must rest before a target appears
# target-size = %d        # Target size in pixels
# trials = %d              # Number of measured trials
# ignore-first = %d        # Number of warm-up targets before measuring
# width = 1920            # Window width in pixels (default: monitor width)
# height = 1080           # Window height in pixels (default: monitor height)
# windowed = false        # Run in a window instead of fullscreen
# seed = 0                # Random seed for target placement (0: time based)

[terminal]
# target-size = %d         # Target size in terminal cells
# frame-rate = %d         # Frames per second
`,
		defaultDelay,
		defaultTargetSize,
		defaultTrials,
		defaultIgnoreFirst,
		defaultCellSize,
		defaultFrameRate,
	)
}

func validateExperiment(exp model.Experiment) error {
	if exp.Delay < 0 {
		return fmt.Errorf("--delay must be >= 0")
	}
	if exp.TargetSize <= 0 {
		return fmt.Errorf("--target-size must be > 0")
	}
	if exp.Trials <= 0 {
		return fmt.Errorf("--trials must be > 0")
	}
	if exp.IgnoreFirst < 0 {
		return fmt.Errorf("--ignore-first must be >= 0")
	}
	if exp.Bounds.Width < 0 || exp.Bounds.Height < 0 {
		return fmt.Errorf("--width and --height must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
