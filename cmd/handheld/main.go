// handheld runs the handheld arcade engine on a simulated device.
//
// Usage:
//
//	handheld list                 - List available variants
//	handheld play <variant>       - Play a variant in the terminal
//	handheld play <variant> -w    - Play a variant in a desktop window
//	handheld menu                 - Pick variants interactively
//	handheld serve                - Start SSH server for remote play
//	handheld calibration show     - Show stored stick calibrations
//	handheld calibration reset    - Forget a stored calibration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible waves and mazes
//	--db <path>           - Calibration database (default: ~/.handheld/handheld.db)
//	--config <path>       - Engine tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write the engine log to a file
//	--profile <name>      - Calibration profile (default: default)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/handheld-arcade/internal/games/lanes"
	_ "github.com/vovakirdan/handheld-arcade/internal/games/maze"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagDebug      bool
	flagProfile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "handheld",
	Short: "Handheld arcade - a real-time game engine for a 240x135 handheld",
	Long: `Handheld arcade runs the engine of a small joystick-driven handheld
on a simulated device: a 240x135 framebuffer, a 12-bit analog stick and
Fire/Back buttons.

Available commands:
  list         - Show all available variants
  play         - Play a specific variant directly
  menu         - Interactive variant picker
  serve        - Start SSH server for remote play
  calibration  - Inspect or forget stored stick calibrations

Examples:
  handheld list
  handheld play lanes
  handheld play maze --window
  handheld menu --difficulty hard
  handheld serve --ssh :2222
  handheld calibration show`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.handheld/handheld.db", "Path to calibration database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write the engine log to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Calibration profile name")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calibrationCmd)
}

// loadEngineConfig loads the tuning file and applies the difficulty preset.
func loadEngineConfig() (config.EngineConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.EngineConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.EngineConfig{}, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger builds the engine logger. Interactive commands must not write
// to the terminal they draw on, so without --log they pass io.Discard.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closer := func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "handheld",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openStore opens the calibration database. Failure is not fatal: sessions
// then calibrate every time.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open calibration database: %v\n", err)
		return nil
	}
	return store
}
