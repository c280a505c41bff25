package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/platform/tui"
	"github.com/vovakirdan/handheld-arcade/internal/platform/window"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

var (
	flagWindow      bool
	flagZoom        int
	flagRecalibrate bool
	flagFPS         int
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant on a simulated handheld.

The first session on a profile calibrates the stick: leave it centered,
then move it to every extreme while the sweep banner is shown. The result
is stored and reused by later sessions on the same profile.

Terminal controls:
  Arrows/WASD  - Deflect the stick
  Space/F      - Fire
  Esc/B        - Back (exit the session)
  Q/Ctrl+C     - Quit

Window controls (--window):
  Gamepad left stick, button 0 fire, button 1 back
  Keyboard as above

Examples:
  handheld play lanes
  handheld play maze --difficulty hard
  handheld play lanes --window --zoom 5
  handheld play lanes --profile pad2 --recalibrate`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&flagWindow, "window", "w", false, "Play in a desktop window")
	playCmd.Flags().IntVar(&flagZoom, "zoom", 0, "Window scale (window mode)")
	playCmd.Flags().BoolVar(&flagRecalibrate, "recalibrate", false, "Calibrate even if the profile is stored")
	playCmd.Flags().IntVar(&flagFPS, "fps", tui.DefaultFPS, "Terminal refresh rate")
}

// lookup returns the registry entry for id.
func lookup(id string) (registry.VariantInfo, bool) {
	for _, v := range registry.List() {
		if v.ID == id {
			return v, true
		}
	}
	return registry.VariantInfo{}, false
}

func runPlay(cmd *cobra.Command, args []string) {
	info, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'handheld list' to see available variants.")
		os.Exit(1)
	}

	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The window host leaves the terminal free, so it may log to stderr.
	var fallback io.Writer = io.Discard
	if flagWindow {
		fallback = os.Stderr
	}
	logger, closeLog, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var res engine.Result
	var runErr error
	if flagWindow {
		res, runErr = window.Run(ctx, info, window.Config{
			Engine:      engineCfg,
			Logger:      logger,
			Store:       store,
			Profile:     flagProfile,
			Recalibrate: flagRecalibrate,
			Seed:        flagSeed,
			Zoom:        flagZoom,
		})
	} else {
		res, runErr = tui.Run(ctx, info, tui.Config{
			Engine:      engineCfg,
			Logger:      logger,
			Store:       store,
			Profile:     flagProfile,
			Recalibrate: flagRecalibrate,
			Seed:        flagSeed,
			FPS:         flagFPS,
		})
	}

	stop()
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", info.ID, runErr)
		os.Exit(1)
	}
	fmt.Printf("%s: best %d over %d round(s) (%s)\n", info.Title, res.Best, res.Rounds, res.Reason)
}
