package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/handheld-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from an interactive menu",
	Long: `Open the simulator on a variant picker.

Finished sessions drop back to the picker, which shows the best score,
the number of rounds and why the session ended. Tab lists the stored
calibration profiles, where x deletes the highlighted one.

Picker keys:
  up/down, w/s, k/j   move
  enter, space        play
  tab, c              calibration profiles
  q, esc              quit

Examples:
  handheld menu
  handheld menu --difficulty easy --profile alice
  handheld menu --db ./handheld.db --log ./engine.log`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := tui.Config{
		Engine:  engineCfg,
		Logger:  logger,
		Store:   store,
		Profile: flagProfile,
		Seed:    flagSeed,
	}
	if err := tui.RunMenu(ctx, cfg, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
