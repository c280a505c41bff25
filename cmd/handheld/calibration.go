package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld-arcade/internal/storage"
)

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Inspect or forget stored stick calibrations",
	Long: `Stick calibrations are measured on the first session of a profile and
reused afterwards. Use these commands to inspect them or to force the next
session to calibrate again.

Examples:
  handheld calibration show
  handheld calibration reset
  handheld calibration reset pad2`,
}

var calibrationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List stored calibration profiles",
	Args:  cobra.NoArgs,
	Run:   runCalibrationShow,
}

var calibrationResetCmd = &cobra.Command{
	Use:   "reset [profile]",
	Short: "Forget a calibration profile (default: --profile)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runCalibrationReset,
}

func init() {
	calibrationCmd.AddCommand(calibrationShowCmd)
	calibrationCmd.AddCommand(calibrationResetCmd)
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening calibration database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runCalibrationShow(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	profiles, err := store.Profiles()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving profiles: %v\n", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		fmt.Println("No calibrations stored yet.")
		fmt.Println()
		fmt.Println("Play a variant to calibrate the stick.")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-20s  %s\n", "Profile", "X [min..center..max]", "Y [min..center..max]", "Updated")
	fmt.Printf("  %-16s  %-20s  %-20s  %s\n", "-------", "--------------------", "--------------------", "-------")
	for _, p := range profiles {
		fmt.Printf("  %-16s  %-20s  %-20s  %s\n",
			p.Name,
			p.Calibration.X,
			p.Calibration.Y,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func runCalibrationReset(_ *cobra.Command, args []string) {
	profile := flagProfile
	if len(args) == 1 {
		profile = args[0]
	}

	store := mustOpenStore()
	defer store.Close()

	deleted, err := store.DeleteCalibration(profile)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !deleted {
		fmt.Printf("No calibration stored for profile %q.\n", profile)
		return
	}
	fmt.Printf("Calibration for profile %q forgotten; the next session will calibrate.\n", profile)
}
