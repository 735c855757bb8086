package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	cleanOutputDir string
	cleanResults   string
	cleanLedger    bool
	cleanForce     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove downloaded files and the availability snapshot",
	Long: `Remove the run outputs: the download directory and the availability
snapshot. The download ledger is kept unless --ledger is given, so the
attempt history survives routine cleanups.

Examples:
  # Remove downloads/ and results.json after confirmation
  vsx clean

  # Also wipe the download history
  vsx clean --ledger

  # No questions asked
  vsx clean --force`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutputDir, "output-dir", "o", "downloads", "Download directory")
	cleanCmd.Flags().StringVarP(&cleanResults, "results", "r", "results.json", "Availability snapshot path")
	cleanCmd.Flags().BoolVar(&cleanLedger, "ledger", false, "Also remove the download ledger")
	cleanCmd.Flags().BoolVar(&cleanForce, "force", false, "Skip confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("output-dir") {
		cleanOutputDir = appConfig.OutputDir
	}
	if !cmd.Flags().Changed("results") {
		cleanResults = appConfig.Results
	}

	targets := []string{cleanOutputDir, cleanResults}
	if cleanLedger {
		targets = append(targets, appConfig.Ledger)
	}

	fmt.Println(ui.FormatWarning("This will remove:"))
	fmt.Print(ui.RenderSimpleList(targets))
	fmt.Println()

	if !cleanForce {
		if !confirm("Continue?") {
			fmt.Println(ui.FormatInfo("Clean cancelled."))
			return nil
		}
		fmt.Println()
	}

	for _, target := range targets {
		removed, err := removeTarget(target)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to remove " + target))
			return err
		}

		if removed {
			fmt.Println(ui.FormatSuccess("removed " + target))
		} else {
			fmt.Println(ui.FormatMuted("skipped " + target + " (not found)"))
		}
	}

	return nil
}

// removeTarget deletes a file or directory, reporting whether it
// existed at all
func removeTarget(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}
