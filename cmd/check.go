package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	checkFile    string
	checkResults string
	checkWorkers int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the registry without downloading anything",
	Long: `Probe every declared extension against the Open VSX registry and
write the availability snapshot. No downloads happen and the download
directory is left untouched.

Examples:
  # Check the default extensions.yaml
  vsx check

  # Check a specific list
  vsx check -f team-extensions.yaml`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "extensions.yaml", "Declared extension list")
	checkCmd.Flags().StringVarP(&checkResults, "results", "r", "results.json", "Availability snapshot path")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "Probe parallelism (1 = sequential)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyPipelineDefaults(cmd, &checkFile, &checkResults, nil)
	if !cmd.Flags().Changed("workers") {
		checkWorkers = appConfig.Workers
	}

	ctx := getContext()
	svc := newSyncService(checkFile, checkResults, appConfig.Ledger)

	probe, err := runProbe(ctx, svc, services.ProbeRequest{
		Workers: checkWorkers,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Extension", Width: 30},
		{Header: "Status", Width: 12},
		{Header: "Download URL"},
	})
	for _, ext := range probe.Results.Available {
		table.AddRow([]string{ext.ID, "available", ui.Truncate(ext.URL, 60)})
	}
	for _, ext := range probe.Results.Unavailable {
		table.AddRow([]string{ext.ID, "unavailable", ""})
	}
	fmt.Print(table.Render())

	availableCount, unavailableCount := probe.Results.Counts()
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Available", ui.StyleSuccess.Render(fmt.Sprintf("%d", availableCount))))
	fmt.Println(ui.RenderKeyValue("Unavailable", ui.StyleWarning.Render(fmt.Sprintf("%d", unavailableCount))))
	fmt.Println(ui.FormatMuted("Snapshot written to " + checkResults))

	return nil
}
