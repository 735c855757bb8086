package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	ledgerStatus  string
	ledgerSortBy  string
	ledgerReverse bool
	ledgerPath    string
)

// ledgerCmd represents the ledger command
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List recorded download attempts",
	Long: `List the download-attempt records the sync pipeline keeps per
extension, with filtering and sorting.

Examples:
  # All records
  vsx ledger

  # Only failed attempts, newest first
  vsx ledger --status failed --reverse

  # Sort by identifier
  vsx ledger --sort id`,
	RunE: runLedger,
}

func init() {
	ledgerCmd.Flags().StringVar(&ledgerStatus, "status", "all", "Filter by outcome (all, ok, failed)")
	// Sort defaults to "date", but we handle config override in runLedger
	ledgerCmd.Flags().StringVar(&ledgerSortBy, "sort", "date", "Sort by field (date, id)")
	ledgerCmd.Flags().BoolVar(&ledgerReverse, "reverse", false, "Reverse sort order")
	ledgerCmd.Flags().StringVar(&ledgerPath, "ledger", "downloads.json", "Ledger file path")
}

func runLedger(cmd *cobra.Command, args []string) error {
	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("sort") {
		ledgerSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		ledgerReverse = appConfig.ReverseSort
	}
	if !cmd.Flags().Changed("ledger") {
		ledgerPath = appConfig.Ledger
	}

	req := services.LedgerListRequest{
		Status:  ledgerStatus,
		SortBy:  ledgerSortBy,
		Reverse: ledgerReverse,
	}

	ctx := getContext()
	resp, err := newLedgerService(ledgerPath).Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read the ledger"))
		return err
	}

	if resp.Total == 0 {
		if ledgerStatus != "" && ledgerStatus != services.StatusAll {
			fmt.Println(ui.FormatWarning("No records with status: " + ledgerStatus))
		} else {
			fmt.Println(ui.FormatWarning("No download records yet"))
			fmt.Println(ui.FormatInfo("Run a sync to create some: vsx sync"))
		}
		return nil
	}

	if ledgerStatus != "" && ledgerStatus != services.StatusAll {
		fmt.Println(ui.FormatTitle(fmt.Sprintf("Download records (%s)", ledgerStatus)))
	} else {
		fmt.Println(ui.FormatTitle("Download records"))
	}
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Extension", Width: 30, Align: "left"},
		{Header: "Status", Width: 10, Align: "left"},
		{Header: "Date", Width: 18, Align: "left"},
		{Header: "File", Width: 30, Align: "left"},
	})

	for _, record := range resp.Records {
		status := "ok"
		if !record.Success {
			status = "failed"
		}
		table.AddRow([]string{
			ui.Truncate(record.ID, 30),
			status,
			record.DisplayTimestamp(),
			ui.Truncate(record.FileName, 30),
		})
	}

	fmt.Print(table.Render())
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d records", resp.Total)))

	return nil
}
