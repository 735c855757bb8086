package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/download"
	"github.com/kamal-hamza/vsx-cli/internal/adapters/registry"
	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/config"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
	"github.com/kamal-hamza/vsx-cli/pkg/workspace"
)

var (
	// Global workspace and config
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vsx",
	Short: "VSX - editor extension sync",
	Long: ui.StyleTitle.Render("VSX") + " - Extension Sync\n\n" +
		"Reconciles a declared list of editor extensions against the Open VSX\n" +
		"registry and fetches the rest from the Visual Studio Marketplace.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the workspace and user config for every command
func initializeApp(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	appWorkspace = ws

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	return nil
}

// newSyncService wires the full pipeline against the given paths
func newSyncService(file, resultsPath, ledgerPath string) *services.SyncService {
	return services.NewSyncService(
		repository.NewFileExtensionSource(file),
		registry.NewOpenVSXResolver(appConfig.Registry),
		download.NewHTTPFetcher(),
		repository.NewFileLedgerRepository(ledgerPath),
		repository.NewFileResultsRepository(resultsPath),
	)
}

// newLedgerService wires record listing against the given ledger path
func newLedgerService(ledgerPath string) *services.LedgerService {
	return services.NewLedgerService(repository.NewFileLedgerRepository(ledgerPath))
}

// newStatsService wires aggregation against the given paths
func newStatsService(ledgerPath, resultsPath string) *services.StatsService {
	return services.NewStatsService(
		repository.NewFileLedgerRepository(ledgerPath),
		repository.NewFileResultsRepository(resultsPath),
	)
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
