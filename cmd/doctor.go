package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your vsx setup",
	Long: `Diagnose issues with your VSX setup.

Checks for:
  - The declared extension list and its syntax
  - Configuration file existence
  - Registry reachability
  - Download directory writability
  - Snapshot and ledger integrity`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	ctx := getContext()

	fmt.Println(ui.FormatTitle("🏥 VSX Doctor"))
	fmt.Println()

	// 1. Check workspace files
	checkStep("Extension List", func() error {
		if !appWorkspace.HasList(appConfig.File) {
			return fmt.Errorf("missing at %s (run: vsx init)", appWorkspace.Resolve(appConfig.File))
		}
		return nil
	})

	checkStep("List Syntax", func() error {
		if !appWorkspace.HasList(appConfig.File) {
			return fmt.Errorf("skipped (no list)")
		}
		list, err := repository.NewFileExtensionSource(appConfig.File).Load(ctx)
		if err != nil {
			return err
		}
		if len(list.Declared()) == 0 {
			return fmt.Errorf("no enabled extensions declared")
		}
		return nil
	})

	checkStep("Identifier Syntax", func() error {
		if !appWorkspace.HasList(appConfig.File) {
			return fmt.Errorf("skipped (no list)")
		}
		list, err := repository.NewFileExtensionSource(appConfig.File).Load(ctx)
		if err != nil {
			return fmt.Errorf("skipped (unreadable list)")
		}

		invalid := 0
		for _, ext := range list.Declared() {
			if _, _, err := domain.SplitIdentifier(ext.ID); err != nil {
				if invalid == 0 {
					fmt.Println()
				}
				fmt.Printf("    %s (malformed)\n", ext.ID)
				invalid++
			}
		}
		if invalid > 0 {
			return fmt.Errorf("found %d malformed identifiers", invalid)
		}
		return nil
	})

	// 2. Check config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (defaults in effect)", appWorkspace.ConfigPath)
		}
		return nil
	})

	// 3. Check environment
	checkStep("Registry Reachability", func() error {
		registryURL := appConfig.Registry
		if registryURL == "" {
			registryURL = domain.DefaultRegistryURL
		}

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(registryURL)
		if err != nil {
			return fmt.Errorf("cannot reach %s", registryURL)
		}
		resp.Body.Close()
		return nil
	})

	checkStep("Download Directory", func() error {
		info, err := os.Stat(appConfig.OutputDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("missing (created on first sync)")
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", appConfig.OutputDir)
		}

		probe, err := os.CreateTemp(appConfig.OutputDir, ".vsx-doctor-*")
		if err != nil {
			return fmt.Errorf("not writable")
		}
		probe.Close()
		os.Remove(probe.Name())
		return nil
	})

	checkStep("EDITOR Variable", func() error {
		if os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking run outputs..."))

	checkStep("Snapshot Integrity", func() error {
		if _, err := os.Stat(appConfig.Results); os.IsNotExist(err) {
			return fmt.Errorf("missing (run: vsx check)")
		}
		if _, err := repository.NewFileResultsRepository(appConfig.Results).Load(ctx); err != nil {
			return err
		}
		return nil
	})

	checkStep("Ledger Integrity", func() error {
		if _, err := os.Stat(appConfig.Ledger); os.IsNotExist(err) {
			return fmt.Errorf("missing (created on first download)")
		}
		if _, err := repository.NewFileLedgerRepository(appConfig.Ledger).List(ctx); err != nil {
			return err
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
	} else {
		fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
