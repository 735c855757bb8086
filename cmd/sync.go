package cmd

import (
	"context"
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	syncFile      string
	syncResults   string
	syncOutputDir string
	syncAuto      bool
	syncPick      bool
	syncWorkers   int
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Probe the registry and download missing extensions",
	Long: `Probe every declared extension against the Open VSX registry,
write the availability snapshot, and download the unavailable ones
from the Visual Studio Marketplace.

Extensions the registry serves directly are only recorded in the
snapshot; the fallback download runs for the rest, after confirmation
or immediately with --auto-download.

Examples:
  # Sync the default extensions.yaml
  vsx sync

  # Sync a specific list without prompting
  vsx sync -f team-extensions.yaml -a

  # Narrow the run to hand-picked extensions
  vsx sync --pick`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncFile, "file", "f", "extensions.yaml", "Declared extension list")
	syncCmd.Flags().StringVarP(&syncResults, "results", "r", "results.json", "Availability snapshot path")
	syncCmd.Flags().StringVarP(&syncOutputDir, "output-dir", "o", "downloads", "Download directory")
	syncCmd.Flags().BoolVarP(&syncAuto, "auto-download", "a", false, "Download without confirmation")
	syncCmd.Flags().BoolVar(&syncPick, "pick", false, "Pick extensions interactively before probing")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "Probe parallelism (1 = sequential)")
}

func runSync(cmd *cobra.Command, args []string) error {
	applyPipelineDefaults(cmd, &syncFile, &syncResults, &syncOutputDir)
	if !cmd.Flags().Changed("auto-download") {
		syncAuto = appConfig.AutoDownload
	}
	if !cmd.Flags().Changed("workers") {
		syncWorkers = appConfig.Workers
	}

	ctx := getContext()
	svc := newSyncService(syncFile, syncResults, appConfig.Ledger)

	var only []string
	if syncPick {
		picked, err := pickDeclared(syncFile)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			fmt.Println(ui.FormatInfo("Nothing picked."))
			return nil
		}
		only = picked
	}

	probe, err := runProbe(ctx, svc, services.ProbeRequest{
		DownloadDir: syncOutputDir,
		Workers:     syncWorkers,
		Only:        only,
	})
	if err != nil {
		return err
	}

	availableCount, unavailableCount := probe.Results.Counts()
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Available", ui.StyleSuccess.Render(fmt.Sprintf("%d", availableCount))))
	fmt.Println(ui.RenderKeyValue("Unavailable", ui.StyleWarning.Render(fmt.Sprintf("%d", unavailableCount))))
	fmt.Println(ui.FormatMuted("Snapshot written to " + syncResults))

	pending := probe.Results.Unavailable
	if len(pending) == 0 {
		fmt.Println()
		fmt.Println(ui.FormatSuccess("All extensions are available from the registry"))
		return nil
	}

	fmt.Println()
	fmt.Println(ui.FormatWarning("Not available from the registry:"))
	printPending(pending)
	fmt.Println()

	if !syncAuto {
		if !confirm("Download these from the marketplace?") {
			fmt.Println(ui.FormatInfo("Download skipped."))
			return nil
		}
		fmt.Println()
	}

	return runDownload(ctx, svc, pending, syncOutputDir)
}

// runProbe executes the probe phase while rendering per-extension
// progress on one line
func runProbe(ctx context.Context, svc *services.SyncService, req services.ProbeRequest) (*services.ProbeResponse, error) {
	fmt.Println(ui.FormatRocket("Probing registry..."))

	progressChan := make(chan services.ProbeProgress)
	resultChan := make(chan *services.ProbeResponse, 1)
	errorChan := make(chan error, 1)

	go func() {
		resp, err := svc.Probe(ctx, req, progressChan)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- resp
	}()

	for progress := range progressChan {
		status := ui.StyleSuccess.Render(ui.IconSuccess)
		if !progress.Available {
			status = ui.StyleWarning.Render(ui.IconWarning)
		}

		percentage := float64(progress.Current) / float64(progress.Total) * 100
		fmt.Printf("\r%s [%d/%d] %s %s    ",
			createProgressBar(percentage, 30),
			progress.Current,
			progress.Total,
			status,
			ui.Truncate(progress.ID, 40),
		)
	}

	select {
	case err := <-errorChan:
		fmt.Println()
		fmt.Println(ui.FormatError("Probe failed"))
		return nil, err
	case resp := <-resultChan:
		fmt.Println()
		return resp, nil
	}
}

// runDownload executes the fallback download phase with a byte-level
// progress bar per extension
func runDownload(ctx context.Context, svc *services.SyncService, pending []domain.UnavailableExtension, outputDir string) error {
	byteProgress := func(written, total int64) {
		if total > 0 {
			percentage := float64(written) / float64(total) * 100
			fmt.Printf("\r  %s %s / %s    ",
				createProgressBar(percentage, 30),
				formatBytes(written),
				formatBytes(total),
			)
		} else {
			fmt.Printf("\r  %s    ", formatBytes(written))
		}
	}

	progressChan := make(chan services.DownloadProgress)
	resultChan := make(chan *services.DownloadResponse, 1)
	errorChan := make(chan error, 1)

	go func() {
		resp, err := svc.Download(ctx, services.DownloadRequest{
			Extensions:  pending,
			DownloadDir: outputDir,
			Progress:    byteProgress,
		}, progressChan)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- resp
	}()

	for progress := range progressChan {
		if !progress.Done {
			fmt.Printf("%s [%d/%d] %s\n",
				ui.StyleInfo.Render(ui.IconDownload),
				progress.Current,
				progress.Total,
				ui.FormatBold(progress.ID),
			)
			continue
		}

		if progress.Success {
			fmt.Printf("\r  %s\n",
				ui.FormatSuccess(fmt.Sprintf("saved %s (%s)    ", progress.Asset.FileName, formatBytes(progress.Bytes))),
			)
		} else {
			fmt.Printf("\r  %s\n",
				ui.FormatError(fmt.Sprintf("%s: %v    ", progress.ID, progress.Error)),
			)
		}
	}

	var response *services.DownloadResponse
	select {
	case err := <-errorChan:
		fmt.Println()
		fmt.Println(ui.FormatError("Download aborted"))
		return err
	case response = <-resultChan:
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Download complete"))
	fmt.Println(ui.RenderKeyValue("Total", fmt.Sprintf("%d", response.Total)))
	fmt.Println(ui.RenderKeyValue("Succeeded", ui.StyleSuccess.Render(fmt.Sprintf("%d", response.Succeeded))))
	if response.Failed > 0 {
		fmt.Println(ui.RenderKeyValue("Failed", ui.StyleError.Render(fmt.Sprintf("%d", response.Failed))))
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed downloads:"))
		for _, result := range response.Results {
			if !result.Success {
				fmt.Println(ui.FormatMuted("  • " + result.ID + ": " + result.Error.Error()))
			}
		}
	}

	return nil
}

// printPending lists identifiers five per line
func printPending(pending []domain.UnavailableExtension) {
	for i, ext := range pending {
		fmt.Printf("%s  ", ui.StyleWarning.Render(ext.ID))
		if (i+1)%5 == 0 {
			fmt.Println()
		}
	}
	if len(pending)%5 != 0 {
		fmt.Println()
	}
}

// pickDeclared runs a fuzzy multi-select over the declared list and
// returns the chosen identifiers
func pickDeclared(file string) ([]string, error) {
	source := repository.NewFileExtensionSource(file)
	list, err := source.Load(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load extension list"))
		return nil, err
	}

	declared := list.Declared()
	if len(declared) == 0 {
		return nil, nil
	}

	indexes, err := fuzzyfinder.FindMulti(
		declared,
		func(i int) string {
			return declared[i].ID
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			ext := declared[i]
			preview := "ID: " + ext.ID
			if ext.UUID != "" {
				preview += "\nUUID: " + ext.UUID
			}
			return preview
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return nil, nil
	}

	picked := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		picked = append(picked, declared[idx].ID)
	}
	return picked, nil
}

// applyPipelineDefaults fills unchanged path flags from config
func applyPipelineDefaults(cmd *cobra.Command, file, results, outputDir *string) {
	if !cmd.Flags().Changed("file") {
		*file = appConfig.File
	}
	if results != nil && !cmd.Flags().Changed("results") {
		*results = appConfig.Results
	}
	if outputDir != nil && !cmd.Flags().Changed("output-dir") {
		*outputDir = appConfig.OutputDir
	}
}
