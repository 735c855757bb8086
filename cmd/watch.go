package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	watchFile  string
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the extension list and re-probe on changes",
	Long: `Run a foreground watcher that monitors the declared extension list
and re-probes the registry whenever the file changes.

The availability snapshot is rewritten after every probe, so tools
reading it always see the current state of the list.

Use --quiet to suppress probe notifications.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "extensions.yaml", "Declared extension list")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress probe notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	applyPipelineDefaults(cmd, &watchFile, nil, nil)
	ctx := getContext()

	// Watch the parent directory; editors replace files on save, so
	// watching the file itself loses the handle after the first write
	watchDir := filepath.Dir(watchFile)
	targetName := filepath.Base(watchFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Starting vsx watcher..."))
		fmt.Println(ui.FormatMuted("Watching: " + watchFile))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Debounce timer to avoid probing on every editor write
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	needsProbe := false

	doProbe := func() {
		if !needsProbe {
			return
		}
		needsProbe = false

		if !watchQuiet {
			fmt.Println(ui.FormatInfo("List changed, probing registry..."))
		}

		svc := newSyncService(watchFile, appConfig.Results, appConfig.Ledger)
		resp, err := svc.Probe(ctx, services.ProbeRequest{Workers: appConfig.Workers}, nil)
		if err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatError("Probe failed: " + err.Error()))
			}
			log.Printf("Probe error: %v", err)
			return
		}

		if !watchQuiet {
			available, unavailable := resp.Results.Counts()
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("Snapshot updated (%d available, %d unavailable)",
				available, unavailable)))
		}
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only care about the declared list itself
			if filepath.Base(event.Name) != targetName {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				needsProbe = true

				// Reset debounce timer
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, doProbe)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}
