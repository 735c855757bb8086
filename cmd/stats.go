package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var statsHTML string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download history statistics",
	Long: `Analyze the download ledger and display useful statistics.

Includes:
  - Attempt counts and success rate
  - Downloads per publisher
  - Last recorded attempt
  - Availability counts from the latest probe

Examples:
  # Print statistics to the terminal
  vsx stats

  # Also write an HTML report with charts
  vsx stats --html report.html`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsHTML, "html", "", "Write an HTML report with charts to the given path")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	service := newStatsService(appConfig.Ledger, appConfig.Results)

	fmt.Println(ui.FormatRocket("Analyzing download history..."))

	stats, err := service.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Download Analytics"))
	fmt.Println()

	if stats.TotalRecords == 0 {
		fmt.Println(ui.FormatWarning("No download attempts recorded yet."))
		fmt.Println(ui.StyleMuted.Render("Run a sync to create some: vsx sync --auto-download"))
		return nil
	}

	// --- General stats (tabular) ---
	successRate := float64(stats.Succeeded) / float64(stats.TotalRecords) * 100

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Attempts:"), stats.TotalRecords)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Succeeded:"), stats.Succeeded)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Failed:"), stats.Failed)
	fmt.Fprintf(w, "%s\t%.1f%%\n", ui.StyleBold.Render("Success Rate:"), successRate)
	w.Flush()

	if stats.LastAttempt != nil {
		fmt.Printf("   %s %s (%s)\n",
			ui.StyleMuted.Render("Last attempt:"),
			stats.LastAttempt.DisplayTimestamp(),
			stats.LastAttempt.ID,
		)
	}
	fmt.Println()

	// --- Latest probe snapshot ---
	if stats.HasSnapshot {
		fmt.Println(ui.StyleHeader.Render("Latest Probe"))
		fmt.Printf("%s %d available\n", ui.IconSuccess, stats.SnapshotAvailable)
		fmt.Printf("%s %d unavailable\n", ui.IconWarning, stats.SnapshotUnavailable)
		fmt.Println()
	}

	// --- Downloads per publisher (bar chart) ---
	renderPublisherBars(stats.ByPublisher)

	if statsHTML != "" {
		if err := writeHTMLReport(stats, statsHTML); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		fmt.Println(ui.FormatSuccess("HTML report written to " + statsHTML))
	}

	return nil
}

// renderPublisherBars displays a horizontal bar chart
func renderPublisherBars(counts []services.PublisherCount) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleHeader.Render("Top Publishers"))

	// Limit to top 5
	limit := 5
	if len(counts) < limit {
		limit = len(counts)
	}

	// Find max for scaling
	maxCount := counts[0].Count
	barWidth := 20

	for i := 0; i < limit; i++ {
		p := counts[i]

		length := int(math.Ceil(float64(p.Count) / float64(maxCount) * float64(barWidth)))
		bar := strings.Repeat("█", length)

		fmt.Printf("%s %-20s %s\n",
			ui.StyleAccent.Render(bar),
			p.Publisher,
			ui.StyleMuted.Render(fmt.Sprintf("%d", p.Count)),
		)
	}
}

// writeHTMLReport renders the stats as an HTML page with charts
func writeHTMLReport(stats *services.Stats, path string) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Download Outcomes"}),
	)
	pie.AddSeries("outcomes", []opts.PieData{
		{Name: "succeeded", Value: stats.Succeeded},
		{Name: "failed", Value: stats.Failed},
	})

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Downloads per Publisher"}),
	)

	var publishers []string
	var values []opts.BarData
	for _, p := range stats.ByPublisher {
		publishers = append(publishers, p.Publisher)
		values = append(values, opts.BarData{Value: p.Count})
	}
	bar.SetXAxis(publishers).AddSeries("attempts", values)

	page := components.NewPage()
	page.AddCharts(pie, bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return page.Render(f)
}
