package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	resultsPath        string
	resultsInteractive bool
	resultsRaw         bool
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the last availability snapshot",
	Long: `Show the snapshot written by the last sync or check run: which
declared extensions the registry serves and which need the marketplace
fallback.

Examples:
  # Print the snapshot as a table
  vsx results

  # Browse it interactively
  vsx results --interactive

  # Dump the snapshot JSON with syntax highlighting
  vsx results --raw`,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().StringVarP(&resultsPath, "results", "r", "results.json", "Availability snapshot path")
	resultsCmd.Flags().BoolVarP(&resultsInteractive, "interactive", "i", false, "Browse the snapshot in the terminal")
	resultsCmd.Flags().BoolVar(&resultsRaw, "raw", false, "Print the snapshot JSON")
}

func runResults(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("results") {
		resultsPath = appConfig.Results
	}

	ctx := getContext()
	snapshot, err := repository.NewFileResultsRepository(resultsPath).Load(ctx)
	if err != nil {
		fmt.Println(ui.FormatWarning("No snapshot found at " + resultsPath))
		fmt.Println(ui.FormatInfo("Run a probe first: vsx check"))
		return nil
	}

	if resultsRaw {
		raw, err := os.ReadFile(resultsPath)
		if err != nil {
			return err
		}
		fmt.Println(highlightJSON(string(raw)))
		return nil
	}

	if resultsInteractive {
		view, err := NewResultsView(snapshot)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to start the interactive view"))
			return err
		}
		return view.Run()
	}

	availableCount, unavailableCount := snapshot.Counts()

	fmt.Println(ui.FormatTitle("Availability snapshot"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Extension", Width: 30, Align: "left"},
		{Header: "Status", Width: 12, Align: "left"},
		{Header: "Download URL", Align: "left"},
	})
	for _, ext := range snapshot.Available {
		table.AddRow([]string{ui.Truncate(ext.ID, 30), "available", ui.Truncate(ext.URL, 60)})
	}
	for _, ext := range snapshot.Unavailable {
		table.AddRow([]string{ui.Truncate(ext.ID, 30), "unavailable", ""})
	}
	fmt.Print(table.Render())
	fmt.Println()

	fmt.Println(ui.RenderKeyValue("Available", ui.StyleSuccess.Render(fmt.Sprintf("%d", availableCount))))
	fmt.Println(ui.RenderKeyValue("Unavailable", ui.StyleWarning.Render(fmt.Sprintf("%d", unavailableCount))))

	return nil
}

// highlightJSON applies syntax highlighting to snapshot content
func highlightJSON(content string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	err = formatter.Format(&buf, style, iterator)
	if err != nil {
		return content
	}

	return buf.String()
}
