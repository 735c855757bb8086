package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	urlFile    string
	urlVersion string
	urlCopy    bool
)

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url [extension-id]",
	Short: "Show the marketplace URLs for an extension",
	Long: `Print the marketplace page and the direct VSIX download URL for an
extension identifier. Without an argument, pick one from the declared
list.

Examples:
  # URLs for one extension
  vsx url rust-lang.rust-analyzer

  # Pin a version and copy the download URL
  vsx url golang.go --version 0.42.0 --copy

  # Pick interactively from the declared list
  vsx url`,
	Args: cobra.MaximumNArgs(1),
	RunE: runURL,
}

func init() {
	urlCmd.Flags().StringVarP(&urlFile, "file", "f", "extensions.yaml", "Declared extension list (for the picker)")
	urlCmd.Flags().StringVar(&urlVersion, "version", "", "Asset version (default: latest)")
	urlCmd.Flags().BoolVar(&urlCopy, "copy", false, "Copy the download URL to the clipboard")
}

func runURL(cmd *cobra.Command, args []string) error {
	applyPipelineDefaults(cmd, &urlFile, nil, nil)

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		picked, err := pickOneDeclared(urlFile)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		id = picked
	}

	asset, err := domain.Synthesize(id, urlVersion, "")
	if err != nil {
		fmt.Println(ui.FormatError("Invalid extension identifier: " + id))
		return err
	}

	fmt.Println(ui.FormatTitle(id))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Marketplace", asset.MarketplaceURL))
	fmt.Println(ui.RenderKeyValue("Download", asset.DirectDownloadURL))
	fmt.Println(ui.RenderKeyValue("File name", asset.FileName))

	// Show the last download attempt when the ledger knows this id
	record, err := newLedgerService(appConfig.Ledger).Find(getContext(), id)
	if err == nil && record != nil {
		fmt.Println()
		fmt.Println(ui.RenderKeyValue("Last attempt", record.DisplayTimestamp()+"  "+ui.FormatStatus(record.Success)))
	}

	if urlCopy {
		if err := clipboard.WriteAll(asset.DirectDownloadURL); err != nil {
			fmt.Println(ui.FormatWarning("Could not copy to clipboard: " + err.Error()))
			return nil
		}
		fmt.Println()
		fmt.Println(ui.FormatSuccess("Download URL copied to clipboard"))
	}

	return nil
}

// pickOneDeclared runs a fuzzy single-select over the declared list
func pickOneDeclared(file string) (string, error) {
	source := repository.NewFileExtensionSource(file)
	list, err := source.Load(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load extension list"))
		return "", err
	}

	declared := list.Declared()
	if len(declared) == 0 {
		fmt.Println(ui.FormatWarning("The declared list is empty"))
		return "", nil
	}

	idx, err := fuzzyfinder.Find(
		declared,
		func(i int) string {
			return declared[i].ID
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			asset, err := domain.Synthesize(declared[i].ID, "", "")
			if err != nil {
				return declared[i].ID
			}
			return "Marketplace: " + asset.MarketplaceURL + "\nFile: " + asset.FileName
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return "", nil
	}

	return declared[idx].ID, nil
}
