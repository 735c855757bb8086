package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var (
	initFile  string
	initForce bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter extension list and config",
	Long: `Create a starter extension list in the current directory and write
the default configuration file.

The list declares the extensions to keep in sync:
  enabled:
    - id: publisher.extension
      uuid: optional-marketplace-uuid`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFile, "file", "f", "extensions.yaml", "Extension list path to create")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing extension list")
}

func runInit(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("file") {
		initFile = appConfig.File
	}
	listPath := initFile

	if appWorkspace.HasList(listPath) && !initForce {
		fmt.Println(ui.FormatWarning("Extension list already exists"))
		fmt.Println(ui.FormatMuted("Location: " + appWorkspace.Resolve(listPath)))
		fmt.Println(ui.FormatMuted("Use --force to overwrite it"))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing vsx workspace..."))
	fmt.Println()

	if err := createStarterList(listPath); err != nil {
		fmt.Println(ui.FormatError("Failed to create extension list"))
		return err
	}
	fmt.Println(ui.FormatSuccess("Extension list (" + listPath + ") created"))

	// Materialize the default config so users have something to edit
	if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
		if err := appConfig.Save(appWorkspace.ConfigPath); err != nil {
			fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Config (" + appWorkspace.ConfigPath + ") created"))
		}
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Declare your extensions: vsx config (or edit " + listPath + ")"))
	fmt.Println(ui.FormatMuted("  2. Check registry availability: vsx check"))
	fmt.Println(ui.FormatMuted("  3. Sync everything: vsx sync"))

	return nil
}

func createStarterList(path string) error {
	starter := `# Declared extensions
# Each entry names one extension by its marketplace identifier.
# The uuid is optional and carried through to the snapshot.

enabled:
  - id: golang.go
  # - id: ms-python.python
  #   uuid: f1f59ae4-9318-4f3c-a9b5-81b2eaa5f8a5
`

	return os.WriteFile(path, []byte(starter), 0644)
}
