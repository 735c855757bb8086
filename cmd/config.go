package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the vsx configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appWorkspace.ConfigPath

		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s (run: vsx init)", path)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := GetPreferredEditor()

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
