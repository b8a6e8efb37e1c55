package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage airlift configuration file values.",
	Long: `Create, edit, and display the airlift configuration file.

The configuration stores application-wide values:
- server.port
- database.path
- import.max_upload_mb`,
	Example: `
  # Create default config in $HOME/.airlift.yaml
  airlift config create

  # Show active config and source file
  airlift config show

  # Open active config in editor (creates example if missing)
  airlift config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
