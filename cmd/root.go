package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"airlift/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "airlift",
	Short: "Import, store, and export event flight schedules.",
	Long: `airlift ingests flight schedule workbooks for event logistics.

It normalizes passenger rows with mixed date/time cell formats into canonical
timestamps, stores the valid subset per event in a local SQLite database, and
regenerates Excel workbooks from stored records. The serve command exposes the
same pipeline over HTTP for form uploads and downloads.`,
	Example: `
  # Create configuration file
  airlift config create

  # Import a schedule workbook for event 7
  airlift import -i schedules.xlsx --event 7

  # Export stored schedules for event 7
  airlift export --event 7 --output ./flight-schedules.xlsx

  # Start the HTTP API
  airlift serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.airlift.yaml, then ./.airlift.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".airlift")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: airlift config create")
	}
}
