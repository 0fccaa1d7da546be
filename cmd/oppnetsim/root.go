package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// version is set at link time.
var version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oppnetsim",
	Short: "oppnetsim simulates message forwarding in a delay-tolerant network.",
	Long: `oppnetsim simulates hosts that move in an area and forward messages ` +
		`to each other when they are in range, using direction-based or ` +
		`contact-history-based controlled replication. Parameters come from ` +
		`.env files and OPPNET_ environment variables.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("oppnetsim", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("env", nil,
		"env files to read settings from; .env is read if none is given")
	rootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
