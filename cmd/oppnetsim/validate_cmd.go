package main

import (
	"github.com/sarchlab/oppnet/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings without running a simulation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cmd.Printf("%+v\n", cfg)

		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the recognized settings",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, k := range config.Keys() {
			cmd.Println(k)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(keysCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	files, err := cmd.Flags().GetStringSlice("env")
	if err != nil {
		return config.Config{}, err
	}

	return config.Load(files...)
}
