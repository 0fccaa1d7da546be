package main

import (
	"errors"

	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/tracing"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the trace database of a finished run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbFile, _ := cmd.Flags().GetString("db")
		if dbFile == "" {
			return errors.New("--db is required")
		}

		reader, err := datarecording.OpenReader(dbFile)
		if err != nil {
			return err
		}
		defer reader.Close()

		tracing.MapTables(reader)

		stats, err := tracing.ReadStats(cmd.Context(), reader)
		if err != nil {
			return err
		}

		printStats(cmd, stats)

		n, _ := cmd.Flags().GetInt("slowest")

		slowest, err := tracing.SlowestDeliveries(cmd.Context(), reader, n)
		if err != nil {
			return err
		}

		for _, d := range slowest {
			cmd.Printf("slow %s %s->%s %.2f s %d hops\n",
				d.Message, d.Source, d.Host, d.Latency, d.Hops)
		}

		return nil
	},
}

func init() {
	reportCmd.Flags().String("db", "", "trace database written by run")
	reportCmd.Flags().Int("slowest", 0, "list the slowest deliveries")
	rootCmd.AddCommand(reportCmd)
}
