package main

import (
	"log"
	"maps"
	"os"
	"slices"

	"github.com/pkg/browser"
	"github.com/sarchlab/oppnet/simulation"
	"github.com/sarchlab/oppnet/tracing"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		builder := simulation.MakeBuilder().WithConfig(cfg)

		if monitor, _ := cmd.Flags().GetBool("monitor"); monitor {
			builder = builder.WithMonitoring()
		}

		if port, _ := cmd.Flags().GetInt("monitor-port"); port != 0 {
			builder = builder.WithMonitoring().WithMonitorPort(port)
		}

		if noDB, _ := cmd.Flags().GetBool("no-db"); noDB {
			builder = builder.WithoutRecording()
		}

		if trace, _ := cmd.Flags().GetBool("trace"); trace {
			builder = builder.WithTraceLogger(log.New(os.Stdout, "", 0))
		}

		if logEvents, _ := cmd.Flags().GetBool("log-events"); logEvents {
			builder = builder.WithEventLogger(log.New(os.Stderr, "", 0))
		}

		s := builder.Build()
		defer s.Terminate()

		if open, _ := cmd.Flags().GetBool("open-monitor"); open && s.MonitorURL() != "" {
			if err := browser.OpenURL(s.MonitorURL()); err != nil {
				log.Printf("cannot open the monitor: %v", err)
			}
		}

		if err := s.Run(); err != nil {
			return err
		}

		printStats(cmd, s.Stats())

		return nil
	},
}

func init() {
	runCmd.Flags().Bool("monitor", false, "start the web monitor")
	runCmd.Flags().Int("monitor-port", 0, "port of the web monitor, implies --monitor")
	runCmd.Flags().Bool("open-monitor", false, "open the web monitor in a browser")
	runCmd.Flags().Bool("no-db", false, "do not record the trace database")
	runCmd.Flags().Bool("trace", false, "print every message event")
	runCmd.Flags().Bool("log-events", false, "print every engine event")
	rootCmd.AddCommand(runCmd)
}

func printStats(cmd *cobra.Command, s tracing.Stats) {
	cmd.Printf("created:        %d\n", s.Created)
	cmd.Printf("delivered:      %d\n", s.Delivered)
	cmd.Printf("relayed:        %d\n", s.Relayed)
	cmd.Printf("aborted:        %d\n", s.Aborted)
	cmd.Printf("delivery ratio: %.4f\n", s.DeliveryRatio())
	cmd.Printf("avg latency:    %.2f s\n", s.AverageLatency())
	cmd.Printf("avg hops:       %.2f\n", s.AverageHops())
	cmd.Printf("overhead ratio: %.2f\n", s.OverheadRatio())

	for _, reason := range slices.Sorted(maps.Keys(s.Dropped)) {
		cmd.Printf("dropped %-8s %d\n", reason+":", s.Dropped[reason])
	}
}
