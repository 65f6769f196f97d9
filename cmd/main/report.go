package main

import (
	"fmt"
	"time"

	"benchmark-observer/src/config"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/network"
	"benchmark-observer/src/report"

	"github.com/spf13/cobra"
)

func newReportCmd(cfgPath *string) *cobra.Command {
	var (
		addr     string
		bucket   string
		limit    int
		retries  int
		counters bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print counters and recent records of a running observer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				cfg, err := config.NewConfig(*cfgPath)
				if err != nil {
					return err
				}
				addr = fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
			}

			log := logger.NewLogger("WARNING", "report")
			client := network.NewAdminClient(addr, 10*time.Second, retries, log)
			out := cmd.OutOrStdout()

			c, err := client.FetchCounters(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch counters: %w", err)
			}
			report.WriteCounters(out, c)
			if counters {
				return nil
			}

			rows, err := client.FetchRecords(cmd.Context(), bucket, limit)
			if err != nil {
				return fmt.Errorf("fetch records: %w", err)
			}
			fmt.Fprintln(out)
			report.WriteRecords(out, rows, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "admin", "", "admin API address (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "faster, slower, same or realslow")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of records")
	cmd.Flags().IntVar(&retries, "retries", 3, "attempts per request")
	cmd.Flags().BoolVar(&counters, "counters-only", false, "skip the records table")
	return cmd
}
