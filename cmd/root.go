package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsarops/aosched/config"
	"github.com/pulsarops/aosched/connectors/naic"
	"github.com/pulsarops/aosched/core/schedule"
	"github.com/pulsarops/aosched/infra/logger"
)

var (
	cfgPath string
	projID  string
	year    string
)

var rootCmd = &cobra.Command{
	Use:   "aosched",
	Short: "Observatory schedule fetcher and wiki-line formatter",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVarP(&projID, "project", "p", "P2780", "project code")
	rootCmd.PersistentFlags().StringVarP(&year, "year", "y", time.Now().Format("2006"), "schedule year")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildSchedule fetches the raw grid for the selected project/year and
// interprets it into a Schedule.
func buildSchedule(ctx context.Context, cfg *config.Config) (*schedule.Schedule, error) {
	logg := logger.New("fetch")
	zones, err := schedule.LoadZones(cfg.Schedule.LocalZone, cfg.Schedule.UniversalZone)
	if err != nil {
		return nil, err
	}
	client := naic.NewClient(cfg.Fetch.BaseURL, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, logg)
	rows, err := client.Fetch(ctx, projID, year)
	if err != nil {
		return nil, err
	}
	return schedule.New(rows, zones, logg)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sched, err := buildSchedule(ctx, cfg)
	if err != nil {
		return err
	}
	for _, line := range sched.WikiLines() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
