package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pulsarops/aosched/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publish the schedule over HTTP with periodic refresh",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg, projID, year)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}
