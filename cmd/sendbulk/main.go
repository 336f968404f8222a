package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aetherdigital/backend/internal/app"
	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/service"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		username string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:           "sendbulk",
		Short:         "Send confirmation emails to users that have not verified yet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if _, err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer logger.Sync()

			report, err := run(ctx, cfg, username, dryRun)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}

			if report.Sent == 0 && len(report.Errors) > 0 {
				return fmt.Errorf("%d confirmation emails failed", len(report.Errors))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Send only to this user")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the emails instead of sending them")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, username string, dryRun bool) (*service.DispatchReport, error) {
	core, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer core.Close()

	var sender emailProvider.Sender
	if dryRun {
		sender = emailProvider.NewLogSender()
	} else if sender, err = app.NewEmailSender(cfg); err != nil {
		return nil, err
	}

	services, err := core.Services(sender, nil)
	if err != nil {
		return nil, err
	}

	// a bulk run should see users written while the API was down
	if _, err := services.Verifications.Resync(ctx); err != nil {
		return nil, fmt.Errorf("resync: %w", err)
	}

	if username != "" {
		return services.Notifications.SendOne(ctx, username, "")
	}

	return services.Notifications.SendAll(ctx)
}
