package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/namecheck/internal/control"
)

var (
	checkURL      string
	checkAttempts int
	checkDelay    time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check <userName>...",
	Short: "Check whether user names are available",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "service base URL (overrides client.base_url)")
	checkCmd.Flags().IntVar(&checkAttempts, "attempts", 0, "max attempts on server errors (overrides client.retry.max_attempts)")
	checkCmd.Flags().DurationVar(&checkDelay, "delay", 0, "delay between attempts (overrides client.retry.delay)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if checkURL != "" {
		cfg.Client.BaseURL = checkURL
	}
	if checkAttempts > 0 {
		cfg.Client.Retry.MaxAttempts = checkAttempts
	}
	if checkDelay > 0 {
		cfg.Client.Retry.Delay = checkDelay
	}

	client := control.NewClient(cfg.Client)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var failed error
	for _, name := range args {
		available, err := client.CheckUserNameAvailable(ctx, name)
		if err != nil {
			slog.Error("Availability check failed", "user_name", name, "error", err)
			failed = errors.Join(failed, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		status := "taken"
		if available {
			status = "available"
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\n", name, status)
	}

	return failed
}
