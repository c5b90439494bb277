package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/namecheck/internal/control"
	"github.com/vietddude/namecheck/internal/infra/storage"
)

var reserveCmd = &cobra.Command{
	Use:   "reserve <userName>...",
	Short: "Mark user names as taken in the configured registry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReserve,
}

func init() {
	rootCmd.AddCommand(reserveCmd)
}

func runReserve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	registry, _, err := control.OpenRegistry(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open registry", "error", err)
		return err
	}
	defer func() {
		_ = registry.Close()
	}()

	var failed error
	for _, name := range args {
		err := registry.Reserve(ctx, name)
		switch {
		case errors.Is(err, storage.ErrNameTaken):
			fmt.Fprintf(os.Stdout, "%s\talready taken\n", name)
		case err != nil:
			slog.Error("Failed to reserve user name", "user_name", name, "error", err)
			failed = errors.Join(failed, err)
		default:
			fmt.Fprintf(os.Stdout, "%s\treserved\n", name)
		}
	}
	return failed
}
