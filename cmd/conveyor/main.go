// Conveyor — CI pipeline для сборки проекта под Linux и Win64.
//
// Использование:
//
//	conveyor [--json] <command> [flags]
//
// Команды:
//
//	run       Однократный запуск pipeline
//	validate  Проверка pipeline spec
//	serve     Периодический запуск по cron-расписанию
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "conveyor",
		Short:         "Conveyor — CI build pipeline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewRunCmd(outputFn),
		cli.NewValidateCmd(outputFn),
		cli.NewServeCmd(outputFn),
	)

	// graceful shutdown: отмена контекста прерывает все tracks
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
