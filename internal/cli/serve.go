package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/api"
	"github.com/shaiso/Conveyor/internal/scheduler"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// NewServeCmd создаёт команду периодического запуска pipeline.
//
// Serve-режим держит HTTP endpoint с /healthz и /metrics и выполняет
// pipeline по cron-расписанию до получения SIGINT/SIGTERM.
func NewServeCmd(outputFn func() *Output) *cobra.Command {
	var specPath string
	var revision string
	var cronExpr string
	var workers int
	var workDir string
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run pipelines on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := telemetry.SetupLogger()
			ctx := cmd.Context()

			spec, err := loadSpec(specPath, revision)
			if err != nil {
				return err
			}

			d, err := setupDeps(ctx, logger, workers, workDir)
			if err != nil {
				return err
			}
			defer d.Close()

			sched, err := scheduler.New(scheduler.Config{
				Executor: d.orch,
				Spec:     spec,
				CronExpr: cronExpr,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			// HTTP mux: /healthz + /metrics (+ история runs, если есть БД)
			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			mux.Handle("/metrics", promhttp.Handler())

			if d.runRepo != nil {
				handler := api.NewHandler(api.Config{
					RunRepo:   d.runRepo,
					TrackRepo: d.trackRepo,
					Logger:    logger,
				})
				handler.RegisterRoutes(mux)
			}

			addr := ":" + port
			if v := os.Getenv("CONVEYOR_PORT"); v != "" {
				addr = ":" + v
			}

			go func() {
				logger.Info("listening", "addr", addr)
				if err := http.ListenAndServe(addr, mux); err != nil {
					logger.Error("http server error", "error", err)
				}
			}()

			err = sched.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "Pipeline spec file (built-in pipeline if not set)")
	cmd.Flags().StringVar(&revision, "revision", "", "Revision to build")
	cmd.Flags().StringVar(&cronExpr, "cron", "0 3 * * *", "Cron schedule, 5 fields")
	cmd.Flags().IntVar(&workers, "workers", 2, "Number of linux worker nodes")
	cmd.Flags().StringVar(&workDir, "workdir", "", "Base directory for per-node workspaces")
	cmd.Flags().StringVar(&port, "port", "8080", "HTTP port for /healthz and /metrics")

	return cmd
}
