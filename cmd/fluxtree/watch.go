package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/fluxtree/internal/app"
	"github.com/renato0307/fluxtree/internal/logging"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the kubeconfig sync loop without the UI",
		Long: `watch re-reads the kubeconfig every poll interval and logs each sync
cycle and the views it invalidates. Logs go to stderr unless a log file is
configured. With --metrics-address (or metrics.address in the config file) the
sync counters are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cfg.Log.File == "" {
				// no terminal UI to protect, so log where the user can see it
				cfg.Log.File = logging.StderrPath
				if err := logging.Init(cfg.Logging()); err != nil {
					return err
				}
			}
			defer logging.Shutdown()
			if cmd.Flags().Changed("metrics-address") {
				cfg.Metrics.Address = metricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt := app.NewRuntime(cfg, newRunner(cfg))
			return runWatch(ctx, rt, cfg.PollInterval, cfg.Metrics.Address)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-address", "", `Serve Prometheus metrics on this address, e.g. ":9090"`)
	return cmd
}

// runWatch blocks until ctx is done or the metrics server fails
func runWatch(ctx context.Context, rt *app.Runtime, interval time.Duration, metricsAddr string) error {
	log := logging.Component("watch")
	log.Info("watching kubeconfig", "interval", interval.String(), "metrics", metricsAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.Context.Config.Run(ctx, interval)
		return nil
	})
	if metricsAddr != "" {
		g.Go(func() error {
			return rt.Metrics.Serve(ctx, metricsAddr)
		})
	}

	err := g.Wait()
	log.Info("watch stopped", "state", rt.Context.Config.State().String())
	return err
}
