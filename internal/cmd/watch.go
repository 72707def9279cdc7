package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/prometheus_metrics"
	"github.com/tekktrik/cronberry/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch CRONTAB",
	Short: "Keep the target table in sync with a crontab file",
	Long: `Watch CRONTAB and merge its titled jobs into the target table on
every change, overwriting entries that share a title. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchPromAddr  string
	watchSentryDsn string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchPromAddr, "prometheus-listen-address", "", "serve prometheus metrics on this address")
	watchCmd.Flags().StringVar(&watchSentryDsn, "sentry-dsn", "", "report sync errors to this sentry DSN")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchSentryDsn != "" {
		sentryHook, err := logrus_sentry.NewSentryHook(watchSentryDsn, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		logrus.AddHook(sentryHook)
	}

	var metrics *prometheus_metrics.PrometheusMetrics
	if watchPromAddr != "" {
		var err error
		metrics, err = prometheus_metrics.New(watchPromAddr)
		if err != nil {
			return err
		}

		go func() {
			if err := metrics.InitHTTPServer(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("metrics server: %v", err)
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metrics.ShutdownHTTPServer(shutdownCtx); err != nil {
				logrus.Errorf("metrics server shutdown: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncer := &watch.Syncer{
		Path:    args[0],
		Dest:    target(),
		Metrics: metrics,
	}
	return syncer.Run(ctx)
}
