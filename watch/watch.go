// Package watch keeps a destination cron table in sync with a crontab
// file: every time the file changes, its titled jobs are merged into
// the destination, overwriting entries that share a title.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/tekktrik/cronberry/cron"
	"github.com/tekktrik/cronberry/prometheus_metrics"
)

// Syncer mirrors the jobs of one crontab file into a destination table.
type Syncer struct {
	// Path is the crontab file to watch.
	Path string

	// Dest is the table the file's jobs are merged into.
	Dest cron.Source

	// Metrics is optional; when set, sync attempts, failures, durations
	// and the resulting table size are recorded.
	Metrics *prometheus_metrics.PrometheusMetrics
}

func (s *Syncer) labels() (source, destination string) {
	source = filepath.Base(s.Path)
	if file, ok := s.Dest.(cron.FileTab); ok {
		destination = string(file)
	} else {
		destination = "system"
	}
	return source, destination
}

// Sync runs one reconciliation pass: parse the watched file, merge its
// jobs into the destination with overwrite, and install the result.
func (s *Syncer) Sync() error {
	start := time.Now()
	source, destination := s.labels()

	if s.Metrics != nil {
		s.Metrics.SyncsCounter.WithLabelValues(source, destination).Inc()
	}

	err := s.syncOnce()
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.SyncFailuresCounter.WithLabelValues(source, destination).Inc()
		}
		return err
	}

	if s.Metrics != nil {
		s.Metrics.SyncTimeHistogram.WithLabelValues(source, destination).
			Observe(time.Since(start).Seconds())
		if table, err := cron.Parse(s.Dest); err == nil {
			s.Metrics.TableJobsGauge.WithLabelValues(destination).Set(float64(table.Len()))
		}
	}
	return nil
}

func (s *Syncer) syncOnce() error {
	table, err := cron.Parse(cron.FileTab(s.Path))
	if err != nil {
		return err
	}
	return cron.Add(s.Dest, table.Jobs(), true)
}

// Run performs an initial sync and then re-syncs on every change to the
// watched file until ctx is cancelled. Failed syncs are logged and the
// loop keeps going; the destination is untouched by a failed pass.
func (s *Syncer) Run(ctx context.Context) error {
	if err := s.Sync(); err != nil {
		logrus.Errorf("initial sync of %s failed: %v", s.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file so that editors which
	// replace the file by rename do not drop the watch.
	if err := watcher.Add(filepath.Dir(s.Path)); err != nil {
		return err
	}

	logrus.Infof("watching %s", s.Path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.Path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}

			logrus.Debugf("%s changed (%s), syncing", s.Path, event.Op)
			if err := s.Sync(); err != nil {
				logrus.Errorf("sync of %s failed: %v", s.Path, err)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("watch error: %v", watchErr)
		}
	}
}
