package prometheus_metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultPort = "9812"

// PrometheusMetrics exposes counters for the crontab sync loop.
type PrometheusMetrics struct {
	SyncsCounter        *prometheus.CounterVec
	SyncFailuresCounter *prometheus.CounterVec
	TableJobsGauge      *prometheus.GaugeVec
	SyncTimeHistogram   *prometheus.HistogramVec

	registry   *prometheus.Registry
	listenAddr string
	srv        *http.Server
}

func New(promListenAddr string) (*PrometheusMetrics, error) {
	addr, err := getAddr(promListenAddr)
	if err != nil {
		return nil, err
	}

	pm := PrometheusMetrics{
		registry:   prometheus.NewRegistry(),
		listenAddr: addr,
	}

	pm.SyncsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cronberry_syncs",
			Help: "count of crontab sync attempts",
		},
		[]string{"source", "destination"},
	)
	pm.registry.MustRegister(pm.SyncsCounter)

	pm.SyncFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cronberry_sync_failures",
			Help: "count of failed crontab syncs",
		},
		[]string{"source", "destination"},
	)
	pm.registry.MustRegister(pm.SyncFailuresCounter)

	pm.TableJobsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cronberry_table_jobs",
			Help: "number of titled jobs in the destination table after the last sync",
		},
		[]string{"destination"},
	)
	pm.registry.MustRegister(pm.TableJobsGauge)

	pm.SyncTimeHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cronberry_sync_time_seconds",
			Help:    "time spent reading, reconciling and installing the table",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"source", "destination"},
	)
	pm.registry.MustRegister(pm.SyncTimeHistogram)

	return &pm, nil
}

func (p *PrometheusMetrics) Reset() {
	p.SyncsCounter.Reset()
	p.SyncFailuresCounter.Reset()
	p.TableJobsGauge.Reset()
	p.SyncTimeHistogram.Reset()
}

func (p *PrometheusMetrics) InitHTTPServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
             <head><title>Cronberry</title></head>
             <body>
             <h1>Cronberry</h1>
             <p><a href='/metrics'>Metrics</a></p>
             </body>
             </html>`))
	})

	p.srv = &http.Server{Addr: p.listenAddr, Handler: mux}
	return p.srv.ListenAndServe()
}

func (p *PrometheusMetrics) ShutdownHTTPServer(c context.Context) error {
	if p.srv == nil {
		return nil
	}
	return p.srv.Shutdown(c)
}

// getAddr fills in the default port when the listen address omits one.
func getAddr(listenAddr string) (string, error) {
	if listenAddr == "" {
		return "", fmt.Errorf("empty metrics listen address")
	}

	if _, _, err := net.SplitHostPort(listenAddr); err == nil {
		return listenAddr, nil
	}

	host := listenAddr
	if host[0] == '[' && host[len(host)-1] == ']' {
		host = host[1 : len(host)-1]
	}

	addr := net.JoinHostPort(host, defaultPort)
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", err
	}
	return addr, nil
}
