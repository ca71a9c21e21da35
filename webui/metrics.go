package webui

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbforge_thumbnails_generated_total",
		Help: "Thumbnails generated via the web UI, by output format.",
	}, []string{"format"})

	generateFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbforge_generate_failures_total",
		Help: "Generation requests that failed.",
	})

	uploadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbforge_upload_failures_total",
		Help: "Upload requests that failed.",
	})

	generateSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "thumbforge_generate_seconds",
		Help:    "Wall time of thumbnail generation.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(generatedTotal, generateFailures, uploadFailures, generateSeconds)
}
