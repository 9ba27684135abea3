package jobs

import "github.com/prometheus/client_golang/prometheus"

var (
	jobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "progbasebot", Subsystem: "job", Name: "runs_total",
		Help: "Background job runs",
	}, []string{"job"})

	jobErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "progbasebot", Subsystem: "job", Name: "errors_total",
		Help: "Background job runs that returned an error or panicked",
	}, []string{"job"})

	jobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "progbasebot", Subsystem: "job", Name: "duration_seconds",
		Help:    "Background job duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})

	jobLastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "progbasebot", Subsystem: "job", Name: "last_success_timestamp_seconds",
		Help: "Unix time of the last successful run",
	}, []string{"job"})
)

func init() {
	prometheus.MustRegister(jobRuns, jobErrors, jobDuration, jobLastSuccess)
}
