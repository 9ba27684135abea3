package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "progbasebot", Name: "updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "progbasebot", Name: "handler_errors_total", Help: "Handler errors",
	})
	Commands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "progbasebot", Name: "commands_total", Help: "Routed commands by table token",
	}, []string{"command"})
	NotificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "progbasebot", Name: "notifications_sent_total", Help: "Delivered commit check notifications",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "progbasebot", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, Commands, NotificationsSent, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// ObserveCommand — неизвестные команды считаем под одной меткой, чтобы не раздувать кардинальность.
func ObserveCommand(token string, known bool) {
	if !known {
		token = "unknown"
	}
	Commands.WithLabelValues(token).Inc()
}
