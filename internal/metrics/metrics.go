package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	AnnouncementOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "announcement_operations_total", Help: "Announcement store operations by result"},
		[]string{"op", "result"},
	)
	CleanupFlipped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "announcement_cleanup_flipped_total", Help: "Announcements deactivated by expiry cleanup"},
	)
	LoginRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "login_rate_limited_total", Help: "Login attempts rejected by the rate limiter"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(RequestsTotal, ReqDuration, AnnouncementOps, CleanupFlipped, LoginRejected)
}
