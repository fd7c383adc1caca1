package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const namespace = "event_registration"

var (
	submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Registration submissions by outcome status",
	}, []string{"status"})

	participants = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "participants_total",
		Help:      "Participants written, split by whether the write succeeded",
	}, []string{"saved"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern, method and status code",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})

	dbDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Database statement latency by operation",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation"})

	schemaReady = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "schema_ready",
		Help:      "1 when the last schema setup succeeded, 0 otherwise",
	})
)

func init() {
	for _, c := range []prometheus.Collector{submissions, participants, httpDuration, dbDuration, schemaReady} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				slog.Error("can't register metric", "error", err)
			}
		}
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveSubmission(res models.SubmissionResult) {
	submissions.WithLabelValues(string(res.Status())).Inc()
	participants.WithLabelValues("true").Add(float64(res.Saved))
	participants.WithLabelValues("false").Add(float64(res.Total - res.Saved))
}

func SetSchemaReady(ready bool) {
	if ready {
		schemaReady.Set(1)
		return
	}
	schemaReady.Set(0)
}

// Middleware records request latency labelled with the chi route pattern, so
// /registrations/{email} is one series regardless of the email.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		httpDuration.WithLabelValues(route, r.Method, strconv.Itoa(code)).Observe(time.Since(start).Seconds())
	})
}

const startKey = "metrics:start"

// InstrumentDB times every gorm statement through callbacks.
func InstrumentDB(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startKey)
			if !ok {
				return
			}
			if start, ok := v.(time.Time); ok {
				dbDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
			}
		}
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", after("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", after("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:before_raw", before); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("metrics:after_raw", after("raw")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("metrics:before_row", before); err != nil {
		return err
	}
	return cb.Row().After("gorm:row").Register("metrics:after_row", after("row"))
}
