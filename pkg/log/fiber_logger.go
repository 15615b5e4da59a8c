package log

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cortran",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "The latency of the HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"api"})

	httpRequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cortran",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of the HTTP requests.",
	}, []string{"api", "route", "method", "code"})
)

type LoggerConfig struct {
	Name string
	// Level is used for successful requests, redirects are logged at Info and errors at Warn.
	Level     slog.Level
	DoMetrics bool
	Logger    *slog.Logger
}

func NewFiberLogger(conf *LoggerConfig) fiber.Handler {
	if conf == nil {
		conf = &LoggerConfig{Name: "http", Level: slog.LevelInfo}
	}

	logger := conf.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("logger", conf.Name))

	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		wt := time.Since(start)

		status := c.Response().StatusCode()

		if chainErr != nil {
			// the error handler sets the final status after the middleware chain
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		if conf.DoMetrics {
			metrics(conf.Name, c, status, wt)
		}

		msg := fmt.Sprintf("%d %s %s %s", status, c.Method(), c.Path(), c.Request().URI().QueryArgs().String())
		l := logger

		if chainErr != nil {
			l = l.With(slog.Any("error", chainErr))
		}

		attrs := []any{
			slog.String("client", c.IP()+":"+c.Port()),
			slog.Int("status", status),
			slog.Int64("ms", wt.Milliseconds()),
		}

		switch {
		case status < 300:
			l.Log(c.UserContext(), conf.Level, msg, attrs...)
		case status < 400:
			l.Info(msg, attrs...)
		default:
			l.Warn(msg, attrs...)
		}

		return chainErr
	}
}

func metrics(api string, ctx *fiber.Ctx, status int, t time.Duration) {
	httpRequestsDuration.With(prometheus.Labels{"api": api}).Observe(t.Seconds())

	// route path keeps the label cardinality bounded
	httpRequestsCount.With(prometheus.Labels{
		"api":    api,
		"route":  ctx.Route().Path,
		"method": ctx.Method(),
		"code":   strconv.Itoa(status),
	}).Inc()
}
