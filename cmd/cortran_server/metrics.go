//nolint:gochecknoglobals
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kdudkov/cortran/pkg/validate"
)

var (
	conversionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cortran",
		Name:      "conversions_total",
		Help:      "The total number of coordinate conversions",
	}, []string{"op", "result"})

	runsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cortran",
		Name:      "validation_runs_total",
		Help:      "The total number of validation runs",
	}, []string{"oracle", "profile", "result"})

	residualMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cortran",
		Name:      "validation_residual_cm",
		Help:      "Residuals of the last validation run",
	}, []string{"oracle", "profile", "kind"})

	failedPointsMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cortran",
		Name:      "validation_failed_points",
		Help:      "Failed points of the last validation run",
	}, []string{"oracle", "profile"})
)

func countConversion(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	conversionsMetric.With(prometheus.Labels{"op": op, "result": result}).Inc()
}

func observeReport(rep *validate.Report) {
	l := prometheus.Labels{"oracle": rep.Oracle, "profile": rep.Profile}

	failedPointsMetric.With(l).Set(float64(rep.Failed))

	for kind, v := range map[string]float64{"mean_dx": rep.MeanDX, "mean_dy": rep.MeanDY, "max": rep.Max} {
		residualMetric.With(prometheus.Labels{"oracle": rep.Oracle, "profile": rep.Profile, "kind": kind}).Set(v)
	}
}
