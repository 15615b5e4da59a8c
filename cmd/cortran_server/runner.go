package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kdudkov/cortran/internal/model"
	"github.com/kdudkov/cortran/internal/oracle"
	"github.com/kdudkov/cortran/internal/wshandler"
	"github.com/kdudkov/cortran/pkg/validate"
)

var errRunning = errors.New("validation is already running")

type ValidateRequest struct {
	Oracle string   `json:"oracle"`
	Height *float64 `json:"height"`
}

func (app *App) getOracle(kind string) (validate.Oracle, error) {
	if kind == "" || kind == app.oracle.Name() {
		return app.oracle, nil
	}

	opts := app.config.OracleOptions()
	opts.Kind = kind

	return oracle.New(opts, app.conv)
}

// Validate runs the validator over the current reference points, streams the progress to the
// subscribers and stores the result. Only one run at a time is allowed.
func (app *App) Validate(ctx context.Context, req ValidateRequest) (*model.ValidationRun, error) {
	o, err := app.getOracle(req.Oracle)
	if err != nil {
		return nil, err
	}

	height := app.config.ValidateHeight()
	if req.Height != nil {
		height = *req.Height
	}

	if !app.running.CompareAndSwap(false, true) {
		return nil, errRunning
	}

	defer app.running.Store(false)

	points := app.points.Points()
	profile := app.conv.Shifter().Profile().Name
	logger := app.logger.With("logger", "runner", "oracle", o.Name())

	logger.Info(fmt.Sprintf("validation of %d points from %s started", len(points), app.points.Source()))
	app.progress.Fire(&wshandler.WebMessage{Typ: wshandler.TypeStart, Total: len(points)})

	rep, err := validate.New(app.conv, o, height).Run(ctx, points, func(r validate.Residual) {
		app.progress.Fire(&wshandler.WebMessage{Typ: wshandler.TypeResidual, Residual: &r})
	})

	if err != nil {
		logger.Error("validation failed", slog.Any("error", err))
		runsMetric.With(prometheus.Labels{"oracle": o.Name(), "profile": profile, "result": "error"}).Inc()
		app.progress.Fire(&wshandler.WebMessage{Typ: wshandler.TypeError, Error: err.Error()})

		return nil, err
	}

	runsMetric.With(prometheus.Labels{"oracle": o.Name(), "profile": profile, "result": "ok"}).Inc()
	observeReport(rep)

	run, err := app.dbm.SaveReport(rep)
	if err != nil {
		app.progress.Fire(&wshandler.WebMessage{Typ: wshandler.TypeError, Error: err.Error()})

		return nil, err
	}

	if err := app.dbm.Trim(app.config.KeepRuns()); err != nil {
		logger.Error("error deleting old runs", slog.Any("error", err))
	}

	app.progress.Fire(&wshandler.WebMessage{Typ: wshandler.TypeDone, RunUID: run.UID, Run: run.ToDTO(false)})

	return run, nil
}
