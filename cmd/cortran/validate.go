package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdudkov/cortran/internal/database"
	"github.com/kdudkov/cortran/internal/oracle"
	"github.com/kdudkov/cortran/pkg/validate"
)

func newValidateCmd(c *cli) *cobra.Command {
	var (
		disabled bool
		store    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "round trip the reference points through an oracle and print the residuals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			conv, err := c.converter()
			if err != nil {
				return err
			}

			o, err := oracle.New(c.cfg.OracleOptions(), conv)
			if err != nil {
				return err
			}

			points := validate.DefaultPoints()

			switch {
			case c.cfg.PointsFile() != "":
				if points, err = validate.LoadPointsFile(c.cfg.PointsFile()); err != nil {
					return err
				}
			case disabled:
				points = append(points, validate.DisabledPoints()...)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			rep, err := validate.New(conv, o, c.cfg.ValidateHeight()).Run(ctx, points, func(r validate.Residual) {
				if r.Failed() {
					fmt.Fprintf(out, "%s error: %s\n", r.Point, r.Error)
				} else {
					fmt.Fprintf(out, "%s %.2f %.2f\n", r.Point, r.DX*100, r.DY*100)
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out, rep.String())

			if !store {
				return nil
			}

			db, err := database.Open(c.cfg.DB(), false)
			if err != nil {
				return err
			}

			dbm := database.New(db)
			if err := dbm.Migrate(); err != nil {
				return err
			}

			run, err := dbm.SaveReport(rep)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "stored as %s\n", run.UID)

			return dbm.Trim(c.cfg.KeepRuns())
		},
	}

	f := cmd.Flags()
	f.String("points", "", "YAML file with reference points")
	f.String("oracle", oracle.KindEngine, "oracle: engine, proj or epsgio")
	f.String("oracle-url", oracle.DefaultEpsgURL, "epsg.io compatible service")
	f.Float64("height", validate.DefaultHeight, "ellipsoidal height of the points, m")
	f.String("db", "cortran.sqlite", "sqlite file for --store")
	f.BoolVar(&disabled, "all", false, "include the disabled northern points")
	f.BoolVar(&store, "store", false, "store the run in the database")

	if err := c.cfg.BindFlags(f, map[string]string{
		"points":     "points_file",
		"oracle":     "oracle.kind",
		"oracle-url": "oracle.url",
		"height":     "validate.height",
		"db":         "db",
	}); err != nil {
		panic(err)
	}

	return cmd
}
