package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kdudkov/cortran/pkg/coord"
)

func parseFloats(args []string, names ...string) ([]float64, error) {
	res := make([]float64, len(args))

	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad %s: %q", names[i], s)
		}

		res[i] = v
	}

	return res, nil
}

func datumFlag(sk42 bool) coord.Datum {
	if sk42 {
		return coord.SK42
	}

	return coord.WGS84
}

func newXyToLlCmd(c *cli) *cobra.Command {
	var (
		h    float64
		sk42 bool
	)

	cmd := &cobra.Command{
		Use:   "xy2ll X Y",
		Short: "SK42 grid X/Y to lat/lon (WGS84 by default)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "x", "y")
			if err != nil {
				return err
			}

			conv, err := c.converter()
			if err != nil {
				return err
			}

			p, err := conv.ToGeodetic(coord.NewPlanarPoint(v[0], v[1]), datumFlag(sk42), h)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.7f %.7f\n", p.Lat, p.Lon)

			return nil
		},
	}

	cmd.Flags().Float64Var(&h, "h", 0, "ellipsoidal height, m")
	cmd.Flags().BoolVar(&sk42, "sk42", false, "return SK42 lat/lon")

	return cmd
}

func newLlToXyCmd(c *cli) *cobra.Command {
	var (
		h    float64
		sk42 bool
	)

	cmd := &cobra.Command{
		Use:   "ll2xy LAT LON",
		Short: "lat/lon (WGS84 by default) to SK42 grid X/Y",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "lat", "lon")
			if err != nil {
				return err
			}

			conv, err := c.converter()
			if err != nil {
				return err
			}

			p, err := coord.NewGeodeticPoint(v[0], v[1], h, datumFlag(sk42))
			if err != nil {
				return err
			}

			pp, err := conv.ToPlanar(p)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.2f %.2f %d\n", pp.X, pp.Y, pp.Zone)

			return nil
		},
	}

	cmd.Flags().Float64Var(&h, "h", 0, "ellipsoidal height, m")
	cmd.Flags().BoolVar(&sk42, "sk42", false, "input is SK42 lat/lon")

	return cmd
}

func newShiftCmd(c *cli) *cobra.Command {
	var (
		h           float64
		from        string
		corrections bool
	)

	cmd := &cobra.Command{
		Use:   "shift LAT LON",
		Short: "datum shift between SK42 and WGS84 lat/lon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "lat", "lon")
			if err != nil {
				return err
			}

			d, err := coord.ParseDatum(from)
			if err != nil {
				return err
			}

			conv, err := c.converter()
			if err != nil {
				return err
			}

			p, err := conv.Convert(coord.GeodeticPoint{Lat: v[0], Lon: v[1], Height: h, Datum: d}, d.Other())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.7f %.7f\n", p.Lat, p.Lon)

			if corrections {
				db, dl := conv.Shifter().Corrections(v[0], v[1], h)
				fmt.Fprintf(cmd.OutOrStdout(), "dB=%.4f\" dL=%.4f\"\n", db, dl)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&h, "h", 0, "ellipsoidal height, m")
	cmd.Flags().StringVar(&from, "from", "sk42", "source datum, sk42 or wgs84")
	cmd.Flags().BoolVarP(&corrections, "corrections", "c", false, "print the corrections in arc-seconds")

	return cmd
}

func newDistCmd(_ *cli) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "dist [LAT1 LON1 LAT2 LON2]",
		Short: "haversine and geodesic distance, --from prints the city table",
		Args: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				return cobra.NoArgs(cmd, args)
			}

			return cobra.ExactArgs(4)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if from != "" {
				return cityTable(cmd, from)
			}

			v, err := parseFloats(args, "lat1", "lon1", "lat2", "lon2")
			if err != nil {
				return err
			}

			p1 := coord.GeodeticPoint{Lat: v[0], Lon: v[1]}
			p2 := coord.GeodeticPoint{Lat: v[2], Lon: v[3]}

			hav, err := coord.GreatCircleDistance(p1, p2)
			if err != nil {
				return err
			}

			geo, err := coord.GeodesicInverse(p1, p2)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "haversine %.3f m\n", hav)
			fmt.Fprintf(out, "geodesic  %.3f m\n", geo.Distance)
			fmt.Fprintf(out, "azimuth   %.3f %.3f\n", geo.InitialAzimuth, geo.BackAzimuth())

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "city: "+strings.Join(cityNames(), ", "))

	return cmd
}

func cityTable(cmd *cobra.Command, from string) error {
	p0, ok := cities[strings.ToLower(from)]
	if !ok {
		return fmt.Errorf("unknown city %q", from)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "point\thaversine, km\tdiff, m\tgeodesic, km\tazimuth\tback")

	for _, name := range cityNames() {
		p := cities[name]

		hav, err := coord.GreatCircleDistance(p0, p)
		if err != nil {
			return err
		}

		geo, err := coord.GeodesicInverse(p0, p)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.1f\t%.1f\n",
			name, hav/1000, hav-geo.Distance, geo.Distance/1000, geo.InitialAzimuth, geo.BackAzimuth())
	}

	return w.Flush()
}

func newParseCmd(c *cli) *cobra.Command {
	var h float64

	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: `parse "x4452988 y8458594", "40.2 44.5" or "40.2N 44.5E"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := c.converter()
			if err != nil {
				return err
			}

			p, err := conv.Parse(strings.Join(args, " "), h)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "WGS84 %.7f %.7f\n", p.Lat, p.Lon)

			if pp, err := conv.ToPlanar(p); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "SK42  x=%.2f y=%.2f zone %d\n", pp.X, pp.Y, pp.Zone)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&h, "h", 0, "ellipsoidal height, m")

	return cmd
}

func newProfilesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "list the datum shift profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active, err := c.cfg.Profile()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tname\ttowgs84\tregion\tdescription")

			for _, p := range coord.Profiles() {
				mark := ""

				switch {
				case p.Name == active.Name:
					mark = "*"
				case p.Superseded:
					mark = "-"
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mark, p.Name, p.Params.ToWGS84(), p.Region, p.Description)
			}

			return w.Flush()
		},
	}
}
