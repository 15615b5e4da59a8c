package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/cortran/internal/model"
	"github.com/kdudkov/cortran/internal/oracle"
	"github.com/kdudkov/cortran/internal/wshandler"
	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/log"
	"github.com/kdudkov/cortran/staticfiles"
)

type API struct {
	f    *fiber.App
	addr string
}

func (api *API) Address() string {
	return api.addr
}

func (api *API) Listen() error {
	return api.f.Listen(api.addr)
}

func (h *HttpServer) NewAPI(app *App, addr string) *API {
	api := &API{addr: addr}
	h.listeners["api calls"] = api

	api.f = newFiber()

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", Level: slog.LevelDebug, DoMetrics: true}))

	staticfiles.Embed(api.f)

	api.f.Get("/", getIndexHandler(app))
	api.f.Get("/config", getConfigHandler(app))

	api.f.Get("/api/xy2ll", getXyToLlHandler(app))
	api.f.Get("/api/ll2xy", getLlToXyHandler(app))
	api.f.Get("/api/shift", getShiftHandler(app))
	api.f.Get("/api/distance", getDistanceHandler())
	api.f.Get("/api/parse", getParseHandler(app))
	api.f.Get("/api/profiles", getProfilesHandler(app))

	api.f.Post("/api/validate", getValidateHandler(app))
	api.f.Get("/api/runs", getRunsHandler(app))
	api.f.Get("/api/runs/:id", getRunHandler(app))

	api.f.Get("/ws/validate", getWsHandler(app))

	return api
}

func getIndexHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := fiber.Map{
			"version": getVersion(),
			"profile": app.conv.Shifter().Profile().Name,
			"oracle":  app.oracle.Name(),
			"oracles": oracle.Kinds(),
		}

		return ctx.Render("templates/index", data, "templates/header")
	}
}

func getConfigHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		p := app.conv.Shifter().Profile()

		m := make(map[string]any)
		m["version"] = getVersion()
		m["profile"] = p.Name
		m["towgs84"] = p.Params.ToWGS84()
		m["legacy_series"] = app.conv.Projection().Legacy
		m["strict_region"] = app.conv.Shifter().Strict()
		m["oracle"] = app.oracle.Name()
		m["points"] = len(app.points.Points())
		m["points_source"] = app.points.Source()
		m["height"] = app.config.ValidateHeight()

		return ctx.JSON(m)
	}
}

func queryFloat(ctx *fiber.Ctx, name string) (float64, error) {
	s := ctx.Query(name)
	if s == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "no "+name)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("bad %s: %q", name, s))
	}

	return v, nil
}

func queryFloats(ctx *fiber.Ctx, names ...string) ([]float64, error) {
	res := make([]float64, len(names))

	for i, name := range names {
		v, err := queryFloat(ctx, name)
		if err != nil {
			return nil, err
		}

		res[i] = v
	}

	return res, nil
}

func queryDatum(ctx *fiber.Ctx, name string, def coord.Datum) (coord.Datum, error) {
	s := ctx.Query(name)
	if s == "" {
		return def, nil
	}

	return coord.ParseDatum(s)
}

func getXyToLlHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v, err := queryFloats(ctx, "x", "y")
		if err != nil {
			return err
		}

		datum, err := queryDatum(ctx, "datum", coord.WGS84)
		if err != nil {
			return err
		}

		pp := coord.NewPlanarPoint(v[0], v[1])
		p, err := app.conv.ToGeodetic(pp, datum, ctx.QueryFloat("h", 0))
		countConversion("xy2ll", err)

		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"planar": pp, "point": p})
	}
}

func getLlToXyHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v, err := queryFloats(ctx, "lat", "lon")
		if err != nil {
			return err
		}

		datum, err := queryDatum(ctx, "datum", coord.WGS84)
		if err != nil {
			return err
		}

		p, err := coord.NewGeodeticPoint(v[0], v[1], ctx.QueryFloat("h", 0), datum)
		if err != nil {
			return err
		}

		pp, err := app.conv.ToPlanar(p)
		countConversion("ll2xy", err)

		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"point": p, "planar": pp})
	}
}

func getShiftHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v, err := queryFloats(ctx, "lat", "lon")
		if err != nil {
			return err
		}

		from, err := queryDatum(ctx, "from", coord.SK42)
		if err != nil {
			return err
		}

		p, err := coord.NewGeodeticPoint(v[0], v[1], ctx.QueryFloat("h", 0), from)
		if err != nil {
			return err
		}

		res, err := app.conv.Convert(p, from.Other())
		countConversion("shift", err)

		if err != nil {
			return err
		}

		db, dl := app.conv.Shifter().Corrections(p.Lat, p.Lon, p.Height)

		return ctx.JSON(fiber.Map{
			"from":    p,
			"to":      res,
			"profile": app.conv.Shifter().Profile().Name,
			"dlat_s":  db,
			"dlon_s":  dl,
		})
	}
}

func getDistanceHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v, err := queryFloats(ctx, "lat1", "lon1", "lat2", "lon2")
		if err != nil {
			return err
		}

		datum, err := queryDatum(ctx, "datum", coord.WGS84)
		if err != nil {
			return err
		}

		p1 := coord.GeodeticPoint{Lat: v[0], Lon: v[1], Datum: datum}
		p2 := coord.GeodeticPoint{Lat: v[2], Lon: v[3], Datum: datum}

		hav, err := coord.GreatCircleDistance(p1, p2)
		if err != nil {
			return err
		}

		geo, err := coord.GeodesicInverse(p1, p2)
		countConversion("distance", err)

		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"haversine":    hav,
			"geodesic":     geo.Distance,
			"azimuth1":     geo.InitialAzimuth,
			"azimuth2":     geo.FinalAzimuth,
			"back_azimuth": geo.BackAzimuth(),
			"bearing":      coord.Bearing(p1.Lat, p1.Lon, p2.Lat, p2.Lon),
		})
	}
}

func getParseHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		p, err := app.conv.Parse(ctx.Query("q"), ctx.QueryFloat("h", 0))
		countConversion("parse", err)

		if err != nil {
			return err
		}

		res := fiber.Map{"point": p}

		// the grid is optional here, points outside of the region still parse
		if pp, err := app.conv.ToPlanar(p); err == nil {
			res["planar"] = pp
		}

		return ctx.JSON(res)
	}
}

func getProfilesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		profiles := coord.Profiles()
		res := make([]fiber.Map, len(profiles))

		for i, p := range profiles {
			res[i] = fiber.Map{
				"name":        p.Name,
				"description": p.Description,
				"params":      p.Params,
				"towgs84":     p.Params.ToWGS84(),
				"region":      p.Region,
				"superseded":  p.Superseded,
			}
		}

		return ctx.JSON(fiber.Map{"active": app.conv.Shifter().Profile().Name, "profiles": res})
	}
}

func getValidateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req ValidateRequest

		if len(ctx.Body()) > 0 {
			if err := ctx.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		run, err := app.Validate(ctx.UserContext(), req)

		switch {
		case errors.Is(err, errRunning):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, oracle.ErrUnknownKind):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return err
		}

		return ctx.JSON(run.ToDTO(true))
	}
}

func getRunsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		runs := app.dbm.RunQuery().
			Profile(ctx.Query("profile")).
			Oracle(ctx.Query("oracle")).
			Limit(ctx.QueryInt("limit", 50)).
			Get()

		res := make([]*model.ValidationRunDTO, len(runs))
		for i, r := range runs {
			res[i] = r.ToDTO(false)
		}

		return ctx.JSON(res)
	}
}

func getRunHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		run := app.dbm.RunQuery().UID(ctx.Params("id")).Full().One()

		if run == nil {
			return fiber.NewError(fiber.StatusNotFound, "no run "+ctx.Params("id"))
		}

		return ctx.JSON(run.ToDTO(true))
	}
}

func getWsHandler(app *App) fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		name := uuid.NewString()

		h := wshandler.NewHandler(app.logger, name, ws)

		app.logger.Debug("ws listener connected")
		app.progress.SubscribeNamed(name, h.Send)
		h.Listen()
		app.progress.Unsubscribe(name)
		app.logger.Debug("ws listener disconnected")
	})
}
