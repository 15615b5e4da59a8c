package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kdudkov/cortran/internal/callbacks"
	"github.com/kdudkov/cortran/internal/config"
	"github.com/kdudkov/cortran/internal/database"
	"github.com/kdudkov/cortran/internal/oracle"
	"github.com/kdudkov/cortran/internal/repository"
	"github.com/kdudkov/cortran/internal/wshandler"
	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/validate"
)

type App struct {
	config *config.AppConfig
	logger *slog.Logger

	conv   *coord.Converter
	oracle validate.Oracle
	points repository.PointsRepository
	dbm    *database.DatabaseManager

	progress *callbacks.Events[*wshandler.WebMessage]
	running  atomic.Bool
}

func NewApp(cfg *config.AppConfig) (*App, error) {
	conv, err := cfg.Converter()
	if err != nil {
		return nil, err
	}

	o, err := oracle.New(cfg.OracleOptions(), conv)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DB(), cfg.Bool("debug"))
	if err != nil {
		return nil, err
	}

	app := &App{
		config:   cfg,
		logger:   slog.Default(),
		conv:     conv,
		oracle:   o,
		dbm:      database.New(db),
		progress: callbacks.NewEvents[*wshandler.WebMessage](),
	}

	if err := app.dbm.Migrate(); err != nil {
		return nil, err
	}

	if name := cfg.PointsFile(); name != "" {
		app.points = repository.NewFilePointsRepo(name)
	} else {
		app.points = repository.NewPointsMemoryRepo(nil)
	}

	return app, nil
}

func (app *App) Run() {
	if err := app.points.Start(); err != nil {
		app.logger.Error("can't watch points", slog.Any("error", err))
	}

	p := app.conv.Shifter().Profile()
	app.logger.Info(fmt.Sprintf("profile %s, oracle %s, %d reference points from %s",
		p.Name, app.oracle.Name(), len(app.points.Points()), app.points.Source()))

	NewHttp(app).Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	app.points.Stop()
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	conf := flag.String("config", "cortran.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)
	cfg.LoadEnv(config.EnvPrefix)

	if *debug {
		cfg.Set("debug", true)
	}

	var h slog.Handler
	if cfg.Bool("debug") {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("can't start", slog.Any("error", err))
		os.Exit(1)
	}

	app.Run()
}
