package main

import (
	"embed"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/kdudkov/cortran/pkg/coord"
)

//go:embed templates
var templates embed.FS

type Listener interface {
	Address() string
	Listen() error
}

type HttpServer struct {
	log       *slog.Logger
	listeners map[string]Listener
}

func NewHttp(app *App) *HttpServer {
	srv := &HttpServer{
		log:       app.logger.With("logger", "http"),
		listeners: make(map[string]Listener),
	}

	if addr := app.config.String("api_addr"); addr != "" {
		srv.NewAPI(app, addr)
	}

	if addr := app.config.String("local_addr"); addr != "" {
		srv.NewLocalAPI(addr)
	}

	return srv
}

func (h *HttpServer) Start() {
	for name, listener := range h.listeners {
		go func(name string, listener Listener) {
			h.log.Info("listening " + name + " at " + listener.Address())

			if err := listener.Listen(); err != nil {
				h.log.Error("error in "+name, slog.Any("error", err))
				panic(err)
			}
		}(name, listener)
	}
}

func newFiber() *fiber.App {
	engine := html.NewFileSystem(http.FS(templates), ".html")

	engine.Delims("[[", "]]")

	return fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		Views:                 engine,
		ErrorHandler:          errorHandler,
	})
}

// errorHandler answers with {"error": "..."}: 400 for bad coordinates, the fiber code for
// fiber errors and 500 for the rest.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case coord.IsInputError(err):
		code = fiber.StatusBadRequest
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
