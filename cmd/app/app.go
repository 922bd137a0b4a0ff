package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	v1 "rankiou/api/v1"
	"rankiou/internal/backend"
	"rankiou/internal/session"
	"rankiou/pkg/logger"
	"rankiou/pkg/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp/reuseport"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("failed to load .env, check that it exists:", err)
		os.Exit(1)
	}
	logger.Configure(logger.Level())

	backendURL := os.Getenv("APP_BACKEND_URL")
	backendKey := os.Getenv("APP_BACKEND_KEY")
	if backendURL == "" || backendKey == "" {
		log.Fatal().Msg("APP_BACKEND_URL and APP_BACKEND_KEY are required")
	}

	app := server.NewFiber()
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Second * 60,
	}))

	svc := backend.NewRestClient(backendURL, backendKey)
	hub := session.NewHub(svc)
	v1.SetupRoutes(app, svc, hub)

	run(app)
}

func run(app *fiber.App) {
	port := os.Getenv("APP_PORT")
	if os.Getenv("APP_BUILD_MODE") == "dev" {
		log.Info().Msg("dev mode enabled")
		log.Fatal().Err(app.Listen(port)).Send()
	} else {
		go func() {
			ln, err := reuseport.Listen("tcp4", port)
			if err != nil {
				log.Panic().Err(err).Msg("listen failed")
			}

			if err = app.Listener(ln); err != nil {
				log.Panic().Err(err).Msg("listen failed")
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGHUP)
		<-c

		log.Info().Msg("hot-restarting server...")
		exe, _ := os.Executable()
		cmd := exec.Command(exe)
		if err := cmd.Start(); err != nil {
			log.Error().Err(err).Msg("failed to start replacement process")
			return
		}
		_ = app.Shutdown()
	}
}
