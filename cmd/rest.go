package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mraff116/vugru-music-mvp/config"
	"github.com/mraff116/vugru-music-mvp/infrastructure/supabase"
	"github.com/mraff116/vugru-music-mvp/integrations/elevenmusic"
	"github.com/mraff116/vugru-music-mvp/pkg/admission"
	"github.com/mraff116/vugru-music-mvp/pkg/trackcache"
	"github.com/mraff116/vugru-music-mvp/ui/rest"
	"github.com/mraff116/vugru-music-mvp/ui/rest/middleware"
	"github.com/mraff116/vugru-music-mvp/usecase"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the music generation API over http",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	cfg := config.Global

	fiberConfig := fiber.Config{
		AppName:      cfg.App.Name,
		Network:      "tcp",
		ServerHeader: "Hidden",
		// Generated clips are held in memory; allow some headroom on uploads.
		BodyLimit: 10 * 1024 * 1024,
	}
	if len(cfg.App.TrustedProxies) > 0 {
		fiberConfig.EnableTrustedProxyCheck = true
		fiberConfig.TrustedProxies = cfg.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedFor
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.App.CorsAllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders: strings.Join([]string{
			fiber.HeaderContentDisposition, "X-Track-ID", "X-Prompt", "X-Storage-URL",
		}, ", "),
	}))
	app.Use(middleware.Recovery())
	app.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.App.Debug {
		app.Use(logger.New())
	}

	// Wire the services. Missing provider credentials only disable the
	// affected endpoints (503), never startup.
	backend := supabase.NewClient(cfg.Supabase)
	if !backend.IsConfigured() {
		logrus.Warn("[REST] Supabase is not configured; auth and persistence endpoints will answer 503")
	}
	generator := elevenmusic.NewClient(cfg.ElevenLabs)
	if !generator.IsConfigured() {
		logrus.Warn("[REST] ElevenLabs is not configured; music generation will answer 503")
	}

	authUsecase := usecase.NewAuthService(backend)
	trackUsecase := usecase.NewTrackService(backend)
	musicUsecase := usecase.NewMusicService(
		generator,
		generator,
		trackUsecase,
		admission.NewGate(),
		trackcache.New(cfg.Cache.TrackTTL),
		cfg.Cache.RecentLimit,
	)

	apiGroup := app.Group(cfg.App.BasePath + "/api")

	rest.InitRestAuth(apiGroup, authUsecase)
	rest.InitRestMusic(apiGroup, musicUsecase, authUsecase)
	rest.InitRestTrack(apiGroup, trackUsecase, authUsecase)
	rest.InitRestHealth(apiGroup)

	// 404 handler scoped to the API group so unknown endpoints do not fall
	// through to the static frontend.
	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API endpoint not found",
			"path":  c.Path(),
		})
	})

	// Static frontend, when bundled next to the binary.
	if info, err := os.Stat(cfg.App.StaticDir); err == nil && info.IsDir() {
		app.Static(cfg.App.BasePath+"/", cfg.App.StaticDir)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalln("Failed to start the REST server:", err)
	}
}
