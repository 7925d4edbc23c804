package main

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/catalog"
	"github.com/moviemagic/movie-booking/internal/config"
	"github.com/moviemagic/movie-booking/internal/database"
	"github.com/moviemagic/movie-booking/internal/handler"
	"github.com/moviemagic/movie-booking/internal/queue"
	"github.com/moviemagic/movie-booking/internal/repository"
	"github.com/moviemagic/movie-booking/internal/router"
	"github.com/moviemagic/movie-booking/internal/session"
	"github.com/moviemagic/movie-booking/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs the checkout store, rate limiter and page cache. When it
	// is unreachable the checkout store falls back to process memory and
	// the middleware become no-ops.
	rdb := config.NewRedisClient()
	var checkout session.Store
	if rdb != nil {
		checkout = session.NewRedisStore(rdb, time.Duration(cfg.CheckoutTTLMin)*time.Minute)
	} else {
		log.Printf("redis unavailable; using in-process checkout store")
		checkout = session.NewMemoryStore()
	}

	users := repository.NewUserRepo(db)
	bookings := repository.NewBookingRepo(db)
	cat := catalog.Default()

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.HideBanner = true

	auth := handler.NewAuthHandler(cfg, users, checkout)
	pages := handler.NewPageHandler(cat)
	booking := handler.NewBookingHandler(cfg, cat, bookings, checkout)
	router.RegisterRoutes(e, cfg, rdb, auth, pages, booking)

	// Consume booking confirmations in the background; the loop reconnects
	// on its own and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	if cfg.OpenBrowser {
		openBrowser(cfg, addr)
	}

	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openBrowser launches the default browser at the site URL shortly after
// startup. Purely a dev convenience; failures are ignored.
func openBrowser(cfg config.Config, addr string) {
	url := cfg.BaseURL
	if url == "" {
		url = "http://localhost" + addr
	}
	time.AfterFunc(1500*time.Millisecond, func() {
		cmd := "xdg-open"
		if runtime.GOOS == "darwin" {
			cmd = "open"
		}
		_ = exec.Command(cmd, url).Start()
	})
}
