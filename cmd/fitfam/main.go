package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vergaracl/fitfam/internal/api"
	"github.com/vergaracl/fitfam/internal/db"
	"github.com/vergaracl/fitfam/internal/security"
	"github.com/vergaracl/fitfam/internal/services"
	"github.com/vergaracl/fitfam/internal/storage"
	"gorm.io/gorm"
)

const bootstrapTimeout = 15 * time.Second

func main() {
	location := mustLoadLocation(getEnv("TZ", "America/Santiago"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		generated, err := security.RandomString(48, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
		if err != nil {
			log.Fatalf("generate session secret: %v", err)
		}
		secretKey = generated
		log.Print("SECRET_KEY not set, sessions will not survive a restart")
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "fitfam.db"))
	mediaDir := getEnv("MEDIA_DIR", filepath.Join("data", "media"))
	port := getEnv("PORT", "8080")
	geminiKey := getEnv("GEMINI_API_KEY", "")
	geminiModel := getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	roster := getEnv("FAMILY_ROSTER", "jose:Jose,javi:Javi,gonza:Gonza,fran:Fran")

	// A slow or misconfigured database should fail loudly, not hang.
	database, err := bootstrap(dbPath, roster)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	objects := storage.NewLocalStore(mediaDir, "/media")
	judge := services.NewGeminiJudge(geminiKey, geminiModel)
	handler := api.NewHandler(database, secretKey, location, objects, judge, getEnv("COOKIE_SECURE", "") == "true")

	app := fiber.New(fiber.Config{
		AppName:               "FitFam",
		DisableStartupMessage: true,
		BodyLimit:             12 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	app.Static("/media", mediaDir)
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("FitFam listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func bootstrap(dbPath string, roster string) (*gorm.DB, error) {
	type result struct {
		database *gorm.DB
		err      error
	}

	done := make(chan result, 1)
	go func() {
		database, err := db.OpenSQLite(dbPath)
		if err != nil {
			done <- result{err: err}
			return
		}

		members, err := services.ParseRoster(roster)
		if err != nil {
			done <- result{err: err}
			return
		}
		if err := services.EnsureRoster(db.NewUserRepository(database), members); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{database: database}
	}()

	select {
	case r := <-done:
		return r.database, r.err
	case <-time.After(bootstrapTimeout):
		return nil, context.DeadlineExceeded
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
