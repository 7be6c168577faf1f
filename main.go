package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"academic_backend/internals/configs"
	database "academic_backend/internals/databases"
	"academic_backend/internals/features/academic/service"
	helper "academic_backend/internals/helpers"
	middlewares "academic_backend/internals/middlewares"
	routes "academic_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FiberErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + schema + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.DBAutoMigrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("[DB] %v", err)
		}
	}
	database.WarmUpQueries()

	// report cache opsional (REDIS_ADDR)
	var cache service.ReportCache = service.NoopReportCache{}
	rdb := database.ConnectRedis()
	if rdb != nil {
		cache = service.NewRedisReportCache(rdb, configs.ReportCacheTTL)
	}
	svc := service.NewGradingService(database.DB, cache)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, svc)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB & redis
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[APP] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close()
}
