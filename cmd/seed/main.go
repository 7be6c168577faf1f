package main

import (
	"context"
	"flag"
	"log"

	"academic_backend/internals/configs"
	database "academic_backend/internals/databases"
	"academic_backend/internals/features/academic/service"
	"academic_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	file := flag.String("file", configs.SeedFile, "path to the academic fixture JSON")
	flag.Parse()

	database.ConnectDB()
	defer database.Close()
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("[SEED] %v", err)
	}

	// seed writes go through the same report cache the API reads from
	var cache service.ReportCache = service.NoopReportCache{}
	if rdb := database.ConnectRedis(); rdb != nil {
		defer rdb.Close()
		cache = service.NewRedisReportCache(rdb, configs.ReportCacheTTL)
	}
	svc := service.NewGradingService(database.DB, cache)
	if err := seeds.RunAllSeeds(context.Background(), svc, *file); err != nil {
		log.Fatalf("[SEED] %v", err)
	}
}
