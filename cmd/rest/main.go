package main

import (
	"context"
	"log"

	"ai-multichat-be/internal/bootstrap"
	"ai-multichat-be/internal/config"
	"ai-multichat-be/internal/server"
	"ai-multichat-be/internal/tracer"
	"ai-multichat-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Initialize Database (optional; in-memory store without a DSN)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Unable to migrate chat tables: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Shutdown(context.Background())

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
