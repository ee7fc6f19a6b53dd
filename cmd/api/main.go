package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	dbpkg "github.com/konsultaklinik/clinic-scheduler/internal/db"
	"github.com/konsultaklinik/clinic-scheduler/internal/logger"
	"github.com/konsultaklinik/clinic-scheduler/internal/middleware"
	"github.com/konsultaklinik/clinic-scheduler/internal/routes"
	"github.com/konsultaklinik/clinic-scheduler/internal/seed"
)

func main() {

	cfg := config.Load()

	log := logger.New(os.Getenv("APP_ENV"))
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	if cfg.SeedOnStart {
		if err := seed.Run(db, log); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
