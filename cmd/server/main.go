package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/adilg123/huff-processor/internal/api"
	"github.com/adilg123/huff-processor/internal/config"
	"github.com/adilg123/huff-processor/pkg/logger"
)

func main() {
	cfg := config.Load()
	logg := logger.New(cfg.DebugLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxFileSize
	api.SetupRoutes(r, api.NewHandler(cfg, logg))

	addr := ":" + cfg.Port
	logg.Infof("starting server at %s (%s)", addr, cfg.Environment)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
