package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/applico/orchard-advisor/internal/api"
	"github.com/applico/orchard-advisor/internal/config"
	"github.com/applico/orchard-advisor/internal/handler"
	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/applico/orchard-advisor/internal/scheduler"
	"github.com/applico/orchard-advisor/internal/service"
	"github.com/applico/orchard-advisor/internal/spatial"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	gin.SetMode(cfg.GinMode)

	display, err := config.LoadDisplay(cfg.DisplayConfigPath)
	if err != nil {
		log.Fatal("Failed to load display config: ", err)
	}

	var layout *spatial.Layout
	if cfg.HasGeoAnchor() {
		layout, err = spatial.NewLayout(*cfg.OrchardLat, *cfg.OrchardLon, cfg.TreeSpacingM)
		if err != nil {
			log.Fatal("Failed to set up orchard layout: ", err)
		}
	}

	seed := cfg.SeedOrNow()
	grid, err := service.NewGridService(service.GridOptions{
		Rows:       cfg.GridRows,
		Cols:       cfg.GridCols,
		CellSize:   cfg.CellSize,
		MinFruit:   cfg.MinFruit,
		MaxFruit:   cfg.MaxFruit,
		MaxTrees:   cfg.MaxTrees,
		Thresholds: cfg.Thresholds,
		Source:     orchard.NewRandSource(seed),
		Layout:     layout,
	})
	if err != nil {
		log.Fatal("Failed to set up grid: ", err)
	}
	log.Printf("Grid %dx%d, thresholds warning=%.2f diseased=%.2f, seed %d",
		cfg.GridRows, cfg.GridCols, cfg.Thresholds.Warning, cfg.Thresholds.Diseased, seed)

	dashboard := service.NewDashboardService(display, grid)

	// 初始化路由
	router, err := api.SetupRouter(cfg, api.Handlers{
		Orchard:   handler.NewOrchardHandler(grid, dashboard),
		Sensor:    handler.NewSensorHandler(dashboard),
		Dashboard: handler.NewDashboardHandler(dashboard, grid),
	})
	if err != nil {
		log.Fatal("Failed to set up router: ", err)
	}

	var refresher *scheduler.Refresher
	if cfg.RefreshSchedule != "" {
		refresher, err = scheduler.NewRefresher("grid refresh", cfg.RefreshSchedule, func() error {
			_, err := grid.Regenerate()
			return err
		})
		if err != nil {
			log.Fatal("Failed to schedule grid refresh: ", err)
		}
		refresher.Start()
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if refresher != nil {
		if err := refresher.Stop(ctx); err != nil {
			log.Printf("Scheduler stop: %v", err)
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
