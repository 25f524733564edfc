package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/learnfx/academy-api/api"
	"github.com/learnfx/academy-api/config"
	"github.com/learnfx/academy-api/database"
	"github.com/learnfx/academy-api/router"
	"github.com/learnfx/academy-api/services/cron"
	"github.com/learnfx/academy-api/utils/cache"
	"gorm.io/gorm"
)

func SetupAndRunApp() error {
	// load ENV
	err := config.LoadENV()
	if err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// start database
	store, err := database.StartGORM()
	if err != nil {
		return err
	}
	defer store.Close()

	// run migrations
	if err := store.Init(); err != nil {
		return err
	}

	// Redis is optional; without it catalog and rating caches are skipped
	// and every read goes to Postgres.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v. Continuing without cache.", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Println("Successfully connected to Redis")
		}
	}

	// start background jobs
	db := store.GetDB().(*gorm.DB)
	cronManager := cron.NewManager(db, redisCache)
	if err := cronManager.Start(); err != nil {
		log.Printf("Warning: failed to start cron jobs: %v", err)
	} else {
		defer cronManager.Stop()
	}

	// create server
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))

	// setup routes
	router.SetupRoutes(server.GetEngine(), store, redisCache)

	// shut down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		if err := server.GetEngine().Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// run server
	return server.Run()
}
