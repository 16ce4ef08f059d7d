package main

import (
	"fmt"
	"log"

	"delivery-backend/configs"
	"delivery-backend/routes"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedManager(cfg.ManagerEmail, cfg.ManagerPassword); err != nil {
		log.Fatalf("seed manager failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemoCatalog(); err != nil {
			log.Fatalf("seed demo catalog failed: %v", err)
		}
	}

	// Session store: Redis ถ้าตั้ง REDIS_ADDR, ไม่งั้นเก็บใน memory
	var tokens services.TokenStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tokens = services.NewRedisTokenStore(client)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory session store")
		tokens = services.NewMemoryTokenStore()
	}

	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, tokens)

	fmt.Println("listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
