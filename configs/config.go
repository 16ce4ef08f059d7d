package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// ว่าง = ใช้ session store ใน memory (dev/test)
	RedisAddr string

	ManagerEmail    string
	ManagerPassword string
	SeedDemo        bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:        getEnv("DB_SOURCE", "delivery.db"),
		Port:            getEnv("PORT", "8000"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		JWTTTL:          time.Duration(24) * time.Hour,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ManagerEmail:    os.Getenv("MANAGER_EMAIL"),
		ManagerPassword: os.Getenv("MANAGER_PASSWORD"),
		SeedDemo:        getEnv("SEED_DEMO", "") == "1",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
