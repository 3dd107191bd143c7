package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DbDsn      string
	TgToken    string
	UploadAddr string
	UploadURL  string
	ChartDir   string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig loads the configuration once from the environment, reading
// an optional .env file first.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file, using environment: %v", err)
		}

		config = &Config{
			DbDsn:      os.Getenv("DB_DSN"),
			TgToken:    os.Getenv("TG_TOKEN"),
			UploadAddr: getenv("UPLOAD_ADDR", ":8005"),
			UploadURL:  getenv("UPLOAD_URL", "http://localhost:8005"),
			ChartDir:   getenv("CHART_DIR", "charts"),
		}
	})
	return config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
