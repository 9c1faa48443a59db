package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	MongoURI      string
	MongoDB       string
	Port          string
	CloudinaryURL string
	UploadFolder  string
	JWTSecret     string
}

func LoadConfig() *Config {
	// .env only exists in local development; deployed environments inject
	// real environment variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	return &Config{
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDB:       getEnv("MONGO_DB", "storefront"),
		Port:          getEnv("PORT", "8080"),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		UploadFolder:  getEnv("UPLOAD_FOLDER", "products"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
