package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	MongoURI        string
	DBName          string
	AccessSecret    string
	StripeSecretKey string
	Port            string
	CORSOrigins     []string
}

// Load reads configuration from the environment, consulting a local .env
// file first. Missing values fall back to development defaults.
func Load() Config {
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = os.Getenv("MONGO_PUBLIC_URL")
	}
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "mediHealth"
	}

	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		MongoURI:        uri,
		DBName:          name,
		AccessSecret:    secret,
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Port:            port,
		CORSOrigins:     origins,
	}
}
