package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                      string
	VerifyToken               string
	WhatsAppToken             string
	PhoneNumberID             string
	WhatsAppBusinessAccountID string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	AdminToken  string
	SelfNumber  string
	UploadDir   string
	SiteDir     string
	GraphAPIURL string

	Version    string
	DeployedAt string

	// ContactRatePerMin caps public form submissions per client IP.
	ContactRatePerMin int
	// TrustedProxies may set X-Forwarded-For; comma separated IPs or CIDRs.
	TrustedProxies []string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		VerifyToken:               getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken:             getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:             getEnv("PHONE_NUMBER_ID", ""),
		WhatsAppBusinessAccountID: getEnv("WABA_ID", ""),
		DBDriver:                  getEnv("DB_DRIVER", "sqlite"),
		DBPath:                    getEnv("DB_PATH", "./partnerhub.db"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		AdminToken:                getEnv("ADMIN_TOKEN", ""),
		SelfNumber:                getEnv("SELF_NUMBER", "7709446589"),
		UploadDir:                 getEnv("UPLOAD_DIR", "./uploads"),
		SiteDir:                   getEnv("SITE_DIR", "./dist"),
		GraphAPIURL:               getEnv("GRAPH_API_URL", "https://graph.facebook.com/v19.0"),
		Version:                   getEnv("APP_VERSION", "dev"),
		DeployedAt:                getEnv("DEPLOYED_AT", ""),
		ContactRatePerMin:         getEnvInt("CONTACT_RATE_PER_MIN", 5),
		TrustedProxies:            getEnvList("TRUSTED_PROXIES"),
	}
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, fallback)
		return fallback
	}
	return n
}
