package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bhorvath/domain-scraper/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// AuthToken is the portal's forms auth cookie value. The shortlist is
	// private, so there is no anonymous fallback.
	AuthToken string

	WorkbookPath string

	DomainAPIKey string
	MapsAPIKey   string

	// OriginAddress anchors the distance lookups; OriginLat/OriginLng
	// anchor the compass direction.
	OriginAddress string
	OriginLat     float64
	OriginLng     float64

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RateLimitMs int
	MaxRetries  int
	ChromeBin   string

	Filter *models.FilterCriteria
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		AuthToken: getEnv("DOMAIN_AUTH_TOKEN", ""),

		WorkbookPath: getEnv("WORKBOOK_PATH", "./output/listings.xlsx"),

		DomainAPIKey: getEnv("DOMAIN_API_KEY", ""),
		MapsAPIKey:   getEnv("MAPS_API_KEY", ""),

		OriginAddress: getEnv("ORIGIN_ADDRESS", ""),
		OriginLat:     getEnvFloat("ORIGIN_LAT", 0),
		OriginLng:     getEnvFloat("ORIGIN_LNG", 0),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "shortlist_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RateLimitMs: getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		Filter: loadFilter(),
	}
}

// loadFilter assembles the shortlist filter from environment variables. Each
// variable is a comma separated list of acceptable values; an unset variable
// leaves that field unconstrained.
func loadFilter() *models.FilterCriteria {
	criteria := &models.FilterCriteria{
		ListingTypes: getEnvList("FILTER_LISTING_TYPES"),
	}
	for _, raw := range getEnvList("FILTER_STATUSES") {
		criteria.Statuses = append(criteria.Statuses, models.ListingStatus(raw))
	}

	beds := getEnvIntList("FILTER_BEDS")
	baths := getEnvIntList("FILTER_BATHS")
	parking := getEnvIntList("FILTER_PARKING")
	if len(beds)+len(baths)+len(parking) > 0 {
		criteria.Features = &models.FeatureCriteria{
			Beds:    beds,
			Baths:   baths,
			Parking: parking,
		}
	}

	streets := getEnvList("FILTER_STREETS")
	suburbs := getEnvList("FILTER_SUBURBS")
	if len(streets)+len(suburbs) > 0 {
		criteria.Address = &models.AddressCriteria{
			Streets: streets,
			Suburbs: suburbs,
		}
	}
	return criteria
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvIntList(key string) []int {
	var out []int
	for _, part := range getEnvList(key) {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}
