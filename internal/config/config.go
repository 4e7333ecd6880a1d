package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings of the report jobs.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - APIKey: The mapping provider API key, passed through even when empty.
// - PlusCode: The location code the reports are built for.
// - Radius: The nearby search radius in meters.
// - ProviderType: The type of geocoding provider to use (pluscodes, google).
// - GeocodeURL, PlacesURL: Base URLs of the provider endpoints.
// - HTTPTimeout: Per-request timeout, zero disables it.
// - RateLimit: Requests per second to the provider, zero disables throttling.
// - MinRating, MinReviews: Ranking thresholds.
// - ReportDir: Directory the report files are written to.
// - MetricsFile: Prometheus textfile written after a run, empty disables it.
// - Database: Optional report archive, disabled when the host is empty.
type Config struct {
	Env          string         `yaml:"env"`                  // Env is the current environment: local, development, production.
	APIKey       string         `yaml:"provider.api_key"`     // The API key for accessing the mapping provider.
	PlusCode     string         `yaml:"report.plus_code"`     // Location code to report on.
	Radius       int            `yaml:"report.radius"`        // Nearby search radius in meters.
	ProviderType string         `yaml:"provider.type"`        // ProviderType specifies which geocoding provider to use
	GeocodeURL   string         `yaml:"provider.geocode_url"` // Geocoder base URL.
	PlacesURL    string         `yaml:"provider.places_url"`  // Places API base URL.
	HTTPTimeout  time.Duration  `yaml:"provider.timeout"`     // Per-request timeout.
	RateLimit    int            `yaml:"provider.rate_limit"`  // Requests per second, 0 is unlimited.
	MinRating    float64        `yaml:"ranking.min_rating"`   // Minimum rating, inclusive.
	MinReviews   int            `yaml:"ranking.min_reviews"`  // Minimum number of reviews, inclusive.
	ReportDir    string         `yaml:"report.dir"`           // Directory for report files.
	MetricsFile  string         `yaml:"metrics.file"`         // Prometheus textfile path.
	Database     PostgresConfig `yaml:"postgres"`             // Database holds the postgres archive configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// Enabled reports whether the report archive is configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// MustLoad loads the configuration from the environment (and an optional .env file) and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	env := viper.New()
	env.AutomaticEnv()
	env.SetDefault("AGORA_ENV", "production")
	env.SetDefault("AGORA_PLUS_CODE", "V943+6Q")
	env.SetDefault("AGORA_RADIUS", "6999")
	env.SetDefault("AGORA_GEOCODER", "pluscodes")
	env.SetDefault("AGORA_GEOCODE_URL", "https://plus.codes/api")
	env.SetDefault("AGORA_PLACES_URL", "https://maps.googleapis.com/maps/api/place")
	env.SetDefault("AGORA_HTTP_TIMEOUT", "30s")
	env.SetDefault("AGORA_RATE_LIMIT", "0")
	env.SetDefault("AGORA_MIN_RATING", "3.5")
	env.SetDefault("AGORA_MIN_REVIEWS", "100")
	env.SetDefault("AGORA_REPORT_DIR", ".")
	env.SetDefault("DB_PORT", "5432")

	radius, err := strconv.Atoi(env.GetString("AGORA_RADIUS"))
	if err != nil {
		panic("failed to parse search radius from configuration, must be an integer")
	}

	timeout, err := time.ParseDuration(env.GetString("AGORA_HTTP_TIMEOUT"))
	if err != nil {
		panic("failed to parse http timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(env.GetString("AGORA_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer")
	}

	minRating, err := strconv.ParseFloat(env.GetString("AGORA_MIN_RATING"), 64)
	if err != nil {
		panic("failed to parse minimum rating from configuration")
	}

	minReviews, err := strconv.Atoi(env.GetString("AGORA_MIN_REVIEWS"))
	if err != nil {
		panic("failed to parse minimum reviews from configuration, must be an integer")
	}

	return &Config{
		Env:          env.GetString("AGORA_ENV"),
		APIKey:       env.GetString("GOOGLE_API_KEY"),
		PlusCode:     env.GetString("AGORA_PLUS_CODE"),
		Radius:       radius,
		ProviderType: env.GetString("AGORA_GEOCODER"),
		GeocodeURL:   env.GetString("AGORA_GEOCODE_URL"),
		PlacesURL:    env.GetString("AGORA_PLACES_URL"),
		HTTPTimeout:  timeout,
		RateLimit:    rateLimit,
		MinRating:    minRating,
		MinReviews:   minReviews,
		ReportDir:    env.GetString("AGORA_REPORT_DIR"),
		MetricsFile:  env.GetString("AGORA_METRICS_FILE"),
		Database: PostgresConfig{
			Host:     env.GetString("DB_HOST"),
			Port:     env.GetString("DB_PORT"),
			User:     env.GetString("DB_USERNAME"),
			Password: env.GetString("DB_PASSWORD"),
			Name:     env.GetString("DB_NAME"),
		},
	}
}
