package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

type AppConfig struct {
	// Azure Blob Storage sink.
	AzureConnectionString string
	BlobContainer         string
	OutputBlobName        string

	// Local fallback sink when no connection string is configured.
	LocalOutputDir string

	// File-based source inputs.
	OilCSVPath string
	CO2CSVPath string

	// Period window every normalized dataset is clipped to.
	Window dataset.Window

	// Coordinates for the Open-Meteo historical weather query.
	WeatherLat float64
	WeatherLon float64

	// FetchInterval controls how often the pipeline runs. 0 disables the scheduler.
	FetchInterval time.Duration

	// Outbound HTTP client timeout.
	HTTPTimeout time.Duration

	// Run history retention.
	StoreMaxRuns int
	StoreMaxAge  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.AzureConnectionString = os.Getenv("AZURE_CONNECTION_STRING")
	cfg.BlobContainer = getenvDefault("BLOB_CONTAINER", "raw-data")
	cfg.OutputBlobName = getenvDefault("OUTPUT_BLOB_NAME", "uk_energy_integrated.csv")
	cfg.LocalOutputDir = getenvDefault("LOCAL_OUTPUT_DIR", "output")

	cfg.OilCSVPath = getenvDefault("OIL_CSV_PATH", "data/oil_prices.csv")
	cfg.CO2CSVPath = getenvDefault("CO2_CSV_PATH", "data/uk_co2_emissions.csv")

	from := getenvInt("PERIOD_FROM", 2015)
	to := getenvInt("PERIOD_TO", 2022)
	if from > to {
		return nil, fmt.Errorf("PERIOD_FROM %d is after PERIOD_TO %d", from, to)
	}
	cfg.Window = dataset.Window{From: from, To: to}

	// London, representing the UK in the weather source.
	cfg.WeatherLat = getenvFloat("WEATHER_LAT", 51.5074)
	cfg.WeatherLon = getenvFloat("WEATHER_LON", -0.1278)

	// Pipeline cadence: default one run per day.
	intervalStr := getenvDefault("FETCH_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.StoreMaxRuns = getenvInt("STORE_MAX_RUNS", 30)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "720h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
