package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	BackendURL       string
	BackendAPIKey    string
	GeocoderURL      string
	SessionDBPath    string
	SchedulerBuffer  int
	DefaultLatitude  float64
	DefaultLongitude float64
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		GeocoderURL:     "https://nominatim.openstreetmap.org",
		SchedulerBuffer: 64,
		// Central London, the fallback the map view also uses.
		DefaultLatitude:  51.5074,
		DefaultLongitude: -0.1278,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := getEnvString("LOCTODO_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := getEnvString("LOCTODO_API_KEY"); v != "" {
		cfg.BackendAPIKey = v
	}
	if v := getEnvString("LOCTODO_GEOCODER_URL"); v != "" {
		cfg.GeocoderURL = v
	}
	if v := getEnvString("LOCTODO_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := getEnvInt("LOCTODO_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvFloat("LOCTODO_LATITUDE"); ok {
		cfg.DefaultLatitude = v
	}
	if v, ok := getEnvFloat("LOCTODO_LONGITUDE"); ok {
		cfg.DefaultLongitude = v
	}
	return cfg
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func getEnvInt(name string) (int, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
