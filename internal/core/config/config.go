package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// RedisURL is the connection URL for the auto-tracking preference store.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Tracking holds the location broadcast channel settings.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Fleet holds the driver registry eviction settings.
	Fleet FleetConfig `mapstructure:",squash"`

	// ETA holds the geocoding and routing configuration.
	ETA ETAConfig `mapstructure:",squash"`
}

// TrackingConfig holds the location transport channel settings.
type TrackingConfig struct {
	// WSURL is the WebSocket endpoint carrying location updates.
	WSURL string `mapstructure:"TRACKING_WS_URL" required:"true"`
	// WSToken is the bearer token presented when connecting.
	WSToken string `mapstructure:"TRACKING_WS_TOKEN"`
}

// FleetConfig holds the driver registry tuning knobs.
type FleetConfig struct {
	// StaleAfter is how old a driver position may be before the sweep drops it.
	StaleAfter time.Duration `mapstructure:"REGISTRY_STALE_AFTER" default:"5m"`
	// SweepEvery is the interval between staleness sweeps.
	SweepEvery time.Duration `mapstructure:"REGISTRY_SWEEP_EVERY" default:"1m"`
}

// ETAConfig holds the external geocoding and routing endpoints.
type ETAConfig struct {
	// GeocoderURL is the base URL of the Nominatim-compatible geocoder.
	GeocoderURL string `mapstructure:"GEOCODER_URL" required:"true"`
	// GeocoderCountry restricts geocoding matches to a single country code.
	GeocoderCountry string `mapstructure:"GEOCODER_COUNTRY" default:"fr"`
	// RouterURL is the base URL of the OSRM-compatible routing server.
	RouterURL string `mapstructure:"ROUTER_URL" required:"true"`
	// UpdateInterval is how often a watched ETA is recomputed.
	UpdateInterval time.Duration `mapstructure:"ETA_UPDATE_INTERVAL" default:"1m"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
