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
	// ServerPort is the port where the gateway will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Marketplace holds the backend REST API configuration.
	Marketplace MarketplaceConfig `mapstructure:",squash"`

	// Redis holds the filter state store configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Stripe holds the payment provider credentials.
	Stripe StripeConfig `mapstructure:",squash"`

	// Tracking holds the tracking refresh settings.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy used for backend calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// MarketplaceConfig holds the connection details of the marketplace backend.
type MarketplaceConfig struct {
	// URL is the base URL of the backend (e.g., https://api.example.com).
	URL string `mapstructure:"MARKETPLACE_API_URL" required:"true"`
	// Token is the fallback bearer token used when a request carries none.
	Token string `mapstructure:"MARKETPLACE_API_TOKEN"`
	// TimeoutSeconds bounds every backend request.
	TimeoutSeconds int `mapstructure:"MARKETPLACE_API_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the backend request timeout as a duration.
func (m MarketplaceConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// RedisConfig holds the Redis connection and expiry settings.
type RedisConfig struct {
	// URL has the form redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// FilterStateTTLHours is how long an idle filter session survives. 0 keeps it forever.
	FilterStateTTLHours int `mapstructure:"FILTER_STATE_TTL_HOURS" default:"720"`
}

// FilterStateTTL returns the filter session expiry as a duration.
func (r RedisConfig) FilterStateTTL() time.Duration {
	return time.Duration(r.FilterStateTTLHours) * time.Hour
}

// StripeConfig holds the payment provider credentials.
type StripeConfig struct {
	// SecretKey is the server-side API key (sk_test_… or sk_live_…).
	SecretKey string `mapstructure:"STRIPE_SECRET_KEY" required:"true"`
	// Environment is either "test" or "live".
	Environment string `mapstructure:"STRIPE_ENVIRONMENT" default:"test"`
}

// TrackingConfig holds the tracking auto-refresh settings.
type TrackingConfig struct {
	// RefreshSeconds is the interval between tracking re-fetches.
	RefreshSeconds int `mapstructure:"TRACKING_REFRESH_SECONDS" default:"60"`
}

// RefreshInterval returns the tracking refresh interval as a duration.
func (t TrackingConfig) RefreshInterval() time.Duration {
	return time.Duration(t.RefreshSeconds) * time.Second
}

// ProxyConfig holds the outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
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

	if config.Tracking.RefreshSeconds <= 0 {
		return nil, fmt.Errorf("invalid configuration: TRACKING_REFRESH_SECONDS must be positive")
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
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
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
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

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
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
