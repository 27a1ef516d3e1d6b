package config

import (
	"carepoint/shared/constant"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"carepoint"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Wizard struct {
			Slots             []string `envconfig:"SLOTS"               default:"09:00,10:30,13:00,14:30,16:00"`
			SessionTTLSeconds int      `envconfig:"SESSION_TTL_SECONDS" default:"3600"`
			LockSeconds       int      `envconfig:"LOCK_SECONDS"        default:"60"`
		} `envconfig:"WIZARD"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	JWT struct {
		SessionSecret    string `envconfig:"SESSION_SECRET"`
		SessionExpireMin int    `envconfig:"SESSION_EXPIRE_MIN" default:"60"`
	} `envconfig:"JWT"`

	// Backend is the external hospital API that processes appointments and contact requests.
	Backend struct {
		URL            string `envconfig:"URL"             default:"http://localhost:5000"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS"`
	} `envconfig:"BACKEND"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// Validate reports settings the booking flow cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.SessionSecret == "" {
		errs = append(errs, errors.New("JWT_SESSION_SECRET is required"))
	}

	if c.App.Wizard.SessionTTLSeconds <= 0 {
		errs = append(errs, errors.New("APP_WIZARD_SESSION_TTL_SECONDS must be positive"))
	}

	if c.App.Wizard.LockSeconds <= 0 {
		errs = append(errs, errors.New("APP_WIZARD_LOCK_SECONDS must be positive"))
	}

	offered := 0

	for _, slot := range c.App.Wizard.Slots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}

		offered++

		if _, err := time.Parse(constant.SlotTimeFormat, slot); err != nil {
			errs = append(errs, fmt.Errorf("APP_WIZARD_SLOTS: %q is not HH:MM", slot))
		}
	}

	if offered == 0 {
		errs = append(errs, errors.New("APP_WIZARD_SLOTS must offer at least one slot"))
	}

	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("BACKEND_URL %q is not an absolute URL", c.Backend.URL))
	}

	return errors.Join(errs...)
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
