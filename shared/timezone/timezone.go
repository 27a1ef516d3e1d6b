package timezone

import (
	"carepoint/config"
	"carepoint/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")

		return time.UTC
	}

	return appLocation
}

// LocationOrDefault loads an IANA zone name, falling back to the application timezone.
func LocationOrDefault(name string) *time.Location {
	if name == "" {
		return GetLocation()
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown visitor timezone, using application timezone")

		return GetLocation()
	}

	return loc
}

// Today returns midnight of the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return StartOfDay(time.Now().In(loc))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC and only meaningful as a day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateFormat, value)
}

// FormatDate formats the calendar day of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constant.DateFormat)
}
