// Package timezone resolves the calendar day a booking session starts on.
//
// The application timezone is configured via APP_TIMEZONE and loaded when the
// package is imported. Visitors may report their own IANA zone; LocationOrDefault
// falls back to the application zone when they do not, or when the name is unknown.
//
//	loc := timezone.LocationOrDefault("Europe/London")
//	floor := timezone.Today(loc)           // midnight of the visitor's day
//	day, err := timezone.ParseDate("2030-01-15")
package timezone
