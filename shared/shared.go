package shared

import (
	"strings"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a key prefix and its parts, skipping empty parts.
func BuildCacheKey(prefix string, parts ...string) string {
	key := prefix

	for _, part := range parts {
		if part == "" {
			continue
		}

		key += cacheKeySeparator + part
	}

	return key
}

// NormalizeList trims every item and drops empty ones, preserving order.
func NormalizeList(values []string) []string {
	var items []string

	for _, item := range values {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
