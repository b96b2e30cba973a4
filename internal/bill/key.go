package bill

import (
	"strings"
	"time"
)

const (
	timestampLayout = "20060102_150405"
	keyExtension    = ".jpg"
)

// ObjectKey builds the blob name
// {location_id}_{YYYYMMDD_HHMMSS}[_{truck_id}][_{bill_id}].jpg.
// The timestamp is now in UTC at second precision. Empty optional ids are
// left out together with their separator. The extension is always .jpg,
// whatever was uploaded.
func ObjectKey(locationID, truckID, billID string, now time.Time) string {
	parts := []string{locationID, now.UTC().Format(timestampLayout)}
	if truckID != "" {
		parts = append(parts, truckID)
	}
	if billID != "" {
		parts = append(parts, billID)
	}
	return strings.Join(parts, "_") + keyExtension
}

// withSuffix inserts _suffix before the extension.
func withSuffix(key, suffix string) string {
	return strings.TrimSuffix(key, keyExtension) + "_" + suffix + keyExtension
}
