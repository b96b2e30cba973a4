package bill

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 5, 0, time.UTC)

	tests := []struct {
		name                    string
		location, truck, billID string
		want                    string
	}{
		{"all ids", "store7", "truck3", "B99", "store7_20240301_100005_truck3_B99.jpg"},
		{"location only", "store7", "", "", "store7_20240301_100005.jpg"},
		{"truck only", "store7", "truck3", "", "store7_20240301_100005_truck3.jpg"},
		{"bill only", "store7", "", "B99", "store7_20240301_100005_B99.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectKey(tt.location, tt.truck, tt.billID, ts)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "__")
			assert.False(t, strings.HasSuffix(got, "_.jpg"))
		})
	}
}

func TestObjectKey_UsesUTCAndTruncatesToSecond(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	local := time.Date(2024, 3, 1, 13, 30, 5, 999_000_000, tehran)

	assert.Equal(t, "store7_20240301_100005.jpg", ObjectKey("store7", "", "", local))
}

func TestObjectKey_DeterministicWithinSecond(t *testing.T) {
	a := time.Date(2024, 3, 1, 10, 0, 5, 1, time.UTC)
	b := time.Date(2024, 3, 1, 10, 0, 5, 900_000_000, time.UTC)

	assert.Equal(t, ObjectKey("s", "t", "b", a), ObjectKey("s", "t", "b", b))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "store7_20240301_100005_ab12cd34.jpg", withSuffix("store7_20240301_100005.jpg", "ab12cd34"))
}
