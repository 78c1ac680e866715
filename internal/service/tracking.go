package service

import (
	"fmt"
	"math/rand"
	"time"
)

const trackingPrefix = "PD"

// GenerateTrackingNumber produces a display identifier: a two-letter prefix,
// the low 8 digits of the current unix-millis clock, and a zero-padded
// two-digit random suffix. Collisions are possible and acceptable; this is
// not a primary key.
func GenerateTrackingNumber() string {
	millis := time.Now().UnixMilli() % 100_000_000
	suffix := rand.Intn(100)
	return fmt.Sprintf("%s%08d%02d", trackingPrefix, millis, suffix)
}
