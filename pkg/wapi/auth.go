package wapi

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// authTimezone is the wall clock the API validates auth tokens against.
// Tokens derived from any other clock fail outside the overlapping hours.
const authTimezone = "Europe/Prague"

// authToken derives the per-request authentication token defined by the
// protocol: sha1(user + sha1(secret) + hour), hex encoded, with the hour
// zero padded on a 24-hour clock. A token is only accepted during the hour
// it names, so it is recomputed for every request.
func authToken(user, secret string, now time.Time) string {
	hour := fmt.Sprintf("%02d", now.Hour())
	return sha1hex(user + sha1hex(secret) + hour)
}

func sha1hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
