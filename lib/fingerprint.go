package lib

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// DeviceIDHeader carries the stable install id supplied by mobile clients.
const DeviceIDHeader = "X-Device-Id"

// DeviceFingerprint derives a device identifier from request metadata. An
// explicit device header wins; web clients fall back to a hash of browser
// characteristics. The fallback drifts with browser updates, so it only ever
// backs best-effort binding, not a hard security boundary.
func DeviceFingerprint(r *http.Request) string {
	if deviceID := r.Header.Get(DeviceIDHeader); deviceID != "" {
		return deviceID
	}

	userAgent := r.Header.Get("User-Agent")
	acceptLanguage := r.Header.Get("Accept-Language")

	sum := sha256.Sum256([]byte(userAgent + "|" + acceptLanguage))
	return hex.EncodeToString(sum[:])[:32]
}
