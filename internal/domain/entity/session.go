package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// LocationUnknown is recorded when the geolocation lookup fails or is disabled.
const LocationUnknown = "Unknown"

// UserAgentUnknown is recorded when the client sent no User-Agent header.
const UserAgentUnknown = "Unknown"

// GeoLocation is the best-effort location resolved from the client IP.
type GeoLocation struct {
	Status      string    `json:"status" firestore:"status"`
	Country     string    `json:"country,omitempty" firestore:"country,omitempty"`
	Region      string    `json:"region,omitempty" firestore:"region,omitempty"`
	City        string    `json:"city,omitempty" firestore:"city,omitempty"`
	Timezone    string    `json:"timezone,omitempty" firestore:"timezone,omitempty"`
	ISP         string    `json:"isp,omitempty" firestore:"isp,omitempty"`
	Coordinates orb.Point `json:"coordinates" firestore:"coordinates"`
}

// UnknownLocation returns the placeholder used when no location could be resolved.
func UnknownLocation() GeoLocation {
	return GeoLocation{Status: LocationUnknown}
}

// IsKnown reports whether the lookup produced a real location.
func (g GeoLocation) IsKnown() bool {
	return g.Status != "" && g.Status != LocationUnknown
}

// DeviceInfo describes the client that created a session.
type DeviceInfo struct {
	IP        string      `json:"ip" firestore:"ip"`
	UserAgent string      `json:"userAgent" firestore:"userAgent"`
	Location  GeoLocation `json:"location" firestore:"location"`
}

// Session is the server-held record of a login. It outlives the auth tokens issued for it
// and is the thing revoked on logout.
type Session struct {
	ID         string     `json:"id" firestore:"-"`
	UserID     string     `json:"userId" firestore:"userId"`
	DeviceInfo DeviceInfo `json:"deviceInfo" firestore:"deviceInfo"`
	Provider   Provider   `json:"provider" firestore:"provider"`
	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt" firestore:"expiresAt"`
}

// IsExpired reports whether the session can no longer be used at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
