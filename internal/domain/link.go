package domain

import "time"

// AccountLink maps a platform identity to an affiliate username.
type AccountLink struct {
	Platform          string    `json:"platform"`
	PlatformID        string    `json:"platform_id"`
	AffiliateUsername string    `json:"affiliate_username"`
	KickUsername      string    `json:"kick_username,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
