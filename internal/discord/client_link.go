package discord

import (
	"net/http"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Link maps a Discord user to an affiliate username and optional Kick username
func (c *APIClient) Link(discordID, affiliateUsername, kickUsername string) (*domain.AccountLink, error) {
	req := map[string]string{
		"platform":           domain.PlatformDiscord,
		"platform_id":        discordID,
		"affiliate_username": affiliateUsername,
		"kick_username":      kickUsername,
	}

	var result domain.AccountLink
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/link", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Unlink removes a Discord user's link
func (c *APIClient) Unlink(discordID string) error {
	req := map[string]string{
		"platform":    domain.PlatformDiscord,
		"platform_id": discordID,
	}
	return c.doRequestAndParse(http.MethodPost, "/api/v1/link/unlink", req, nil)
}

// GetLinkStatus returns a Discord user's link
func (c *APIClient) GetLinkStatus(discordID string) (*domain.AccountLink, error) {
	path := "/api/v1/link/status?" + identityQuery(discordID, "").Encode()
	var result domain.AccountLink
	if err := c.doRequestAndParse(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
