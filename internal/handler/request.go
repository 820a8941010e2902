package handler

import (
	"time"

	"shortlink-service/internal/model"
	"shortlink-service/internal/service"
)

// CreateShortLinkRequest is the body of POST /shorten. TTLDays wins over
// ExpiresAt when both are present.
type CreateShortLinkRequest struct {
	DestinationURL string     `json:"destination_url" binding:"required" example:"https://example.com/some/long/path"`
	CustomAlias    string     `json:"custom_alias,omitempty" example:"my-link"`
	TTLDays        int        `json:"ttl_days,omitempty" example:"7"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// ShortLinkResponse is the representation of a link returned to clients.
type ShortLinkResponse struct {
	ID          uint       `json:"id"`
	OriginalURL string     `json:"original_url"`
	ShortCode   string     `json:"short_code"`
	ShortURL    string     `json:"short_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Active      bool       `json:"active"`
}

// LinkListEntry is one row of GET /urls, a link plus its click count.
type LinkListEntry struct {
	ShortLinkResponse
	ClickCount int64 `json:"click_count"`
}

// StatsResponse is the aggregated analytics view of one link.
type StatsResponse struct {
	ShortLinkResponse
	ClickCount       int64                 `json:"click_count"`
	Referrers        map[string]int64      `json:"referrers"`
	BrowserBreakdown map[string]int64      `json:"browser_breakdown"`
	RecentVisits     []service.RecentVisit `json:"recent_visits"`
}

func newShortLinkResponse(link *model.ShortLink, shortURL string) ShortLinkResponse {
	return ShortLinkResponse{
		ID:          link.ID,
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
		ShortURL:    shortURL,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		Active:      link.IsActive,
	}
}
