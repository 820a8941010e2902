package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlink-service/internal/model"
	"shortlink-service/internal/repository"
)

// recentVisitLimit caps how many visits Stats reports individually.
const recentVisitLimit = 10

// directReferrer labels visits that arrived without a Referer header.
const directReferrer = "Direct"

// browserMarkers classify a user agent by first substring match, in this
// order. Anything unmatched, including an absent user agent, counts as
// Other.
var browserMarkers = []string{"Chrome", "Firefox", "Safari", "Edge"}

// RecentVisit is one entry in the Stats recent-visit window.
type RecentVisit struct {
	VisitedAt time.Time `json:"visited_at"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
}

// Stats summarizes the visit history of one short link.
type Stats struct {
	Link             *model.ShortLink
	ClickCount       int64
	Referrers        map[string]int64
	BrowserBreakdown map[string]int64
	RecentVisits     []RecentVisit
}

// Analytics aggregates visit records on demand.
type Analytics struct {
	repo   repository.LinkRepository
	logger *zap.SugaredLogger
}

// NewAnalytics creates an analytics service.
func NewAnalytics(repo repository.LinkRepository, logger *zap.SugaredLogger) *Analytics {
	return &Analytics{
		repo:   repo,
		logger: logger.Named("analytics"),
	}
}

// Stats computes the aggregate view for shortCode in one read pass over
// its visits. Visits are append-only, so reverse insertion order is
// chronological and serves as the recency order for the recent window.
func (a *Analytics) Stats(ctx context.Context, shortCode string) (*Stats, error) {
	link, err := a.repo.FindByCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	visits, err := a.repo.ListVisits(ctx, link.ID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Link:             link,
		ClickCount:       int64(len(visits)),
		Referrers:        make(map[string]int64),
		BrowserBreakdown: make(map[string]int64),
	}

	for _, visit := range visits {
		referrer := visit.Referrer
		if referrer == "" {
			referrer = directReferrer
		}
		stats.Referrers[referrer]++
		stats.BrowserBreakdown[classifyBrowser(visit.UserAgent)]++
	}

	for i := len(visits) - 1; i >= 0 && len(stats.RecentVisits) < recentVisitLimit; i-- {
		stats.RecentVisits = append(stats.RecentVisits, RecentVisit{
			VisitedAt: visits[i].VisitedAt,
			Referrer:  visits[i].Referrer,
			UserAgent: visits[i].UserAgent,
		})
	}

	return stats, nil
}

func classifyBrowser(userAgent string) string {
	for _, marker := range browserMarkers {
		if strings.Contains(userAgent, marker) {
			return marker
		}
	}
	return "Other"
}
