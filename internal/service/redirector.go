package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shortlink-service/internal/model"
	"shortlink-service/internal/repository"
)

// Visit carries the request metadata captured for one redirect. Values
// are stored verbatim; the core never validates or sanitizes them.
type Visit struct {
	Referrer      string
	UserAgent     string
	ClientAddress string
}

// Redirector resolves short codes and records visits as one logical unit
// of work.
type Redirector struct {
	repo   repository.LinkRepository
	cache  *LinkCache
	logger *zap.SugaredLogger
}

// NewRedirector creates a redirect-and-tracking service.
func NewRedirector(repo repository.LinkRepository, cache *LinkCache, logger *zap.SugaredLogger) *Redirector {
	return &Redirector{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("redirector"),
	}
}

// ResolveAndTrack resolves shortCode to its destination and appends a
// visit record. Inactive links fail with ErrLinkInactive. An expired link
// is deactivated (persisted, the one implicit deactivation path) and then
// fails with ErrLinkExpired; no visit row is written for that call. The
// expiry check and the visit write run inside a single transaction, so a
// visit is only recorded when the same operation observed the link as
// not yet expired.
func (r *Redirector) ResolveAndTrack(ctx context.Context, shortCode string, visit Visit) (string, error) {
	// Cache hit path: cached entries are invalidated on deactivation and
	// expire with the link itself, so they only serve resolvable links.
	if entry, ok := r.cache.Get(ctx, shortCode); ok {
		if _, err := r.repo.RecordVisit(ctx, entry.ID, visit.Referrer, visit.UserAgent, visit.ClientAddress); err != nil {
			r.logger.Errorw("recording visit failed", "short_code", shortCode, "error", err)
		}
		return entry.OriginalURL, nil
	}

	var destination string
	var expired bool
	err := r.repo.ResolveForVisit(ctx, shortCode, func(tx repository.LinkRepository, link *model.ShortLink) error {
		if !link.IsActive {
			return ErrLinkInactive
		}
		if link.IsExpired(time.Now()) {
			// Returning an error rolls the transaction back; the
			// deactivation is persisted separately below.
			expired = true
			return ErrLinkExpired
		}
		if _, err := tx.RecordVisit(ctx, link.ID, visit.Referrer, visit.UserAgent, visit.ClientAddress); err != nil {
			return err
		}
		destination = link.OriginalURL
		r.cache.Set(ctx, shortCode, cachedLink{ID: link.ID, OriginalURL: link.OriginalURL}, link.ExpiresAt)
		return nil
	})
	if expired {
		if derr := r.repo.Deactivate(ctx, shortCode); derr != nil {
			r.logger.Errorw("deactivating expired link failed", "short_code", shortCode, "error", derr)
		}
		r.cache.Invalidate(ctx, shortCode)
		return "", ErrLinkExpired
	}
	if err != nil {
		return "", err
	}
	return destination, nil
}
