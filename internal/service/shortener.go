package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shortlink-service/internal/model"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/shortcode"
	"shortlink-service/internal/validate"
)

// maxGenerateAttempts bounds the collision-retry loop when allocating a
// generated code.
const maxGenerateAttempts = 10

// Shortener allocates short codes and persists the code-to-URL mapping.
type Shortener struct {
	repo      repository.LinkRepository
	generator *shortcode.Generator
	cache     *LinkCache
	logger    *zap.SugaredLogger
}

// NewShortener creates a shortening service.
func NewShortener(repo repository.LinkRepository, generator *shortcode.Generator, cache *LinkCache, logger *zap.SugaredLogger) *Shortener {
	return &Shortener{
		repo:      repo,
		generator: generator,
		cache:     cache,
		logger:    logger.Named("shortener"),
	}
}

// Shorten validates destination, picks a short code (the custom alias if
// given, otherwise a generated one) and persists the mapping, optionally
// with an expiry. The full short URL is assembled by the caller from the
// request host; this service only deals in codes.
func (s *Shortener) Shorten(ctx context.Context, destination, customAlias string, expiresAt *time.Time) (*model.ShortLink, error) {
	if !validate.Destination(destination) {
		return nil, ErrInvalidURL
	}

	if customAlias != "" {
		if !validate.Alias(customAlias) {
			return nil, ErrInvalidAlias
		}
		if validate.ReservedAlias(customAlias) {
			return nil, ErrReservedAlias
		}
		link, err := s.repo.CreateLink(ctx, destination, customAlias, expiresAt)
		if errors.Is(err, repository.ErrCodeTaken) {
			return nil, ErrAliasTaken
		}
		if err != nil {
			return nil, err
		}
		s.logger.Infow("short link created", "short_code", link.ShortCode, "custom_alias", true)
		return link, nil
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := s.generator.Generate()
		if err != nil {
			return nil, err
		}
		link, err := s.repo.CreateLink(ctx, destination, code, expiresAt)
		if errors.Is(err, repository.ErrCodeTaken) {
			s.logger.Debugw("generated code collided, retrying", "short_code", code, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		s.logger.Infow("short link created", "short_code", link.ShortCode, "custom_alias", false)
		return link, nil
	}

	s.logger.Errorw("short code generation exhausted retries", "attempts", maxGenerateAttempts)
	return nil, ErrCodeSpaceExhausted
}

// Deactivate soft-deletes the link and drops any cached redirect entry.
func (s *Shortener) Deactivate(ctx context.Context, shortCode string) error {
	if err := s.repo.Deactivate(ctx, shortCode); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, shortCode)
	s.logger.Infow("short link deactivated", "short_code", shortCode)
	return nil
}

// Delete hard-deletes the link together with all of its visit records.
func (s *Shortener) Delete(ctx context.Context, shortCode string) error {
	if err := s.repo.DeleteLink(ctx, shortCode); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, shortCode)
	s.logger.Infow("short link deleted", "short_code", shortCode)
	return nil
}

// Lookup returns the link for shortCode without side effects.
func (s *Shortener) Lookup(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	return s.repo.FindByCode(ctx, shortCode)
}

// ListLinks returns a page of links, newest first.
func (s *Shortener) ListLinks(ctx context.Context, offset, limit int) ([]model.ShortLink, error) {
	return s.repo.ListLinks(ctx, offset, limit)
}

// CountVisits returns the click count for a link.
func (s *Shortener) CountVisits(ctx context.Context, linkID uint) (int64, error) {
	return s.repo.CountVisits(ctx, linkID)
}
