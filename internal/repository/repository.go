package repository

import (
	"context"
	"errors"
	"time"

	"shortlink-service/internal/model"
)

var (
	// ErrNotFound indicates the referenced link does not exist.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeTaken indicates the short code is already in use.
	ErrCodeTaken = errors.New("short code already taken")
)

// LinkRepository is the durable store for short links and their visits.
// Uniqueness of short codes and atomicity of the cascade delete are
// enforced here; service components keep no shared state of their own.
type LinkRepository interface {
	CreateLink(ctx context.Context, originalURL, shortCode string, expiresAt *time.Time) (*model.ShortLink, error)
	FindByCode(ctx context.Context, shortCode string) (*model.ShortLink, error)
	Deactivate(ctx context.Context, shortCode string) error
	DeleteLink(ctx context.Context, shortCode string) error
	RecordVisit(ctx context.Context, linkID uint, referrer, userAgent, clientAddress string) (*model.VisitRecord, error)
	ListVisits(ctx context.Context, linkID uint) ([]model.VisitRecord, error)
	ListLinks(ctx context.Context, offset, limit int) ([]model.ShortLink, error)
	CountVisits(ctx context.Context, linkID uint) (int64, error)

	// ResolveForVisit runs fn against the link for shortCode inside one
	// transaction, so an expiry decision and the visit write it allows
	// cannot interleave with a concurrent delete.
	ResolveForVisit(ctx context.Context, shortCode string, fn func(tx LinkRepository, link *model.ShortLink) error) error
}
