package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shortlink-service/internal/model"
)

// GormLinkRepository implements LinkRepository on top of gorm. It relies
// on the unique index over short_links.short_code for atomic
// check-and-insert and on gorm transactions for the cascade delete.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewGormLinkRepository creates a repository bound to the given database.
func NewGormLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// CreateLink inserts a new link. ErrCodeTaken is returned when the short
// code is already present, including codes held by deactivated links.
func (r *GormLinkRepository) CreateLink(ctx context.Context, originalURL, shortCode string, expiresAt *time.Time) (*model.ShortLink, error) {
	link := model.ShortLink{
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		ExpiresAt:   expiresAt,
		IsActive:    true,
	}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("creating short link: %w", err)
	}
	return &link, nil
}

// FindByCode looks up a link by short code without side effects.
func (r *GormLinkRepository) FindByCode(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	var link model.ShortLink
	if err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding short link: %w", err)
	}
	return &link, nil
}

// Deactivate marks the link inactive. Already inactive links are left
// untouched, so concurrent deactivations are harmless.
func (r *GormLinkRepository) Deactivate(ctx context.Context, shortCode string) error {
	var link model.ShortLink
	if err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("finding short link: %w", err)
	}
	if !link.IsActive {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&link).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivating short link: %w", err)
	}
	return nil
}

// DeleteLink removes the link and every visit it owns in one transaction.
func (r *GormLinkRepository) DeleteLink(ctx context.Context, shortCode string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link model.ShortLink
		if err := tx.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("finding short link: %w", err)
		}
		if err := tx.Where("short_link_id = ?", link.ID).Delete(&model.VisitRecord{}).Error; err != nil {
			return fmt.Errorf("deleting visit records: %w", err)
		}
		if err := tx.Delete(&link).Error; err != nil {
			return fmt.Errorf("deleting short link: %w", err)
		}
		return nil
	})
}

// RecordVisit appends one visit row for the link.
func (r *GormLinkRepository) RecordVisit(ctx context.Context, linkID uint, referrer, userAgent, clientAddress string) (*model.VisitRecord, error) {
	visit := model.VisitRecord{
		ShortLinkID:   linkID,
		VisitedAt:     time.Now(),
		Referrer:      referrer,
		UserAgent:     userAgent,
		ClientAddress: clientAddress,
	}
	if err := r.db.WithContext(ctx).Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("recording visit: %w", err)
	}
	return &visit, nil
}

// ListVisits returns every visit for the link in insertion order.
func (r *GormLinkRepository) ListVisits(ctx context.Context, linkID uint) ([]model.VisitRecord, error) {
	var visits []model.VisitRecord
	if err := r.db.WithContext(ctx).Where("short_link_id = ?", linkID).Order("id ASC").Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	return visits, nil
}

// ListLinks returns a page of links, newest first.
func (r *GormLinkRepository) ListLinks(ctx context.Context, offset, limit int) ([]model.ShortLink, error) {
	var links []model.ShortLink
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("listing short links: %w", err)
	}
	return links, nil
}

// CountVisits returns the number of visits recorded for the link.
func (r *GormLinkRepository) CountVisits(ctx context.Context, linkID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.VisitRecord{}).Where("short_link_id = ?", linkID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting visits: %w", err)
	}
	return count, nil
}

// ResolveForVisit loads the link for shortCode and hands it to fn together
// with a repository bound to the same transaction. fn's writes commit only
// if fn returns nil.
func (r *GormLinkRepository) ResolveForVisit(ctx context.Context, shortCode string, fn func(tx LinkRepository, link *model.ShortLink) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link model.ShortLink
		if err := tx.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("finding short link: %w", err)
		}
		return fn(NewGormLinkRepository(tx), &link)
	})
}
