package model

import (
	"time"
)

// ShortLink maps a short code to its destination URL.
// ShortCode is immutable after creation and stays unique even after the
// link is deactivated, so a code is never reused while its row exists.
type ShortLink struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	ShortCode   string     `gorm:"size:50;uniqueIndex;not null" json:"short_code"`
	OriginalURL string     `gorm:"type:text;not null" json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`

	Visits []VisitRecord `gorm:"foreignKey:ShortLinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name.
func (ShortLink) TableName() string {
	return "short_links"
}

// IsExpired reports whether the link has passed its expiry at the given
// time. Links without an expiry never expire.
func (l *ShortLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}
