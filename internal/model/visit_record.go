package model

import (
	"time"
)

// VisitRecord is one successful redirect through a short link. The request
// metadata is stored verbatim and never mutated; rows are removed only when
// the owning link is hard-deleted.
type VisitRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ShortLinkID   uint      `gorm:"not null;index" json:"short_link_id"`
	VisitedAt     time.Time `json:"visited_at"`
	Referrer      string    `gorm:"type:text" json:"referrer"`
	UserAgent     string    `gorm:"type:text" json:"user_agent"`
	ClientAddress string    `gorm:"size:45" json:"client_address"`
}

// TableName specifies the table name.
func (VisitRecord) TableName() string {
	return "visit_records"
}
