package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_wishlist_user_course,priority:1" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_wishlist_user_course,priority:2;index" json:"course_id"`
	Course    *Course   `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (WishlistEntry) TableName() string { return "wishlist_entry" }

func (w *WishlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
