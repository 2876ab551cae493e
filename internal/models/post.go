package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published entry in the Inkwell application.
// Text and author are required; the group and image references are optional.
// CreatedAt is set once at creation and never mutated afterwards.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Text    string `gorm:"type:text;not null" json:"text"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	GroupID *uint  `gorm:"index" json:"group_id,omitempty"`
	Group   *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImageID *uint  `json:"image_id,omitempty"`
	Image   *Image `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
