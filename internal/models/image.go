package models

import (
	"fmt"
	"time"
)

// Image holds an uploaded attachment as opaque bytes.
// The bytes are stored and served back verbatim; no processing is applied.
type Image struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContentType string    `gorm:"size:64;not null" json:"content_type"`
	Data        []byte    `gorm:"not null" json:"-"`
	UserID      uint      `gorm:"not null" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// URL returns the public path the image is served from.
func (i *Image) URL() string {
	return fmt.Sprintf("/media/%d", i.ID)
}
