package models

import "time"

// Group is a named, slugged category posts can be filed under.
// The slug is the stable external identifier used in URLs.
type Group struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Slug            string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedByUserID *uint     `json:"created_by_user_id,omitempty"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
