package models

import "time"

// Follow is a subscription edge: UserID follows AuthorID.
// The composite unique index enforces at most one edge per pair at the
// store level, so concurrent duplicate follows resolve to a single edge.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_follow_user;uniqueIndex:idx_follow_pair" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
