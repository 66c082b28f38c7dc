package models

import "time"

// Follow is a directed subscription edge from a follower to an author. The
// composite unique index keeps at most one edge per ordered pair even under
// concurrent creates.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follower_author;not null" json:"follower_id"`
	AuthorID   uint      `gorm:"index;uniqueIndex:idx_follower_author;not null" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
