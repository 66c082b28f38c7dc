package models

import "time"

// Ellipsis is appended to every shortened rendering of a post body.
const Ellipsis = "..."

// Post is a unit of content written by exactly one author. The author is set
// once at creation and never reassigned; the group tag is optional and
// survives as NULL when the group itself is deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `gorm:"size:512" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// ShortText returns the first limit characters of the post body followed by
// the ellipsis marker. A limit past the end of the body truncates nothing;
// the ellipsis is appended either way.
func (p *Post) ShortText(limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(p.Text)
	if limit < len(runes) {
		runes = runes[:limit]
	}
	return string(runes) + Ellipsis
}
